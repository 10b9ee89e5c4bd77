package resultstore

import (
	"fmt"

	"github.com/schooltools/rankbook/internal/contract"
)

// PrintStoreStatus prints result store status information.
func PrintStoreStatus(status *contract.StoreStatus) {
	fmt.Printf("Results Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Passes: %d\n", status.Passes)
	fmt.Printf("Total Result Records: %d\n", status.Records)
	if status.HasRecord {
		fmt.Printf("Last Pass: %s\n", status.LastPass.Format("2006-01-02 15:04:05"))
	}
}
