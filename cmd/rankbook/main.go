// main is the command-line entrypoint for the rankbook CLI.
package main

import (
	"github.com/joho/godotenv"
	"github.com/schooltools/rankbook/cmd"
	"github.com/schooltools/rankbook/internal/contract"
)

func main() {
	// Load .env if present, mainly for DB connection strings. A missing
	// file is not an error.
	_ = godotenv.Load()

	err := cmd.Execute()
	cmd.CloseStores()
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
