package resultstore

import (
	"fmt"
	"time"

	"github.com/schooltools/rankbook/schema"
)

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}

// parseTime converts a scanned time value back to time.Time. SQLite
// stores RFC 3339 strings; the other backends scan natively.
func parseTime(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val, nil
	case string:
		return time.Parse(time.RFC3339Nano, val)
	default:
		return time.Time{}, fmt.Errorf("unexpected time value of type %T", v)
	}
}
