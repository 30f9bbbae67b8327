package warehouse

// database/sql drivers selectable with Config.Driver
import (
	_ "github.com/duckdb/duckdb-go/v2"
	_ "modernc.org/sqlite"
)
