package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/domain/interfaces"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	sf "github.com/snowflakedb/gosnowflake"
)

// Driver is a database/sql driver name registered by this package
type Driver string

const (
	DriverSnowflake Driver = "snowflake"
	DriverDuckDB    Driver = "duckdb"
	DriverSQLite    Driver = "sqlite"
)

// Config holds connection parameters for the warehouse
type Config struct {
	Driver       Driver
	DSN          string
	Account      string
	User         string
	Password     string
	Warehouse    string
	Database     string
	Schema       string
	Role         string
	QueryTimeout time.Duration
}

// DataSourceName builds the DSN passed to sql.Open
func (c *Config) DataSourceName() (string, error) {
	switch c.Driver {
	case DriverSnowflake:
		if c.DSN != "" {
			return c.DSN, nil
		}
		if c.Account == "" || c.User == "" || c.Password == "" {
			return "", goerr.New("snowflake account, user and password are required",
				goerr.V("has_account", c.Account != ""),
				goerr.V("has_user", c.User != ""),
				goerr.V("has_password", c.Password != ""))
		}
		dsn, err := sf.DSN(&sf.Config{
			Account:   c.Account,
			User:      c.User,
			Password:  c.Password,
			Warehouse: c.Warehouse,
			Database:  c.Database,
			Schema:    c.Schema,
			Role:      c.Role,
		})
		if err != nil {
			return "", goerr.Wrap(err, "failed to build snowflake DSN")
		}
		return dsn, nil

	case DriverDuckDB, DriverSQLite:
		// an empty DSN would open a fresh in-memory database on every query
		if c.DSN == "" {
			return "", goerr.New("database file DSN is required", goerr.V("driver", c.Driver))
		}
		return c.DSN, nil

	default:
		return "", goerr.New("unsupported warehouse driver", goerr.V("driver", c.Driver))
	}
}

// LogValue returns structured log value
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("driver", string(c.Driver)),
		slog.String("account", c.Account),
		slog.String("user", c.User),
		slog.Bool("has_password", c.Password != ""),
		slog.Bool("has_dsn", c.DSN != ""),
		slog.String("warehouse", c.Warehouse),
		slog.String("database", c.Database),
		slog.String("schema", c.Schema),
		slog.String("role", c.Role),
		slog.Duration("query_timeout", c.QueryTimeout),
	)
}

// Client executes SQL against the warehouse. It keeps no session between calls: every Query
// opens a connection, runs the statement and closes everything before returning.
type Client struct {
	driver  Driver
	dsn     string
	timeout time.Duration
}

// New creates a warehouse client
func New(cfg Config) (*Client, error) {
	dsn, err := cfg.DataSourceName()
	if err != nil {
		return nil, err
	}

	return &Client{
		driver:  cfg.Driver,
		dsn:     dsn,
		timeout: cfg.QueryTimeout,
	}, nil
}

// Query opens a session, executes the query and materializes every row
func (c *Client) Query(ctx context.Context, query string, args ...any) (*model.Table, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	db, err := sql.Open(string(c.driver), c.dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open warehouse session", goerr.V("driver", c.driver))
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return nil, goerr.Wrap(err, "failed to connect to warehouse", goerr.V("driver", c.driver))
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	table, err := scanTable(rows)
	if err != nil {
		return nil, err
	}
	return table, nil
}

// scanTable reads all rows keyed by column name
func scanTable(rows *sql.Rows) (*model.Table, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read result columns")
	}

	columns = uniqueColumns(columns)
	table := &model.Table{
		Columns: columns,
		Rows:    []map[string]any{},
	}

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, goerr.Wrap(err, "failed to scan row", goerr.V("row", len(table.Rows)))
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(values[i])
		}
		table.Rows = append(table.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate rows")
	}

	return table, nil
}

// uniqueColumns suffixes repeated column names with _2, _3, ... so that every projected
// column keeps its own key in the row maps
func uniqueColumns(columns []string) []string {
	original := make(map[string]bool, len(columns))
	for _, col := range columns {
		original[col] = true
	}

	out := make([]string, len(columns))
	used := make(map[string]bool, len(columns))
	for i, col := range columns {
		name := col
		for n := 2; used[name] || (name != col && original[name]); n++ {
			name = fmt.Sprintf("%s_%d", col, n)
		}
		used[name] = true
		out[i] = name
	}
	return out
}

// normalizeValue converts driver buffers to values that survive JSON encoding
func normalizeValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	default:
		return val
	}
}

var _ interfaces.Warehouse = (*Client)(nil) // Compile-time interface check
