package config

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/warehouse"
	"github.com/urfave/cli/v3"
)

// Warehouse holds warehouse connection configuration
type Warehouse struct {
	Driver           string
	DSN              string
	Account          string
	User             string
	Password         string
	Warehouse        string
	Database         string
	Schema           string
	Role             string
	QueryTimeout     time.Duration
	DatasetQueryFile string
}

// Flags returns CLI flags for Warehouse configuration
func (w *Warehouse) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "warehouse-driver",
			Usage:       "Warehouse driver (snowflake, duckdb, sqlite)",
			Category:    "Warehouse",
			Value:       string(warehouse.DriverSnowflake),
			Sources:     cli.EnvVars("COVIDASH_WAREHOUSE_DRIVER"),
			Destination: &w.Driver,
		},
		&cli.StringFlag{
			Name:        "warehouse-dsn",
			Usage:       "Data source name. Overrides the account settings for snowflake",
			Category:    "Warehouse",
			Sources:     cli.EnvVars("COVIDASH_WAREHOUSE_DSN"),
			Destination: &w.DSN,
		},
		&cli.StringFlag{
			Name:        "snowflake-account",
			Usage:       "Snowflake account identifier",
			Category:    "Warehouse",
			Sources:     cli.EnvVars("COVIDASH_SNOWFLAKE_ACCOUNT"),
			Destination: &w.Account,
		},
		&cli.StringFlag{
			Name:        "snowflake-user",
			Usage:       "Snowflake user",
			Category:    "Warehouse",
			Sources:     cli.EnvVars("COVIDASH_SNOWFLAKE_USER"),
			Destination: &w.User,
		},
		&cli.StringFlag{
			Name:        "snowflake-password",
			Usage:       "Snowflake password",
			Category:    "Warehouse",
			Sources:     cli.EnvVars("COVIDASH_SNOWFLAKE_PASSWORD"),
			Destination: &w.Password,
		},
		&cli.StringFlag{
			Name:        "snowflake-warehouse",
			Usage:       "Snowflake virtual warehouse",
			Category:    "Warehouse",
			Sources:     cli.EnvVars("COVIDASH_SNOWFLAKE_WAREHOUSE"),
			Destination: &w.Warehouse,
		},
		&cli.StringFlag{
			Name:        "snowflake-database",
			Usage:       "Snowflake database",
			Category:    "Warehouse",
			Sources:     cli.EnvVars("COVIDASH_SNOWFLAKE_DATABASE"),
			Destination: &w.Database,
		},
		&cli.StringFlag{
			Name:        "snowflake-schema",
			Usage:       "Snowflake schema",
			Category:    "Warehouse",
			Sources:     cli.EnvVars("COVIDASH_SNOWFLAKE_SCHEMA"),
			Destination: &w.Schema,
		},
		&cli.StringFlag{
			Name:        "snowflake-role",
			Usage:       "Snowflake role",
			Category:    "Warehouse",
			Sources:     cli.EnvVars("COVIDASH_SNOWFLAKE_ROLE"),
			Destination: &w.Role,
		},
		&cli.DurationFlag{
			Name:        "query-timeout",
			Usage:       "Timeout of a single warehouse query (0 means no timeout)",
			Category:    "Warehouse",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("COVIDASH_QUERY_TIMEOUT"),
			Destination: &w.QueryTimeout,
		},
		&cli.StringFlag{
			Name:        "dataset-query-file",
			Usage:       "File with the SQL that loads the monthly dataset at startup",
			Category:    "Warehouse",
			Sources:     cli.EnvVars("COVIDASH_DATASET_QUERY_FILE"),
			Destination: &w.DatasetQueryFile,
		},
	}
}

func (w *Warehouse) config() warehouse.Config {
	return warehouse.Config{
		Driver:       warehouse.Driver(strings.ToLower(w.Driver)),
		DSN:          w.DSN,
		Account:      w.Account,
		User:         w.User,
		Password:     w.Password,
		Warehouse:    w.Warehouse,
		Database:     w.Database,
		Schema:       w.Schema,
		Role:         w.Role,
		QueryTimeout: w.QueryTimeout,
	}
}

// Configure creates the warehouse client
func (w *Warehouse) Configure(ctx context.Context) (*warehouse.Client, error) {
	if strings.EqualFold(w.Role, "ACCOUNTADMIN") {
		ctxlog.From(ctx).Warn("Warehouse role ACCOUNTADMIN is broader than needed; use a read-only role")
	}

	client, err := warehouse.New(w.config())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure warehouse", goerr.V("driver", w.Driver))
	}
	return client, nil
}

// DatasetQuery returns the dataset query from the file, or empty to use the default one
func (w *Warehouse) DatasetQuery() (string, error) {
	if w.DatasetQueryFile == "" {
		return "", nil
	}

	data, err := os.ReadFile(w.DatasetQueryFile)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read dataset query file", goerr.V("path", w.DatasetQueryFile))
	}
	return strings.TrimSpace(string(data)), nil
}

// LogValue returns structured log value
func (w Warehouse) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("connection", w.config()),
		slog.String("dataset_query_file", w.DatasetQueryFile),
	)
}
