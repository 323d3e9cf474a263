// Package sqlitedrv provides a database/sql/driver implementation for the
// SQLite C API wrapper of this project.
//
// Every connection it opens is configured through the shim before it is
// handed to the pool: double-quoted string literals are rejected unless
// WithDoubleQuotedStringLiterals(true) is given, and the post-connect
// queries run last. The underlying wrapper stays reachable through
// Conn.RawConn.
package sqlitedrv

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/nsqlite/sqliteshim/internal/shim"
	"github.com/nsqlite/sqliteshim/internal/sqlitec"
)

// DriverName is the name the driver is registered with in database/sql.
const DriverName = "sqliteshim"

var (
	_ driver.Driver             = (*Driver)(nil)
	_ driver.DriverContext      = (*Driver)(nil)
	_ driver.Connector          = (*Connector)(nil)
	_ driver.Conn               = (*Conn)(nil)
	_ driver.ConnPrepareContext = (*Conn)(nil)
	_ driver.ConnBeginTx        = (*Conn)(nil)
	_ driver.ExecerContext      = (*Conn)(nil)
	_ driver.Validator          = (*Conn)(nil)
	_ driver.SessionResetter    = (*Conn)(nil)
)

func init() {
	sql.Register(DriverName, &Driver{})
}

// Driver implements the database/sql/driver interface
type Driver struct{}

// Open creates a new connection to the SQLite database with the default
// connector options.
func (d *Driver) Open(dsn string) (driver.Conn, error) {
	return NewConnector(dsn).Connect(context.Background())
}

// OpenConnector returns a connector with the default options.
func (d *Driver) OpenConnector(dsn string) (driver.Connector, error) {
	return NewConnector(dsn), nil
}

// ConnectorOption configures a Connector.
type ConnectorOption func(*Connector)

// WithPostConnectQueries sets a slice of queries to be executed after a
// connection is established
func WithPostConnectQueries(queries []string) ConnectorOption {
	return func(connector *Connector) {
		connector.postConnectQueries = queries
	}
}

// WithDoubleQuotedStringLiterals sets whether new connections accept
// double-quoted string literals. They are rejected by default.
func WithDoubleQuotedStringLiterals(enabled bool) ConnectorOption {
	return func(connector *Connector) {
		connector.doubleQuotedStrings = enabled
	}
}

// WithBusyTimeout sets how long a connection waits on a locked database
// before failing with SQLITE_BUSY.
func WithBusyTimeout(d time.Duration) ConnectorOption {
	return func(connector *Connector) {
		connector.busyTimeout = d
	}
}

// Connector implements the database/sql/driver.Connector interface
type Connector struct {
	dsn                 string
	postConnectQueries  []string
	doubleQuotedStrings bool
	busyTimeout         time.Duration
}

// NewConnector creates a new connector to the SQLite database
func NewConnector(dsn string, options ...ConnectorOption) *Connector {
	connector := &Connector{
		dsn: dsn,
	}

	for _, option := range options {
		option(connector)
	}

	return connector
}

// Connect creates a new connection to the SQLite database
func (connector *Connector) Connect(ctx context.Context) (driver.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conn, err := sqlitec.Open(connector.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}

	if connector.busyTimeout > 0 {
		if err := conn.SetBusyTimeout(connector.busyTimeout); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}

	shim.SetDoubleQuotedStringLiterals(conn, connector.doubleQuotedStrings)

	for _, query := range connector.postConnectQueries {
		if err := conn.Exec(query); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf(`failed to execute "%s" post-connect query: %w`, query, err)
		}
	}

	return &Conn{conn: conn}, nil
}

// Driver returns the driver
func (connector *Connector) Driver() driver.Driver {
	return &Driver{}
}
