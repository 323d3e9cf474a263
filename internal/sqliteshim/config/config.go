package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/nsqlite/sqliteshim/internal/shim"
	"github.com/nsqlite/sqliteshim/internal/version"
	"github.com/orsinium-labs/enum"
)

// QuoteMode is how a connection treats double-quoted string literals.
type QuoteMode enum.Member[string]

var (
	// QuoteModeStrict rejects double-quoted string literals.
	QuoteModeStrict = QuoteMode{Value: "strict"}
	// QuoteModeLenient accepts them as in legacy SQLite.
	QuoteModeLenient = QuoteMode{Value: "lenient"}

	QuoteModes = enum.New(QuoteModeStrict, QuoteModeLenient)
)

// Config represents the configuration for sqliteshim.
type Config struct {
	Database       string    `arg:"positional" help:"Path or URI filename of the SQLite database" default:":memory:"`
	Quotes         string    `arg:"--quotes,env:SQLITESHIM_QUOTES" help:"Double-quoted string literal mode (strict, lenient)" default:"strict"`
	NoVec          bool      `arg:"--no-vec,env:SQLITESHIM_NO_VEC" help:"Do not initialize the sqlite-vec extension on new connections" default:"false"`
	LogSQLite      bool      `arg:"--log-sqlite,env:SQLITESHIM_LOG_SQLITE" help:"Log every event of the SQLite error log to stderr" default:"false"`
	LogVecFailures bool      `arg:"--log-vec-failures,env:SQLITESHIM_LOG_VEC_FAILURES" help:"Log sqlite-vec initialization failures to stderr instead of ignoring them" default:"false"`
	Debug          bool      `arg:"--debug,env:SQLITESHIM_DEBUG" help:"Enable debug logs" default:"false"`
	QuoteMode      QuoteMode `arg:"-"`
}

func (Config) Version() string {
	return fmt.Sprintf("%s\nSQLite %s\n", version.CLIVersion(), shim.LibVersion())
}

// MustParse parses and validates the configuration from the command
// line arguments. It returns a Config struct or exits the program
// with an error.
func MustParse(args []string) Config {
	cfg := Config{}

	parser, err := arg.NewParser(
		arg.Config{Program: "sqliteshim"},
		&cfg,
	)
	if err != nil {
		log.Fatal(err)
	}
	parser.MustParse(args[1:])

	if err := validateDatabase(cfg.Database); err != nil {
		log.Fatal(err)
	}

	mode, err := ParseQuoteMode(cfg.Quotes)
	if err != nil {
		log.Fatal(err)
	}
	cfg.QuoteMode = mode

	return cfg
}

// validateDatabase validates that database is a usable filename.
func validateDatabase(database string) error {
	if strings.TrimSpace(database) == "" {
		return fmt.Errorf("invalid database, use %q for an in-memory database", ":memory:")
	}
	if strings.ContainsRune(database, 0) {
		return fmt.Errorf("invalid database, the filename contains a NUL byte")
	}
	return nil
}

// ParseQuoteMode parses a quote mode name as accepted by --quotes, ignoring
// case and surrounding spaces.
func ParseQuoteMode(value string) (QuoteMode, error) {
	mode := QuoteModes.Parse(strings.ToLower(strings.TrimSpace(value)))
	if mode == nil {
		return QuoteMode{}, fmt.Errorf(
			"invalid quotes mode, valid values are: %s",
			strings.Join(QuoteModes.Values(), ", "),
		)
	}
	return *mode, nil
}

// Lenient reports whether the mode accepts double-quoted string literals.
func (m QuoteMode) Lenient() bool {
	return m == QuoteModeLenient
}
