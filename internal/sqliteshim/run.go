// Package sqliteshim implements the sqliteshim command line interface.
package sqliteshim

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/nsqlite/sqliteshim/internal/log"
	"github.com/nsqlite/sqliteshim/internal/shim"
	"github.com/nsqlite/sqliteshim/internal/sqlitec"
	"github.com/nsqlite/sqliteshim/internal/sqliteshim/config"
	"github.com/nsqlite/sqliteshim/internal/sqliteshim/repl"
	"github.com/nsqlite/sqliteshim/internal/version"
)

// Run runs the sqliteshim CLI.
func Run(ctx context.Context) error {
	conf := config.MustParse(os.Args)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.NewLogger(os.Stderr, log.WithDebug(conf.Debug))
	logger = logger.With(log.KV{"session": uuid.NewString()})

	fmt.Println(version.CLIVersion())

	conn, err := Setup(conf, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Error("error closing database:", log.KV{"error": err})
		}
		shim.RegisterErrorLogCallback(nil)
	}()

	rp, err := repl.NewRepl(ctx, stop, repl.Config{
		Conn:   conn,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer rp.Shutdown()
	go func() {
		if err := rp.Start(); err != nil {
			logger.ErrorNs(log.NsRepl, "repl stopped with error", log.KV{"error": err})
			stop()
		}
	}()

	<-ctx.Done()
	fmt.Printf("\nGoodbye!\n\n")
	return nil
}

// Setup configures the shim as requested by conf and opens the database.
// The error log callback and the vector extension hook are installed before
// the connection is opened so both see its initialization.
func Setup(conf config.Config, logger log.Logger) (*sqlitec.Conn, error) {
	if conf.LogSQLite {
		shim.RegisterErrorLogCallback(func(code int, msg string) {
			logger.WarnNs(log.NsSQLite, msg, log.KV{
				"code": code,
				"name": sqlitec.ResultCodeName(code),
			})
		})
	}

	if conf.LogVecFailures {
		shim.SetVecInitDiagnostic(func(code int, msg string) {
			logger.WarnNs(log.NsVec, "failed to initialize vector extension", log.KV{
				"code":  code,
				"error": msg,
			})
		})
	}

	if !conf.NoVec {
		shim.VecAutoInit()
		logger.DebugNs(log.NsVec, "vector extension auto-init enabled", log.KV{
			"compiledIn": shim.VecCompiledIn(),
		})
	}

	conn, err := sqlitec.Open(conf.Database)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	shim.SetDoubleQuotedStringLiterals(conn, conf.QuoteMode.Lenient())
	logger.DebugNs(log.NsShim, "database opened", log.KV{
		"database": conf.Database,
		"quotes":   conf.QuoteMode.Value,
		"sqlite":   shim.LibVersion(),
	})

	return conn, nil
}
