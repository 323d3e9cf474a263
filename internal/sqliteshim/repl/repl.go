package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nsqlite/sqliteshim/internal/log"
	"github.com/nsqlite/sqliteshim/internal/sqlitec"
	"github.com/nsqlite/sqliteshim/internal/util/sysutil"
	"github.com/peterh/liner"
)

// Config represents the configuration for a Repl.
type Config struct {
	// Conn is the connection the REPL runs queries and dot-commands on.
	Conn *sqlitec.Conn
	// Logger is the shared sqliteshim logger.
	Logger log.Logger
	// Out receives everything the REPL prints. Defaults to os.Stdout.
	Out io.Writer
	// HistoryPath is the file the line history is kept in. Defaults to
	// .sqliteshim_history in the temporary directory.
	HistoryPath string
}

// Repl is the interactive shell of sqliteshim.
type Repl struct {
	Config
	ctx  context.Context
	stop context.CancelFunc
}

// NewRepl creates a new Repl.
func NewRepl(ctx context.Context, stop context.CancelFunc, conf Config) (*Repl, error) {
	if conf.Conn == nil {
		return nil, errors.New("connection is required")
	}
	if !conf.Logger.IsInitialized() {
		return nil, errors.New("logger is required")
	}
	if conf.Out == nil {
		conf.Out = os.Stdout
	}
	if conf.HistoryPath == "" {
		conf.HistoryPath = filepath.Join(os.TempDir(), ".sqliteshim_history")
	}

	return &Repl{
		Config: conf,
		ctx:    ctx,
		stop:   stop,
	}, nil
}

// Start reads and runs commands until the user quits or the context is
// done.
func (r *Repl) Start() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(cmdHelpCompleter)

	if file, err := os.Open(r.HistoryPath); err == nil {
		_, _ = line.ReadHistory(file)
		file.Close()
	}
	defer r.writeHistory(line)

	fmt.Fprintln(r.Out)
	fmt.Fprintf(r.Out, "Connected to %s\n", r.describeConn())
	fmt.Fprintln(r.Out, `Enter ".help" for usage hints and ".quit" or "CTRL+C" to quit`)
	fmt.Fprintln(r.Out)

	for {
		select {
		case <-r.ctx.Done():
			return nil
		default:
		}

		input, err := line.Prompt(r.label())
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(r.Out, "Exiting...")
				r.Shutdown()
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if quit := r.Execute(input); quit {
			r.Shutdown()
			return nil
		}
	}
}

// Execute runs a single line of input and reports whether the user asked
// to quit.
func (r *Repl) Execute(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}
	if !strings.HasPrefix(input, ".") {
		cmdQuery(r, input)
		return false
	}

	fields := strings.Fields(input)
	name, args := fields[0], fields[1:]
	r.Logger.DebugNs(log.NsRepl, "running dot-command", log.KV{"command": name})

	switch name {
	case ".quit", ".exit":
		return true
	case ".clear":
		sysutil.ClearTerminal(r.Out)
	case ".help":
		cmdHelp(r)
	case ".quotes":
		cmdQuotes(r, args)
	case ".vec":
		cmdVec(r)
	case ".version":
		cmdVersion(r)
	case ".memory":
		cmdMemory(r)
	case ".tables":
		cmdQuery(r, "SELECT name FROM sqlite_schema WHERE type = 'table' ORDER BY name")
	case ".indexes":
		cmdQuery(r, "SELECT name, tbl_name FROM sqlite_schema WHERE type = 'index' ORDER BY name")
	case ".schema":
		cmdQuery(r, "SELECT sql FROM sqlite_schema WHERE sql IS NOT NULL ORDER BY name")
	case ".functions":
		cmdQuery(r, "SELECT DISTINCT name FROM pragma_function_list ORDER BY name")
	default:
		fmt.Fprintln(r.Out, "Unknown command, type .help for usage hints")
	}
	return false
}

// Shutdown stops the REPL.
func (r *Repl) Shutdown() {
	r.stop()
}

// label returns the prompt, marking an open transaction with an asterisk.
func (r *Repl) label() string {
	if !r.Conn.AutoCommit() {
		return "sqliteshim*> "
	}
	return "sqliteshim> "
}

func (r *Repl) describeConn() string {
	res, err := r.Conn.Query("SELECT file FROM pragma_database_list WHERE name = 'main'", nil)
	if err != nil || len(res.Rows) == 0 {
		return "database"
	}
	if file, ok := res.Rows[0][0].(string); ok && file != "" {
		return file
	}
	return "in-memory database"
}

func (r *Repl) writeHistory(line *liner.State) {
	file, err := os.Create(r.HistoryPath)
	if err != nil {
		r.Logger.WarnNs(log.NsRepl, "failed to save history", log.KV{"error": err})
		return
	}
	defer file.Close()

	if _, err := line.WriteHistory(file); err != nil {
		r.Logger.WarnNs(log.NsRepl, "failed to save history", log.KV{"error": err})
	}
}

// cleanError removes the wrapping prefixes from the error message. So, the
// error is more readable.
func cleanError(err error) string {
	errStr := err.Error()
	errStr = strings.ReplaceAll(errStr, "failed to prepare statement:", "")
	errStr = strings.ReplaceAll(errStr, "failed to step statement:", "")
	return strings.TrimSpace(errStr)
}
