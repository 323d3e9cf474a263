package sqliteshimbench

import (
	"errors"
	"fmt"
	"log"

	"github.com/alexflint/go-arg"
	"github.com/nsqlite/sqliteshim/internal/version"
)

// Config holds the parameters of every benchmark.
type Config struct {
	Users      int  `arg:"--users,env:SQLITESHIMBENCH_USERS" help:"Users inserted by the write benchmarks" default:"100000"`
	Queries    int  `arg:"--queries,env:SQLITESHIMBENCH_QUERIES" help:"Full table reads done by the read benchmark" default:"500"`
	Vectors    int  `arg:"--vectors,env:SQLITESHIMBENCH_VECTORS" help:"Vectors stored by the vector benchmark" default:"10000"`
	Dims       int  `arg:"--dims,env:SQLITESHIMBENCH_DIMS" help:"Dimensions of each vector" default:"128"`
	Goroutines int  `arg:"--goroutines,env:SQLITESHIMBENCH_GOROUTINES" help:"Concurrent workers per benchmark" default:"4"`
	Silent     bool `arg:"-"`
}

func (Config) Version() string {
	return fmt.Sprintf("%s\n", version.BenchVersion())
}

// MustParse parses and validates the configuration from the command
// line arguments. It returns a Config struct or exits the program
// with an error.
func MustParse(args []string) Config {
	cfg := Config{}

	parser, err := arg.NewParser(
		arg.Config{Program: "sqliteshimbench"},
		&cfg,
	)
	if err != nil {
		log.Fatal(err)
	}
	parser.MustParse(args[1:])

	if err := cfg.validate(); err != nil {
		log.Fatal(err)
	}

	return cfg
}

// validate checks that every count is positive.
func (cfg Config) validate() error {
	counts := []struct {
		name  string
		value int
	}{
		{"users", cfg.Users},
		{"queries", cfg.Queries},
		{"vectors", cfg.Vectors},
		{"dims", cfg.Dims},
		{"goroutines", cfg.Goroutines},
	}

	var errs []error
	for _, c := range counts {
		if c.value <= 0 {
			errs = append(errs, fmt.Errorf("invalid %s, must be greater than zero", c.name))
		}
	}
	return errors.Join(errs...)
}
