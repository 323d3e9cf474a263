package main

import (
	"context"
	"log"

	"github.com/nsqlite/sqliteshim/internal/sqliteshimbench"
)

func main() {
	if err := sqliteshimbench.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
