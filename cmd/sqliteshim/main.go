package main

import (
	"context"
	"log"

	"github.com/nsqlite/sqliteshim/internal/sqliteshim"
)

func main() {
	if err := sqliteshim.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
