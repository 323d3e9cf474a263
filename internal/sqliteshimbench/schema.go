package sqliteshimbench

import "database/sql"

// recreateSchema drops all tables and recreates them.
func recreateSchema(db *sql.DB) error {
	stmts := []string{
		`DROP TABLE IF EXISTS users`,
		`DROP TABLE IF EXISTS embeddings`,

		`CREATE TABLE users (
			id INTEGER PRIMARY KEY NOT NULL,
			created INTEGER NOT NULL,
			email TEXT NOT NULL,
			active INTEGER NOT NULL
		)`,
		`CREATE INDEX users_created ON users(created)`,
	}

	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}

	return nil
}
