package db

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func Connect() error {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		fmt.Println("DATABASE_URL environment variable is not set")
	}

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	return DB.Ping()
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}

// EnsureSchema creates the chat and watchlist tables if they do not
// exist. Messages carry a BIGSERIAL id, which is what gives a session
// its total per-session ordering.
func EnsureSchema() error {
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS chat_session (
			id TEXT PRIMARY KEY,
			title TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS chat_message (
			id BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL REFERENCES chat_session(id) ON DELETE CASCADE,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_chat_message_session ON chat_message(session_id, id);

		CREATE TABLE IF NOT EXISTS favorite (
			ticker TEXT PRIMARY KEY,
			added_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	return err
}
