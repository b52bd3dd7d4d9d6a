package repository

import (
	"database/sql"
	"strings"
)

type FavoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add inserts a ticker into the watchlist. Tickers are normalized to
// upper case and the insert is idempotent.
func (r *FavoriteRepository) Add(ticker string) error {
	_, err := r.db.Exec(`
		INSERT INTO favorite(ticker)
		VALUES($1)
		ON CONFLICT (ticker) DO NOTHING
	`, strings.ToUpper(strings.TrimSpace(ticker)))
	return err
}

func (r *FavoriteRepository) List() ([]string, error) {
	rows, err := r.db.Query(`
		SELECT ticker FROM favorite
		ORDER BY added_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tickers = append(tickers, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickers, nil
}

func (r *FavoriteRepository) Remove(ticker string) error {
	_, err := r.db.Exec(`
		DELETE FROM favorite WHERE ticker = $1
	`, strings.ToUpper(strings.TrimSpace(ticker)))
	return err
}
