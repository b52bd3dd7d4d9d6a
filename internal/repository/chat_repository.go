package repository

import (
	"database/sql"
	"fmt"

	"github.com/arbitrum1984/Arbitron-Systems/internal/model"
)

type ChatRepository struct {
	db *sql.DB
}

func NewChatRepository(db *sql.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// AddMessage appends a message to a session, creating the session on
// first use. The BIGSERIAL message id keeps each session totally
// ordered even with concurrent writers.
func (r *ChatRepository) AddMessage(sessionID, role, content string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO chat_session(id, title)
		VALUES($1, $2)
		ON CONFLICT (id) DO NOTHING
	`, sessionID, sessionTitle(sessionID))
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO chat_message(session_id, role, content)
		VALUES($1, $2, $3)
	`, sessionID, role, content)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func sessionTitle(sessionID string) string {
	suffix := sessionID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return fmt.Sprintf("Chat %s", suffix)
}

func (r *ChatRepository) GetAllSessions() ([]model.ChatSession, error) {
	rows, err := r.db.Query(`
		SELECT id, title, created_at
		FROM chat_session
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.ChatSession
	for rows.Next() {
		var s model.ChatSession
		if err := rows.Scan(&s.ID, &s.Title, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *ChatRepository) GetHistory(sessionID string) ([]model.ChatMessage, error) {
	rows, err := r.db.Query(`
		SELECT id, session_id, role, content, created_at
		FROM chat_message
		WHERE session_id = $1
		ORDER BY id ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

// DeleteSession removes the session; messages go with it via the
// ON DELETE CASCADE constraint.
func (r *ChatRepository) DeleteSession(sessionID string) error {
	_, err := r.db.Exec(`
		DELETE FROM chat_session WHERE id = $1
	`, sessionID)
	return err
}

func (r *ChatRepository) GetSessionCount() (int, error) {
	var total int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM chat_session
	`).Scan(&total)
	return total, err
}
