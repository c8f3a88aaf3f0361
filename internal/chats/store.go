// Package chats persists the mutable conversation records the session
// logs cannot express: titles, bookmarks, and the ordered set of
// session ids a resumed conversation accumulates. The read-side core
// treats these session-id sets as opaque input.
package chats

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/WolpertingerLabs/claude-code-ui-sub000/pkg/models"
)

// Store is a SQLite-backed chat record store.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the chat database at path. Use
// ":memory:" for tests.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		// First run: nothing else creates the database directory.
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create chat database directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chat database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS chats (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL DEFAULT '',
			bookmarked  INTEGER NOT NULL DEFAULT 0,
			session_ids TEXT NOT NULL DEFAULT '[]',
			created_at  TEXT NOT NULL
		)`
	if _, err := database.Exec(schema); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create chats table: %w", err)
	}

	return &Store{db: database}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create inserts a new chat seeded with one session id and returns it.
func (s *Store) Create(title, sessionID string) (models.Chat, error) {
	chat := models.Chat{
		ID:         uuid.New().String(),
		Title:      title,
		SessionIDs: []string{sessionID},
		CreatedAt:  time.Now().UTC(),
	}

	ids, err := json.Marshal(chat.SessionIDs)
	if err != nil {
		return models.Chat{}, fmt.Errorf("failed to encode session ids: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO chats (id, title, bookmarked, session_ids, created_at) VALUES (?, ?, 0, ?, ?)`,
		chat.ID, chat.Title, string(ids), chat.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return models.Chat{}, fmt.Errorf("failed to insert chat: %w", err)
	}
	return chat, nil
}

// Get returns one chat by id. The second return is false when no such
// chat exists.
func (s *Store) Get(id string) (models.Chat, bool, error) {
	row := s.db.QueryRow(
		`SELECT id, title, bookmarked, session_ids, created_at FROM chats WHERE id = ?`, id)
	chat, err := scanChat(row)
	if err == sql.ErrNoRows {
		return models.Chat{}, false, nil
	}
	if err != nil {
		return models.Chat{}, false, err
	}
	return chat, true, nil
}

// List returns all chats, newest first.
func (s *Store) List() ([]models.Chat, error) {
	rows, err := s.db.Query(
		`SELECT id, title, bookmarked, session_ids, created_at FROM chats ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	var list []models.Chat
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			continue
		}
		list = append(list, chat)
	}
	return list, rows.Err()
}

// Rename sets the chat title.
func (s *Store) Rename(id, title string) error {
	_, err := s.db.Exec(`UPDATE chats SET title = ? WHERE id = ?`, title, id)
	return err
}

// SetBookmark flips the bookmark flag.
func (s *Store) SetBookmark(id string, bookmarked bool) error {
	flag := 0
	if bookmarked {
		flag = 1
	}
	_, err := s.db.Exec(`UPDATE chats SET bookmarked = ? WHERE id = ?`, flag, id)
	return err
}

// AddSession appends a session id to the chat's ordered set, typically
// after the conversation was resumed under a new session id. Appending
// an id the chat already holds is a no-op.
func (s *Store) AddSession(id, sessionID string) error {
	chat, ok, err := s.Get(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("chat %s not found", id)
	}

	for _, existing := range chat.SessionIDs {
		if existing == sessionID {
			return nil
		}
	}
	chat.SessionIDs = append(chat.SessionIDs, sessionID)

	ids, err := json.Marshal(chat.SessionIDs)
	if err != nil {
		return fmt.Errorf("failed to encode session ids: %w", err)
	}
	_, err = s.db.Exec(`UPDATE chats SET session_ids = ? WHERE id = ?`, string(ids), id)
	return err
}

// Delete removes a chat record. The session logs it referenced are not
// touched.
func (s *Store) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM chats WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanChat(row rowScanner) (models.Chat, error) {
	var chat models.Chat
	var bookmarked int
	var ids string
	var createdAt string

	if err := row.Scan(&chat.ID, &chat.Title, &bookmarked, &ids, &createdAt); err != nil {
		return models.Chat{}, err
	}

	chat.Bookmarked = bookmarked != 0
	if err := json.Unmarshal([]byte(ids), &chat.SessionIDs); err != nil {
		chat.SessionIDs = nil
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		chat.CreatedAt = t
	}
	return chat, nil
}
