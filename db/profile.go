package db

import (
	"database/sql"
	"fmt"

	"github.com/drsixthsense/lifelog-public/journal"
)

// requiredKeys are the profile fields that must exist before the main
// screen is usable. Secrets are deliberately not on this list; a missing
// key only disables the matching provider.
var requiredKeys = []string{"name", "age", "sex", "work", "hobby", "language"}

// profileKeys lists every stored field in write order.
func profileKeys(p *journal.Profile) []struct{ Key, Value string } {
	return []struct{ Key, Value string }{
		{"name", p.Name},
		{"age", p.Age},
		{"sex", p.Sex},
		{"work", p.Work},
		{"hobby", p.Hobby},
		{"language", p.Language},
		{"notionToken", p.NotionToken},
		{"notionDatabaseId", p.NotionDatabaseID},
		{"chatGPTApiKey", p.ChatGPTAPIKey},
		{"geminiApiKey", p.GeminiAPIKey},
	}
}

// SaveProfile writes every profile field in a single transaction. Blank
// secrets are stored as empty strings rather than dropped, so the keys
// stay present and a later load returns exactly what was written.
func (db *DB) SaveProfile(p *journal.Profile) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO profile (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, field := range profileKeys(p) {
		if _, err := stmt.Exec(field.Key, field.Value); err != nil {
			return fmt.Errorf("failed to save profile key %q: %w", field.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit profile: %w", err)
	}
	return nil
}

// LoadProfile reads the stored profile. Keys that were never written come
// back as empty strings.
func (db *DB) LoadProfile() (*journal.Profile, error) {
	rows, err := db.conn.Query(`SELECT key, value FROM profile`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profile rows: %w", err)
	}

	return &journal.Profile{
		Name:             values["name"],
		Age:              values["age"],
		Sex:              values["sex"],
		Work:             values["work"],
		Hobby:            values["hobby"],
		Language:         values["language"],
		NotionToken:      values["notionToken"],
		NotionDatabaseID: values["notionDatabaseId"],
		ChatGPTAPIKey:    values["chatGPTApiKey"],
		GeminiAPIKey:     values["geminiApiKey"],
	}, nil
}

// GetValue reads a single profile key. The second return value reports
// whether the key exists at all.
func (db *DB) GetValue(key string) (string, bool, error) {
	var value string
	err := db.conn.QueryRow(`SELECT value FROM profile WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read profile key %q: %w", key, err)
	}
	return value, true, nil
}

// HasCompleteProfile reports whether all required profile keys exist in the
// store. Presence is what the first-launch check cares about; values may be
// blank.
func (db *DB) HasCompleteProfile() (bool, error) {
	for _, key := range requiredKeys {
		_, ok, err := db.GetValue(key)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
