package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/starford/vaultboot/internal/models"
)

// DefaultLimit caps List when no positive limit is given.
const DefaultLimit = 50

// Record inserts r. Empty ids are filled with a new UUID and zero timestamps
// with the current time.
func (db *DB) Record(ctx context.Context, r models.VaultRecord) (models.VaultRecord, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if r.Plugins == nil {
		r.Plugins = []string{}
	}
	pluginsJSON, err := json.Marshal(r.Plugins)
	if err != nil {
		return r, fmt.Errorf("history: encode plugins: %w", err)
	}

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO vaults (id, name, path, template, mode, source, plugins, config_checksum, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Name, r.Path, r.Template, r.Mode, r.Source, string(pluginsJSON), r.ConfigChecksum, r.CreatedAt)
	if err != nil {
		return r, fmt.Errorf("history: insert: %w", err)
	}
	return r, nil
}

// List returns up to limit records, newest first.
func (db *DB) List(ctx context.Context, limit int) ([]models.VaultRecord, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, path, template, mode, source, plugins, config_checksum, created_at
		FROM vaults
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	defer rows.Close()

	out := []models.VaultRecord{}
	for rows.Next() {
		var (
			r       models.VaultRecord
			plugins string
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Path, &r.Template, &r.Mode, &r.Source, &plugins, &r.ConfigChecksum, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		if err := json.Unmarshal([]byte(plugins), &r.Plugins); err != nil {
			return nil, fmt.Errorf("history: decode plugins: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
