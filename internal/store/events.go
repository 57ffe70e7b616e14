package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"listboard/internal/model"
)

// appendEvent records a mutation in the same transaction as the mutation itself.
func appendEvent(ctx context.Context, tx *sql.Tx, typ, entityKind string, entityID int64, payload any) error {
	pb, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO events(ts_unixms, type, entity_kind, entity_id, payload_json) VALUES(?, ?, ?, ?, ?)`,
		time.Now().UTC().UnixMilli(), typ, entityKind, entityID, string(pb))
	return err
}

// ReadEvents returns the newest limit events, oldest first. kind filters by entity kind
// ("note", "todo") when non-empty. limit <= 0 returns everything.
func (s *Store) ReadEvents(ctx context.Context, kind string, limit int) ([]model.Event, error) {
	q := `SELECT id, ts_unixms, type, entity_kind, entity_id, payload_json FROM events`
	var args []any
	if kind = strings.TrimSpace(kind); kind != "" {
		q += ` WHERE entity_kind = ?`
		args = append(args, kind)
	}
	q += ` ORDER BY id DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var ev model.Event
		var tsMs int64
		var payloadJSON string
		if err := rows.Scan(&ev.ID, &tsMs, &ev.Type, &ev.EntityKind, &ev.EntityID, &payloadJSON); err != nil {
			return nil, err
		}
		ev.TS = time.UnixMilli(tsMs).UTC()
		if err := json.Unmarshal([]byte(payloadJSON), &ev.Payload); err != nil {
			// Keep rows written by hand or by older builds readable as raw text.
			ev.Payload = payloadJSON
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Event{}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
