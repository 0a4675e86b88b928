package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Ivanblancs/weave-sync/internal/logger"
	"github.com/Ivanblancs/weave-sync/models"
)

type localStore struct {
	*DB
	logger *logger.Logger
}

// NewLocalStore wraps the SQLite connection in the LocalStore contract.
func NewLocalStore(db *DB, logger *logger.Logger) LocalStore {
	return &localStore{
		DB:     db,
		logger: logger,
	}
}

func (l *localStore) Put(ctx context.Context, record models.Record) error {
	if !record.Kind.Valid() {
		return fmt.Errorf("put %q: %w", record.Kind, ErrUnknownKind)
	}

	payload, err := json.Marshal(record.Payload)
	if err != nil {
		return fmt.Errorf("encode payload for %s/%s: %w", record.Kind, record.ID, err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	query := fmt.Sprintf(putRecord, record.Kind.Table())
	if _, err = l.DB.ExecContext(ctx, query, record.ID, string(payload), record.Synced, now, now); err != nil {
		l.logger.Err(err).
			Str("func", "localStore.Put").
			Str("kind", record.Kind.String()).
			Str("id", record.ID).
			Msg("failed to execute upsert for record")
		return fmt.Errorf("failed to save record (id=%s): %w", record.ID, errors.Join(ErrStorageFault, err))
	}

	return nil
}

func (l *localStore) Get(ctx context.Context, kind models.Kind, id string) (models.Record, error) {
	if !kind.Valid() {
		return models.Record{}, fmt.Errorf("get %q: %w", kind, ErrUnknownKind)
	}

	query := fmt.Sprintf(getRecord, kind.Table())
	row := l.DB.QueryRowContext(ctx, query, id)

	record, err := scanRecord(row, kind)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, fmt.Errorf("record %s/%s: %w", kind, id, ErrRecordNotFound)
	}
	if err != nil {
		l.logger.Err(err).
			Str("func", "localStore.Get").
			Str("kind", kind.String()).
			Str("id", id).
			Msg("failed to read record")
		return models.Record{}, fmt.Errorf("failed to read record %s/%s: %w", kind, id, err)
	}

	return record, nil
}

func (l *localStore) GetAll(ctx context.Context, kind models.Kind) ([]models.Record, error) {
	return l.query(ctx, kind, getAllRecords, "localStore.GetAll")
}

func (l *localStore) GetUnsynced(ctx context.Context, kind models.Kind) ([]models.Record, error) {
	return l.query(ctx, kind, getUnsyncedRecords, "localStore.GetUnsynced")
}

func (l *localStore) CountUnsynced(ctx context.Context, kind models.Kind) (int, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("count %q: %w", kind, ErrUnknownKind)
	}

	query := fmt.Sprintf(countUnsyncedRecords, kind.Table())
	var count int
	if err := l.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
		l.logger.Err(err).
			Str("func", "localStore.CountUnsynced").
			Str("kind", kind.String()).
			Msg("failed to count unsynced records")
		return 0, fmt.Errorf("failed to count unsynced %s: %w", kind, err)
	}

	return count, nil
}

func (l *localStore) MarkSynced(ctx context.Context, kind models.Kind, id string) error {
	if !kind.Valid() {
		return fmt.Errorf("mark synced %q: %w", kind, ErrUnknownKind)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	query := fmt.Sprintf(markRecordSynced, kind.Table())
	if _, err := l.DB.ExecContext(ctx, query, now, id); err != nil {
		l.logger.Err(err).
			Str("func", "localStore.MarkSynced").
			Str("kind", kind.String()).
			Str("id", id).
			Msg("failed to mark record synced")
		return fmt.Errorf("failed to mark record synced %s/%s: %w", kind, id, err)
	}

	return nil
}

// ClearAll deletes every record in every kind table, continuing past
// per-table failures. Partial failures are logged, not raised: the rest of
// the tables still get cleared, matching logout semantics where any unsynced
// work is discarded.
func (l *localStore) ClearAll(ctx context.Context) error {
	for _, kind := range models.Kinds() {
		query := fmt.Sprintf(clearTable, kind.Table())
		if _, err := l.DB.ExecContext(ctx, query); err != nil {
			l.logger.Err(err).
				Str("func", "localStore.ClearAll").
				Str("kind", kind.String()).
				Msg("failed to clear table")
		}
	}

	return nil
}

func (l *localStore) query(ctx context.Context, kind models.Kind, tmpl, caller string) ([]models.Record, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("query %q: %w", kind, ErrUnknownKind)
	}

	query := fmt.Sprintf(tmpl, kind.Table())
	rows, err := l.DB.QueryContext(ctx, query)
	if err != nil {
		l.logger.Err(err).
			Str("func", caller).
			Str("kind", kind.String()).
			Msg("failed to execute query for records")
		return nil, fmt.Errorf("failed to query %s records: %w", kind, err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		record, scanErr := scanRecord(rows, kind)
		if scanErr != nil {
			l.logger.Err(scanErr).
				Str("func", caller).
				Str("kind", kind.String()).
				Msg("failed to scan record row")
			return nil, fmt.Errorf("failed to scan %s record row: %w", kind, scanErr)
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s records: %w", kind, err)
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner, kind models.Kind) (models.Record, error) {
	var id, rawPayload string
	var synced bool
	if err := row.Scan(&id, &rawPayload, &synced); err != nil {
		return models.Record{}, err
	}

	payload, err := models.DecodePayload([]byte(rawPayload))
	if err != nil {
		return models.Record{}, err
	}

	return models.Record{ID: id, Kind: kind, Payload: payload, Synced: synced}, nil
}
