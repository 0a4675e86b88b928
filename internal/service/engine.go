package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Ivanblancs/weave-sync/internal/adapter"
	"github.com/Ivanblancs/weave-sync/internal/config"
	"github.com/Ivanblancs/weave-sync/internal/logger"
	"github.com/Ivanblancs/weave-sync/internal/store"
	"github.com/Ivanblancs/weave-sync/models"
)

type syncEngine struct {
	localStore store.LocalStore
	uploader   adapter.MediaUploader
	remote     adapter.DocumentStore
	logger     *logger.Logger

	// Bounded set of in-flight background syncs kicked off by Add.
	wg  sync.WaitGroup
	sem chan struct{}

	// Per-id lock table. Serializes an Add-triggered sync racing a drain
	// for the same record, so at most one upload happens per id at a time.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewSyncEngine wires the engine with its injected dependencies. No hidden
// singletons: the caller constructs one engine at application start and
// passes it by reference to whatever needs it.
func NewSyncEngine(localStore store.LocalStore, uploader adapter.MediaUploader, remote adapter.DocumentStore, cfg config.Sync, log *logger.Logger) SyncEngine {
	maxInFlight := cfg.MaxInFlight
	if maxInFlight <= 0 {
		maxInFlight = 8
	}

	return &syncEngine{
		localStore: localStore,
		uploader:   uploader,
		remote:     remote,
		logger:     log,
		sem:        make(chan struct{}, maxInFlight),
		locks:      make(map[string]*sync.Mutex),
	}
}

func (e *syncEngine) Add(ctx context.Context, kind models.Kind, payload models.Payload) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("add: unknown record kind %q", kind)
	}
	if payload == nil {
		payload = models.Payload{}
	}

	id, ok := payload["id"].(string)
	if !ok || id == "" {
		id = uuid.NewString()
	}

	data := payload.Clone()
	data["id"] = id

	record := models.Record{ID: id, Kind: kind, Payload: data, Synced: false}
	if err := e.localStore.Put(ctx, record); err != nil {
		return "", fmt.Errorf("queue %s record locally: %w", kind, err)
	}

	// Fire-and-forget, but tracked: Wait() lets callers and tests observe
	// completion deterministically. The background sync is detached from
	// the caller's cancellation so an early UI context cancel does not
	// abort a sync already under way.
	syncCtx := context.WithoutCancel(ctx)
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.sem <- struct{}{}
		defer func() { <-e.sem }()

		e.syncLogged(syncCtx, record)
	}()

	return id, nil
}

func (e *syncEngine) SyncItem(ctx context.Context, record models.Record) error {
	if !record.Kind.Valid() {
		return fmt.Errorf("sync: unknown record kind %q", record.Kind)
	}

	unlock := e.lockID(record.Kind, record.ID)
	defer unlock()

	// Re-read under the lock: if the record was overwritten while this sync
	// was queued, push the latest payload instead of the stale snapshot.
	switch current, err := e.localStore.Get(ctx, record.Kind, record.ID); {
	case err == nil:
		record = current
	case errors.Is(err, store.ErrRecordNotFound):
		// Cleared while queued; nothing left to sync.
		return nil
	}

	resolve, ok := resolvers[record.Kind]
	if !ok {
		// Local-only kind: no remote representation, flag it as settled so
		// the drain stops re-visiting it.
		e.logger.Warn().
			Str("func", "syncEngine.SyncItem").
			Str("kind", record.Kind.String()).
			Str("id", record.ID).
			Msg("no sync resolver for kind, keeping record local")
		return e.markSynced(ctx, record)
	}

	payload, err := resolve(ctx, e.uploader, record.Payload)
	if err != nil {
		return fmt.Errorf("resolve %s/%s payload: %w", record.Kind, record.ID, err)
	}

	// A transient local file handle must never be persisted remotely.
	if payload.HasFileRefs() {
		return fmt.Errorf("payload for %s/%s still carries pending file references", record.Kind, record.ID)
	}

	if err = e.remote.Upsert(ctx, record.Kind.Collection(), record.ID, payload, true); err != nil {
		return fmt.Errorf("upsert %s/%s: %w", record.Kind, record.ID, err)
	}

	return e.markSynced(ctx, record)
}

// SyncPending is the full queue drain: every kind in fixed order, records
// within a kind sequentially, per-record failures logged and skipped.
func (e *syncEngine) SyncPending(ctx context.Context) {
	for _, kind := range models.Kinds() {
		records, err := e.localStore.GetUnsynced(ctx, kind)
		if err != nil {
			e.logger.Err(err).
				Str("func", "syncEngine.SyncPending").
				Str("kind", kind.String()).
				Msg("failed to list unsynced records, skipping kind")
			continue
		}

		for _, record := range records {
			e.syncLogged(ctx, record)
		}
	}
}

func (e *syncEngine) Clear(ctx context.Context) error {
	return e.localStore.ClearAll(ctx)
}

func (e *syncEngine) PendingCounts(ctx context.Context) (map[models.Kind]int, error) {
	counts := make(map[models.Kind]int, len(models.Kinds()))
	for _, kind := range models.Kinds() {
		count, err := e.localStore.CountUnsynced(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("count pending %s: %w", kind, err)
		}
		counts[kind] = count
	}

	return counts, nil
}

func (e *syncEngine) Wait() {
	e.wg.Wait()
}

// syncLogged is the swallow boundary for background syncs: failures are
// logged and otherwise observable only through the record staying unsynced.
func (e *syncEngine) syncLogged(ctx context.Context, record models.Record) {
	if err := e.SyncItem(ctx, record); err != nil {
		e.logger.Err(err).
			Str("func", "syncEngine.syncLogged").
			Str("kind", record.Kind.String()).
			Str("id", record.ID).
			Msg("failed to sync record, left unsynced")
		return
	}

	e.logger.Debug().
		Str("kind", record.Kind.String()).
		Str("id", record.ID).
		Msg("record synced")
}

func (e *syncEngine) markSynced(ctx context.Context, record models.Record) error {
	if err := e.localStore.MarkSynced(ctx, record.Kind, record.ID); err != nil {
		return fmt.Errorf("mark %s/%s synced: %w", record.Kind, record.ID, err)
	}
	return nil
}

func (e *syncEngine) lockID(kind models.Kind, id string) func() {
	key := kind.String() + "/" + id

	e.mu.Lock()
	l, ok := e.locks[key]
	if !ok {
		l = &sync.Mutex{}
		e.locks[key] = l
	}
	e.mu.Unlock()

	l.Lock()
	return l.Unlock
}
