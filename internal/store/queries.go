package store

// Table names are interpolated from the closed Kind enum, never from caller
// input, so building these with Sprintf is safe.
const (
	putRecord = `
		INSERT INTO %s (id, payload, synced, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			payload    = excluded.payload,
			synced     = excluded.synced,
			updated_at = excluded.updated_at;`

	getRecord = `
		SELECT id, payload, synced
		FROM %s
		WHERE id = $1;`

	getAllRecords = `
		SELECT id, payload, synced
		FROM %s;`

	getUnsyncedRecords = `
		SELECT id, payload, synced
		FROM %s
		WHERE synced = 0;`

	countUnsyncedRecords = `
		SELECT COUNT(*)
		FROM %s
		WHERE synced = 0;`

	markRecordSynced = `
		UPDATE %s
		SET synced = 1, updated_at = $1
		WHERE id = $2;`

	clearTable = `DELETE FROM %s;`
)
