package hours

import "context"

// Repository defines the storage interface for canonical records.
type Repository interface {
	// Migrate creates the records table and its indexes if they are missing.
	Migrate(ctx context.Context) error

	// Reset drops and recreates the records table.
	Reset(ctx context.Context) error

	// SaveRecords inserts records in a single transaction and returns the number
	// of rows written.
	SaveRecords(ctx context.Context, records []Record) (int64, error)

	// LoadFile bulk-loads a spool file written by ingest.WriteSpool.
	LoadFile(ctx context.Context, path string) (int64, error)

	// ListByStore returns a store's intervals ordered by weekday and opening time.
	ListByStore(ctx context.Context, storeID int) ([]Record, error)

	// ListOpenAt returns the intervals covering clock ("HH:MM") on day, ordered
	// by store id.
	ListOpenAt(ctx context.Context, day Weekday, clock string) ([]Record, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)

	// Close releases any resources held by the repository.
	Close() error
}
