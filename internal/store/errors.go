package store

import "errors"

// Sentinel errors returned by store components to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrMetadataUnavailable is returned when the metadata store cannot be
	// reached at all (connection refused, authentication failure, ping
	// timeout). Fatal for the run.
	ErrMetadataUnavailable = errors.New("metadata store unavailable")

	// ErrSchemaUndetectable is returned when the album, asset, or
	// album-membership relations cannot be located in the store, or when a
	// previously detected relation disappears mid-run. Fatal for the run.
	ErrSchemaUndetectable = errors.New("metadata schema undetectable")

	// ErrNoUserWasFound is returned when the configured owner filter does
	// not match any user in the store.
	ErrNoUserWasFound = errors.New("no user was found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)

// Progress record errors.
var (
	// ErrNoProgressRecord is returned by the progress store when no record
	// has ever been written, or the record on disk is empty or malformed.
	// Readers treat this as "no run has completed yet", never as a crash.
	ErrNoProgressRecord = errors.New("no progress record available")
)
