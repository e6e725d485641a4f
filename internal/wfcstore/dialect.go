// Package wfcstore persists learned catalogs and solve-attempt history so
// a catalog extracted once from a set of exemplars can be reused across
// process restarts without re-extracting patterns, and so operators can
// inspect how many retries a given configuration needed.
//
// Storage is dual-dialect: small deployments
// point at a local SQLite file, larger ones at a shared PostgreSQL
// instance, and the Dialect abstraction keeps the SQL identical except
// for placeholder syntax and insert-ID retrieval.
package wfcstore

// Dialect abstracts the database-specific SQL syntax differences between
// SQLite and PostgreSQL that this package's queries need to account for.
type Dialect interface {
	// DriverName returns the driver name for sql.Open().
	DriverName() string

	// Placeholder returns the parameter placeholder for the given
	// position (1-indexed). SQLite: "?" (ignores position). PostgreSQL:
	// "$1", "$2", etc.
	Placeholder(position int) string

	// SupportsLastInsertID reports whether the driver supports
	// LastInsertId(). SQLite: true. PostgreSQL: false (uses RETURNING).
	SupportsLastInsertID() bool

	// ReturningClause returns the RETURNING clause for INSERT
	// statements. SQLite: "". PostgreSQL: " RETURNING <column>".
	ReturningClause(column string) string

	// InitStatements returns database-specific initialization
	// statements run once after Open.
	InitStatements() []string

	// IsDuplicateKeyError reports whether err is a unique constraint
	// violation (e.g. saving a catalog under a name already taken).
	IsDuplicateKeyError(err error) bool

	// CaseInsensitiveCollation returns the collation clause for
	// case-insensitive text comparison on catalog names.
	CaseInsensitiveCollation() string
}

// DialectType identifies the database dialect.
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect creates a new Dialect for the given type, defaulting to
// SQLite for anything unrecognized.
func NewDialect(dialectType DialectType) Dialect {
	switch dialectType {
	case DialectPostgres:
		return &PostgresDialect{}
	default:
		return &SQLiteDialect{}
	}
}
