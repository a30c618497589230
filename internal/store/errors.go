package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNameAlreadyTaken is returned when an account with the same name
	// already exists (unique violation on users.name).
	ErrNameAlreadyTaken = errors.New("name already taken")

	// ErrNoUserWasFound is returned when no account matches the lookup.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrProductNotFound is returned when the singleton product row does
	// not exist yet.
	ErrProductNotFound = errors.New("product was not found")

	// ErrReviewNotFound is returned when the user has no review.
	ErrReviewNotFound = errors.New("review was not found")

	// ErrReviewAlreadyExists is returned when a user tries to store a
	// second review (unique violation on reviews.user_id).
	ErrReviewAlreadyExists = errors.New("review already exists")

	// ErrUnsupportedDSN is returned when the DSN scheme maps to no driver.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT or UPDATE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
