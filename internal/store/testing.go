package store

// OpenTest creates a DB backed by an in-memory database.
// This is only intended for use in tests.
func OpenTest() (*DB, error) {
	return openAt(":memory:")
}
