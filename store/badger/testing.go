package badger

// NewMemoryStore creates a store on an in-memory database for testing.
// Closing the store closes the database.
func NewMemoryStore() (*Store, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	s := NewStore(backend)
	s.ownsBackend = true
	return s, nil
}
