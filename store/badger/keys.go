package badger

import "fmt"

// Key prefix for embedding entries.
const entryPrefix = "embent"

// makeEntryKey generates a key for an entry by ID.
func makeEntryKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", entryPrefix, id))
}

func entryScanPrefix() []byte {
	return []byte(entryPrefix + ":")
}
