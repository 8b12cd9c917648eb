//
// Provides a replacement for LevelDBBackend suitable for unit tests
//
// LevelDB allows one to create a memory DB where we can store test
// data during our unit tests
//
package storage

import "os"

//
// Returns:
//  A new memory DB
//
func NewTestStorage() *LevelDBBackend {
	config, _ := NewConfigFromString("memory://")
	st, err := NewLevelDBBackend(config)
	if err != nil {
		panic(err)
	}

	return st
}

func CleanDB(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}

	os.RemoveAll(path)
}
