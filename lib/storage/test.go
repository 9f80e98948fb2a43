//
// Provides a replacement for LevelDBBackend suitable for unit tests
//
// LevelDB allows one to create a memory DB where we can store test
// data during our unit tests
//
package storage

import "os"

func CleanDB(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}

	os.RemoveAll(path)
}

//
// Returns:
//  A new memory DB
//
func NewTestStorage() *LevelDBBackend {
	st := &LevelDBBackend{}
	config, _ := NewConfigFromString("memory://")
	if err := st.Init(config); err != nil {
		panic(err)
	}

	return st
}
