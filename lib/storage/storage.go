package storage

type IterItem struct {
	N     uint64
	Key   []byte
	Value []byte
}

type Item struct {
	Key   string
	Value interface{}
}

func NewStorage(config *Config) (st *LevelDBBackend, err error) {
	st = &LevelDBBackend{}
	if err = st.Init(config); err != nil {
		return nil, err
	}

	return
}
