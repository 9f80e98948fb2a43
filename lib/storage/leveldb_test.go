package storage

import (
	stderrors "errors"
	"fmt"
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/minidao/lib/errors"
)

func TestLevelDBBackendInitFileStorage(t *testing.T) {
	path, _ := ioutil.TempDir("", "minidao")
	defer CleanDB(path)

	config, err := NewConfigFromString("file://" + path)
	require.NoError(t, err)

	st, err := NewStorage(config)
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.New("showme", "findme"))
}

func TestLevelDBBackendInitMemStorage(t *testing.T) {
	config, err := NewConfigFromString("memory://")
	require.NoError(t, err)

	st, err := NewStorage(config)
	require.NoError(t, err)
	defer st.Close()
}

func TestNewConfigFromString(t *testing.T) {
	_, err := NewConfigFromString("redis://127.0.0.1")
	require.Error(t, err)

	_, err = NewConfigFromString("file://")
	require.Error(t, err)

	config, err := NewConfigFromString("file:///tmp/db")
	require.NoError(t, err)
	require.Equal(t, "file", config.Scheme)
	require.Equal(t, "/tmp/db", config.Path)
	require.Equal(t, "file:///tmp/db", config.String())
}

func TestLevelDBBackendNew(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	key := "showme"
	input := map[string]string{
		"90": "99",
		"91": "91",
	}
	require.NoError(t, st.New(key, input))

	fetched := map[string]string{}
	require.NoError(t, st.Get(key, &fetched))
	require.Equal(t, input, fetched)

	err := st.New(key, input)
	require.True(t, stderrors.Is(err, errors.StorageRecordAlreadyExists))
}

func TestLevelDBBackendSet(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	err := st.Set("showme", 1)
	require.True(t, stderrors.Is(err, errors.StorageRecordDoesNotExist))

	require.NoError(t, st.New("showme", 1))
	require.NoError(t, st.Set("showme", 2))

	var fetched int
	require.NoError(t, st.Get("showme", &fetched))
	require.Equal(t, 2, fetched)
}

func TestLevelDBBackendNewsSets(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	require.NoError(t, st.News(Item{Key: "a", Value: 1}, Item{Key: "b", Value: 2}))
	require.Error(t, st.News(Item{Key: "b", Value: 3}, Item{Key: "c", Value: 3}))

	exists, err := st.Has("c")
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, st.Sets(Item{Key: "a", Value: 10}, Item{Key: "b", Value: 20}))

	var b int
	require.NoError(t, st.Get("b", &b))
	require.Equal(t, 20, b)
}

func TestLevelDBBackendRemove(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	require.NoError(t, st.New("showme", 1))
	require.NoError(t, st.Remove("showme"))

	exists, err := st.Has("showme")
	require.NoError(t, err)
	require.False(t, exists)

	require.Error(t, st.Remove("showme"))

	_, err = st.GetRaw("showme")
	require.True(t, stderrors.Is(err, errors.StorageRecordDoesNotExist))
}

func TestLevelDBBackendTransactionCommit(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	ts, err := st.OpenTransaction()
	require.NoError(t, err)
	require.True(t, ts.IsTransaction())
	require.False(t, st.IsTransaction())

	_, err = ts.OpenTransaction()
	require.Error(t, err)

	require.NoError(t, ts.New("showme", 1))

	exists, err := st.Has("showme")
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, ts.Commit())

	exists, err = st.Has("showme")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestLevelDBBackendTransactionDiscard(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	ts, err := st.OpenTransaction()
	require.NoError(t, err)

	require.NoError(t, ts.New("showme", 1))
	require.NoError(t, ts.Discard())

	exists, err := st.Has("showme")
	require.NoError(t, err)
	require.False(t, exists)

	require.Error(t, st.Commit())
}

func collectKeys(iterFunc func() (IterItem, bool), closeFunc func()) (keys []string) {
	defer closeFunc()
	for {
		item, hasNext := iterFunc()
		if !hasNext {
			break
		}
		keys = append(keys, string(item.Key))
	}
	return
}

func TestLevelDBBackendGetIterator(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	var all []string
	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("test-%02d", i)
		all = append(all, key)
		require.NoError(t, st.New(key, i))
	}
	require.NoError(t, st.New("other-00", 0))

	{ // all
		keys := collectKeys(st.GetIterator("test-", nil))
		require.Equal(t, all, keys)
	}

	{ // reverse
		keys := collectKeys(st.GetIterator("test-", NewDefaultListOptions(true, nil, 0)))
		require.Equal(t, 10, len(keys))
		require.Equal(t, "test-09", keys[0])
		require.Equal(t, "test-00", keys[9])
	}

	{ // limit
		keys := collectKeys(st.GetIterator("test-", NewDefaultListOptions(false, nil, 3)))
		require.Equal(t, all[:3], keys)
	}

	{ // cursor excludes itself
		keys := collectKeys(st.GetIterator("test-", NewDefaultListOptions(false, []byte("test-02"), 3)))
		require.Equal(t, all[3:6], keys)
	}

	{ // reverse with cursor
		keys := collectKeys(st.GetIterator("test-", NewDefaultListOptions(true, []byte("test-05"), 2)))
		require.Equal(t, []string{"test-04", "test-03"}, keys)
	}

	{ // cursor at the end
		keys := collectKeys(st.GetIterator("test-", NewDefaultListOptions(false, []byte("test-09"), 0)))
		require.Empty(t, keys)
	}
}
