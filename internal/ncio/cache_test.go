package ncio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnora/dnora/pkg/store"
)

// pointStore has n points and estimates to 1024 + 16n bytes.
func pointStore(t *testing.T, name string, n int) *store.Store {
	t.Helper()
	inds := make([]float64, n)
	for i := range inds {
		inds[i] = float64(i)
	}
	s, err := store.New(name, store.NumericCoord("inds", inds))
	require.NoError(t, err)
	data, err := store.NewArray([]int{n}, inds)
	require.NoError(t, err)
	require.NoError(t, s.Put(store.Variable{Name: "hs", Dims: []string{"inds"}, Data: data}))
	return s
}

func TestCacheGet(t *testing.T) {
	c, err := NewCache(filepath.Join(t.TempDir(), "cache"), 0)
	require.NoError(t, err)

	var loads int32
	loader := func() (*store.Store, error) {
		atomic.AddInt32(&loads, 1)
		return pointStore(t, "a", 3), nil
	}

	s, err := c.Get("a", loader)
	require.NoError(t, err)
	assert.Equal(t, "a", s.Name())
	assert.FileExists(t, c.Path("a"))

	// Memory hit; the copy handed out doesn't alias the cached store
	s.SetAttr("touched", "yes")
	again, err := c.Get("a", loader)
	require.NoError(t, err)
	_, ok := again.Attr("touched")
	assert.False(t, ok)
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))

	// Disk hit after clearing memory
	c.Clear()
	assert.Equal(t, 0, c.Stats().StoreCount)
	fromDisk, err := c.Get("a", loader)
	require.NoError(t, err)
	vals, _ := fromDisk.Values("hs")
	assert.Equal(t, []float64{0, 1, 2}, vals)
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))

	stats := c.Stats()
	assert.Equal(t, 1, stats.StoreCount)
	assert.Equal(t, int64(1024+3*16), stats.UsedMemory)
}

func TestCacheLoaderError(t *testing.T) {
	c, err := NewCache(t.TempDir(), 0)
	require.NoError(t, err)
	boom := errors.New("boom")
	_, err = c.Get("x", func() (*store.Store, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.NoFileExists(t, c.Path("x"))
}

func TestCacheEviction(t *testing.T) {
	// Room for two stores of 10 points
	c, err := NewCache(t.TempDir(), 2*(1024+160))
	require.NoError(t, err)

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, c.Add(name, pointStore(t, name, 10)))
	}
	stats := c.Stats()
	assert.Equal(t, 2, stats.StoreCount)
	assert.LessOrEqual(t, stats.UsedMemory, stats.MaxMemory)

	// a was evicted from memory, but is still on disk
	s, err := c.Get("a", func() (*store.Store, error) { return nil, fmt.Errorf("unexpected load") })
	require.NoError(t, err)
	assert.Equal(t, "a", s.Name())

	// Too large for memory, still written
	assert.Error(t, c.Add("big", pointStore(t, "big", 1000)))
	assert.FileExists(t, c.Path("big"))
}

func TestCacheReplaceKeepsBudget(t *testing.T) {
	c, err := NewCache(t.TempDir(), 2*(1024+160))
	require.NoError(t, err)
	require.NoError(t, c.Add("a", pointStore(t, "a", 10)))
	require.NoError(t, c.Add("b", pointStore(t, "b", 10)))

	// Growing a pushes b out of memory
	require.NoError(t, c.Add("a", pointStore(t, "a", 20)))
	stats := c.Stats()
	assert.Equal(t, 1, stats.StoreCount)
	assert.Equal(t, int64(1024+20*16), stats.UsedMemory)
	assert.Equal(t, 2, stats.TotalAccess)

	// A replacement too large for memory drops the stale copy
	assert.Error(t, c.Add("a", pointStore(t, "a", 1000)))
	stats = c.Stats()
	assert.Equal(t, 0, stats.StoreCount)
	assert.Equal(t, int64(0), stats.UsedMemory)
	s, err := c.Get("a", func() (*store.Store, error) { return nil, fmt.Errorf("unexpected load") })
	require.NoError(t, err)
	vals, _ := s.Values("hs")
	assert.Len(t, vals, 1000)
}

func TestCacheRemove(t *testing.T) {
	c, err := NewCache(t.TempDir(), 0)
	require.NoError(t, err)
	require.NoError(t, c.Add("a", pointStore(t, "a", 2)))

	require.NoError(t, c.Remove("a"))
	assert.Equal(t, 0, c.Stats().StoreCount)
	_, err = os.Stat(c.Path("a"))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, c.Remove("a"))
}

func TestReadAll(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 5; i++ {
		name := fmt.Sprintf("s%d", i)
		path := filepath.Join(dir, name+".nc")
		require.NoError(t, Write(path, pointStore(t, name, i+1)))
		paths = append(paths, path)
	}
	missing := filepath.Join(dir, "missing.nc")

	for _, parallel := range []bool{true, false} {
		logger, hook := test.NewNullLogger()
		var progress int32
		stores, errs := ReadAll(append(paths[:2:2], append([]string{missing}, paths[2:]...)...), ReadOptions{
			Parallel:   parallel,
			Workers:    3,
			SkipErrors: true,
			Progress:   func(read, total int) { atomic.AddInt32(&progress, 1) },
			Log:        logger,
		})
		require.Len(t, stores, 5, "parallel=%v", parallel)
		for i, s := range stores {
			assert.Equal(t, fmt.Sprintf("s%d", i), s.Name())
		}
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Error(), "missing.nc")
		assert.Equal(t, int32(6), atomic.LoadInt32(&progress))
		require.Len(t, hook.Entries, 1)
		assert.Equal(t, missing, hook.LastEntry().Data["file"])
		logged := hook.LastEntry().Data[logrus.ErrorKey].(error)
		assert.ErrorIs(t, logged, fs.ErrNotExist)
		// Logged as returned by Read; the path is only carried in the field
		assert.True(t, strings.HasPrefix(logged.Error(), "ncio: "), logged.Error())
	}

	_, errs := ReadAll([]string{missing}, ReadOptions{Parallel: true})
	assert.Len(t, errs, 1)

	stores, errs := ReadAll(nil, DefaultReadOptions())
	assert.Empty(t, stores)
	assert.Nil(t, errs)
}
