package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcherDetectsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "knowledge.txt")
	require.NoError(t, os.WriteFile(path, []byte("initial"), 0644))

	var fired atomic.Int32
	fw, err := NewFileWatcher(path, func(string) {
		fired.Add(1)
	})
	require.NoError(t, err)
	fw.debounceDelay = 50 * time.Millisecond

	require.NoError(t, fw.Start())
	defer fw.Stop()

	require.NoError(t, os.WriteFile(path, []byte("updated"), 0644))

	assert.Eventually(t, func() bool {
		return fired.Load() >= 1
	}, 2*time.Second, 20*time.Millisecond)
}

func TestFileWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "knowledge.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))

	var fired atomic.Int32
	fw, err := NewFileWatcher(path, func(string) {
		fired.Add(1)
	})
	require.NoError(t, err)
	fw.debounceDelay = 50 * time.Millisecond

	require.NoError(t, fw.Start())
	defer fw.Stop()

	require.NoError(t, os.WriteFile(other, []byte("b"), 0644))

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestFileWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "knowledge.txt")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))

	var fired atomic.Int32
	fw, err := NewFileWatcher(path, func(string) {
		fired.Add(1)
	})
	require.NoError(t, err)
	fw.debounceDelay = 200 * time.Millisecond

	require.NoError(t, fw.Start())
	defer fw.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("burst"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return fired.Load() >= 1
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}
