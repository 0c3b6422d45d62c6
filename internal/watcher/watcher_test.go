package watcher_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oxhq/langserved/internal/engine"
	"github.com/oxhq/langserved/internal/registries"
	"github.com/oxhq/langserved/internal/watcher"
)

const testDebounce = 30 * time.Millisecond

func TestWatcher_CreateInsertsLanguage(t *testing.T) {
	root := t.TempDir()
	set := registries.New(4, zap.NewNop())

	w, err := watcher.New(root, set, testDebounce, zap.NewNop())
	require.NoError(t, err)
	go w.Run()
	defer w.Close()

	path := filepath.Join(root, "spelling", "se.zhfst")
	require.NoError(t, os.WriteFile(path, []byte("oainá\t0\n"), 0o644))

	require.Eventually(t, func() bool {
		_, ok := set.Spelling.Lookup("se")
		return ok
	}, time.Second, 5*time.Millisecond)
}

func TestWatcher_RemoveClearsLanguage(t *testing.T) {
	root := t.TempDir()
	set := registries.New(4, zap.NewNop())

	w, err := watcher.New(root, set, testDebounce, zap.NewNop())
	require.NoError(t, err)
	go w.Run()
	defer w.Close()

	path := filepath.Join(root, "hyphenation", "se.zhyph")
	require.NoError(t, os.WriteFile(path, []byte("bådnjåt\tbådn-jåt\n"), 0o644))

	require.Eventually(t, func() bool {
		_, ok := set.Hyphenation.Lookup("se")
		return ok
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, os.Remove(path))

	require.Eventually(t, func() bool {
		_, ok := set.Hyphenation.Lookup("se")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestWatcher_WriteReplacesLanguage(t *testing.T) {
	root := t.TempDir()
	set := registries.New(4, zap.NewNop())

	w, err := watcher.New(root, set, testDebounce, zap.NewNop())
	require.NoError(t, err)
	go w.Run()
	defer w.Close()

	path := filepath.Join(root, "spelling", "smj.zhfst")
	require.NoError(t, os.WriteFile(path, []byte("first\t0\n"), 0o644))

	var firstWorker any
	require.Eventually(t, func() bool {
		w, ok := set.Spelling.Lookup("smj")
		if !ok {
			return false
		}
		firstWorker = w
		return true
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("second\t1\n"), 0o644))

	require.Eventually(t, func() bool {
		w, ok := set.Spelling.Lookup("smj")
		return ok && w != firstWorker
	}, time.Second, 5*time.Millisecond)
}

func TestWatcher_IgnoresUnknownExtension(t *testing.T) {
	root := t.TempDir()
	set := registries.New(4, zap.NewNop())

	w, err := watcher.New(root, set, testDebounce, zap.NewNop())
	require.NoError(t, err)
	go w.Run()
	defer w.Close()

	path := filepath.Join(root, "spelling", "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("irrelevant"), 0o644))

	time.Sleep(5 * testDebounce)
	require.Equal(t, 0, set.Spelling.Count())
}

func TestWatcher_CreatesMissingKindDirectories(t *testing.T) {
	root := t.TempDir()
	set := registries.New(4, zap.NewNop())

	_, err := watcher.New(root, set, testDebounce, zap.NewNop())
	require.NoError(t, err)

	for _, kind := range engine.AllKinds() {
		info, err := os.Stat(filepath.Join(root, kind.Dir()))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}
}
