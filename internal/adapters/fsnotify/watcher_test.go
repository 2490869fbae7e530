package fsnotify

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// waitForCallback waits up to timeout for the callback channel to receive a value.
func waitForCallback(ch <-chan string, timeout time.Duration) (string, bool) {
	select {
	case v := <-ch:
		return v, true
	case <-time.After(timeout):
		return "", false
	}
}

// startWatcher watches dir and forwards callbacks to the returned channel.
func startWatcher(t *testing.T, dir string) (*Watcher, <-chan string) {
	t.Helper()
	w, err := NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })

	changed := make(chan string, 10)
	require.NoError(t, w.Watch(dir, func(path string) {
		changed <- path
	}))

	// Give watcher time to start
	time.Sleep(50 * time.Millisecond)
	return w, changed
}

func TestWatcher_DetectsRecipeChange(t *testing.T) {
	dir := t.TempDir()
	recipe := filepath.Join(dir, "oak.json")
	require.NoError(t, os.WriteFile(recipe, []byte(`{}`), 0644))

	_, changed := startWatcher(t, dir)

	require.NoError(t, os.WriteFile(recipe, []byte(`{"output":[]}`), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for recipe change")
	assert.Equal(t, recipe, path)
}

func TestWatcher_DetectsNewJSON5InNewDirectory(t *testing.T) {
	dir := t.TempDir()
	_, changed := startWatcher(t, dir)

	ns := filepath.Join(dir, "x")
	require.NoError(t, os.Mkdir(ns, 0755))
	time.Sleep(100 * time.Millisecond)
	sub := filepath.Join(ns, "saw_recipes")
	require.NoError(t, os.Mkdir(sub, 0755))
	time.Sleep(100 * time.Millisecond)

	recipe := filepath.Join(sub, "ash.json5")
	require.NoError(t, os.WriteFile(recipe, []byte(`{output: []}`), 0644))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case path := <-changed:
			if path == recipe {
				return
			}
		case <-deadline:
			t.Fatal("expected callback for recipe in a newly created directory")
		}
	}
}

func TestWatcher_DetectsDeletedRecipe(t *testing.T) {
	dir := t.TempDir()
	recipe := filepath.Join(dir, "to_delete.json")
	require.NoError(t, os.WriteFile(recipe, []byte(`{}`), 0644))

	_, changed := startWatcher(t, dir)

	require.NoError(t, os.Remove(recipe))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for deleted recipe")
	assert.Equal(t, recipe, path)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	hidden := filepath.Join(dir, ".saw")
	require.NoError(t, os.MkdirAll(hidden, 0755))

	_, changed := startWatcher(t, dir)

	os.WriteFile(filepath.Join(hidden, "saw.db"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(hidden, "cached.json"), []byte("{}"), 0644)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, ".oak.json.swp"), []byte("x"), 0644)

	_, ok := waitForCallback(changed, 500*time.Millisecond)
	assert.False(t, ok, "should not have received callback for non-recipe files")

	recipe := filepath.Join(dir, "birch.json")
	require.NoError(t, os.WriteFile(recipe, []byte(`{}`), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for recipe file")
	assert.Equal(t, recipe, path)
}

func TestWatcher_CustomSuffixes(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(".yaml")
	require.NoError(t, err)
	defer w.Stop()

	changed := make(chan string, 10)
	require.NoError(t, w.Watch(dir, func(path string) { changed <- path }))
	time.Sleep(50 * time.Millisecond)

	os.WriteFile(filepath.Join(dir, "a.json"), []byte("{}"), 0644)
	_, ok := waitForCallback(changed, 300*time.Millisecond)
	assert.False(t, ok, ".json is not watched when suffixes are overridden")

	yamlFile := filepath.Join(dir, "a.yaml")
	require.NoError(t, os.WriteFile(yamlFile, []byte("x: 1"), 0644))
	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok)
	assert.Equal(t, yamlFile, path)
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	err = w.Watch(filepath.Join(t.TempDir(), "does-not-exist"), func(string) {})
	assert.Error(t, err)
}

func TestWatcher_StopCleanup(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()

	w, err := NewWatcher()
	require.NoError(t, err)

	callCount := 0
	var mu sync.Mutex
	err = w.Watch(dir, func(path string) {
		mu.Lock()
		callCount++
		mu.Unlock()
	})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	require.NoError(t, w.Stop())

	mu.Lock()
	countAfterStop := callCount
	mu.Unlock()

	// Write file after stop: should NOT trigger callback
	os.WriteFile(filepath.Join(dir, "after_stop.json"), []byte("{}"), 0644)
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	countAfterWrite := callCount
	mu.Unlock()

	assert.Equal(t, countAfterStop, countAfterWrite, "callbacks fired after Stop()")

	// Double-stop should be safe
	assert.NoError(t, w.Stop())
}

func TestWatcher_ReportsOnceAfterBurstSettles(t *testing.T) {
	dir := t.TempDir()
	recipe := filepath.Join(dir, "oak.json")
	require.NoError(t, os.WriteFile(recipe, []byte(`{}`), 0644))

	_, changed := startWatcher(t, dir)

	require.NoError(t, os.WriteFile(recipe, []byte(`{`), 0644))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, os.WriteFile(recipe, []byte(`{"output":[]}`), 0644))
	lastWrite := time.Now()

	path, ok := waitForCallback(changed, 2*time.Second)
	require.True(t, ok, "expected callback after the burst")
	assert.Equal(t, recipe, path)
	assert.GreaterOrEqual(t, time.Since(lastWrite), debounceInterval,
		"callback must follow the last write of the burst")

	_, ok = waitForCallback(changed, 300*time.Millisecond)
	assert.False(t, ok, "a burst on one file is reported once")
}

func TestWatcher_StopCancelsPendingReport(t *testing.T) {
	dir := t.TempDir()
	recipe := filepath.Join(dir, "oak.json")
	require.NoError(t, os.WriteFile(recipe, []byte(`{}`), 0644))

	w, changed := startWatcher(t, dir)

	require.NoError(t, os.WriteFile(recipe, []byte(`{"output":[]}`), 0644))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, w.Stop())

	_, ok := waitForCallback(changed, 300*time.Millisecond)
	assert.False(t, ok, "no callback once Stop has returned")
}

func TestWatcher_RequireSegment(t *testing.T) {
	dir := t.TempDir()
	recipes := filepath.Join(dir, "x", "saw_recipes")
	require.NoError(t, os.MkdirAll(recipes, 0755))
	other := filepath.Join(dir, "x", "models")
	require.NoError(t, os.MkdirAll(other, 0755))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()
	w.RequireSegment("saw_recipes")

	changed := make(chan string, 10)
	require.NoError(t, w.Watch(dir, func(path string) { changed <- path }))
	time.Sleep(50 * time.Millisecond)

	os.WriteFile(filepath.Join(other, "oak.json"), []byte("{}"), 0644)
	os.WriteFile(filepath.Join(dir, "pack.json"), []byte("{}"), 0644)
	_, ok := waitForCallback(changed, 300*time.Millisecond)
	assert.False(t, ok, "documents outside saw_recipes are ignored")

	recipe := filepath.Join(recipes, "oak.json")
	require.NoError(t, os.WriteFile(recipe, []byte("{}"), 0644))
	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok)
	assert.Equal(t, recipe, path)
}
