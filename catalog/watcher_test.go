package catalog

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/dimensio/units"
)

const furlongOnly = `
format = "1.0"
[space]
dimensions = 7
[[unit]]
id = "furlong"
dims = [0, 1, 0, 0, 0, 0, 0]
scale = 201.168
`

const furlongAndChain = furlongOnly + `
[[unit]]
id = "chain"
dims = [0, 1, 0, 0, 0, 0, 0]
scale = 20.1168
`

func newWatchedLoader(t *testing.T, content string) (*Loader, string) {
	t.Helper()
	path := writeFile(t, t.TempDir(), "extra.toml", content)
	return &Loader{IncludeDefaults: true, Paths: []string{path}}, path
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	l, path := newWatchedLoader(t, furlongOnly)
	reg, err := l.Build()
	require.NoError(t, err)
	holder := NewHolder(reg)

	w, err := NewWatcher(holder, l.Build, l.Paths,
		WithDebounce(20*time.Millisecond),
		WithWatcherLogger(zaptest.NewLogger(t).Sugar()))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	defer w.Stop()

	assert.False(t, holder.Load().IsDefined("chain"))
	writeFile(t, filepath.Dir(path), "extra.toml", furlongAndChain)

	require.Eventually(t, func() bool {
		return holder.Load().IsDefined("chain")
	}, 5*time.Second, 20*time.Millisecond)
	assert.NotSame(t, reg, holder.Load())
}

func TestWatcher_FailedReloadKeepsPrevious(t *testing.T) {
	l, path := newWatchedLoader(t, furlongOnly)
	reg, err := l.Build()
	require.NoError(t, err)
	holder := NewHolder(reg)

	w, err := NewWatcher(holder, l.Build, l.Paths)
	require.NoError(t, err)
	defer w.Stop()

	var mu sync.Mutex
	var results []error
	w.OnReload(func(got *units.Registry, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err == nil {
			assert.NotNil(t, got)
		} else {
			assert.Nil(t, got)
		}
		results = append(results, err)
	})

	writeFile(t, filepath.Dir(path), "extra.toml", furlongOnly+"\n[[unit]]\nid = \"m\"\ndims = [0, 1, 0, 0, 0, 0, 0]\n")
	assert.Error(t, w.Reload())
	assert.Same(t, reg, holder.Load())

	writeFile(t, filepath.Dir(path), "extra.toml", furlongAndChain)
	require.NoError(t, w.Reload())
	assert.True(t, holder.Load().IsDefined("chain"))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, results, 2)
	assert.Error(t, results[0])
	assert.NoError(t, results[1])
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	l, path := newWatchedLoader(t, furlongOnly)
	reg, err := l.Build()
	require.NoError(t, err)
	holder := NewHolder(reg)

	builds := make(chan struct{}, 10)
	build := func() (*units.Registry, error) {
		builds <- struct{}{}
		return l.Build()
	}
	w, err := NewWatcher(holder, build, l.Paths, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	defer w.Stop()

	writeFile(t, filepath.Dir(path), "notes.txt", "unrelated")
	select {
	case <-builds:
		t.Fatal("rebuilt after an unrelated file changed")
	case <-time.After(200 * time.Millisecond):
	}
	assert.Same(t, reg, holder.Load())
}
