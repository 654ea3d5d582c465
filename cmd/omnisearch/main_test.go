package main

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/devserver"
	"github.com/poiesic/omnisearch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// syncBuffer is a bytes.Buffer safe for the session listener goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testApp(out, errOut io.Writer) *cli.App {
	app := newApp()
	app.Writer = out
	app.ErrWriter = errOut
	return app
}

func startCatalog(t *testing.T) string {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	listings, err := devserver.DefaultListings()
	require.NoError(t, err)
	_, err = repo.AddListings(context.Background(), listings...)
	require.NoError(t, err)

	srv, err := devserver.New(repo)
	require.NoError(t, err)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts.URL
}

func findCommand(t *testing.T, app *cli.App, name string) *cli.Command {
	t.Helper()
	for _, cmd := range app.Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	t.Fatalf("command %q not found", name)
	return nil
}

func TestCommandFlags(t *testing.T) {
	app := newApp()

	t.Run("log-level defaults to info", func(t *testing.T) {
		var levelFlag *cli.StringFlag
		for _, flag := range app.Flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "log-level" {
				levelFlag = f
			}
		}
		require.NotNil(t, levelFlag)
		assert.Equal(t, "info", levelFlag.Value)
	})

	t.Run("seed batch-size defaults to 100", func(t *testing.T) {
		var batchFlag *cli.IntFlag
		for _, flag := range findCommand(t, app, "seed").Flags {
			if f, ok := flag.(*cli.IntFlag); ok && f.Name == "batch-size" {
				batchFlag = f
			}
		}
		require.NotNil(t, batchFlag)
		assert.Equal(t, 100, batchFlag.Value)
	})

	t.Run("search commands share trace flag", func(t *testing.T) {
		for _, name := range []string{"query", "interactive"} {
			found := false
			for _, flag := range findCommand(t, app, name).Flags {
				if f, ok := flag.(*cli.BoolFlag); ok && f.Name == "trace" {
					found = true
				}
			}
			assert.True(t, found, "%s has no trace flag", name)
		}
	})
}

func TestSetupLogger(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &syncBuffer{}
	err := testApp(out, errOut).Run([]string{"omnisearch", "--log-level", "loud", "query", "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestQueryCommand(t *testing.T) {
	base := startCatalog(t)

	t.Run("table output", func(t *testing.T) {
		out, errOut := &bytes.Buffer{}, &syncBuffer{}
		err := testApp(out, errOut).Run([]string{"omnisearch", "query", "--base-url", base, "phone"})
		require.NoError(t, err)

		output := out.String()
		for _, url := range []string{"/items/2", "/services/s1", "/auctions/7", "/features/phone-support", "/verticals/v1"} {
			assert.Contains(t, output, url)
		}
		assert.Less(t, strings.Index(output, "/items/2"), strings.Index(output, "/verticals/v1"))
	})

	t.Run("json output", func(t *testing.T) {
		out, errOut := &bytes.Buffer{}, &syncBuffer{}
		err := testApp(out, errOut).Run([]string{"omnisearch", "query", "--json", "--base-url", base, "Camera"})
		require.NoError(t, err)

		var results []core.Result
		require.NoError(t, jsoniter.Unmarshal(out.Bytes(), &results))
		require.NotEmpty(t, results)
		assert.Equal(t, "/items/4", results[0].URL)
	})

	t.Run("no results", func(t *testing.T) {
		out, errOut := &bytes.Buffer{}, &syncBuffer{}
		err := testApp(out, errOut).Run([]string{"omnisearch", "query", "--base-url", base, "zzz"})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "No results")
	})

	t.Run("query is required", func(t *testing.T) {
		out, errOut := &bytes.Buffer{}, &syncBuffer{}
		err := testApp(out, errOut).Run([]string{"omnisearch", "query", "--base-url", base, "  "})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query is required")
	})

	t.Run("invalid policy", func(t *testing.T) {
		out, errOut := &bytes.Buffer{}, &syncBuffer{}
		err := testApp(out, errOut).Run([]string{"omnisearch", "query", "--base-url", base, "--policy", "fuzzy", "phone"})
		require.Error(t, err)
	})
}

func TestInteractiveCommand(t *testing.T) {
	base := startCatalog(t)

	in, feed := io.Pipe()
	out := &syncBuffer{}
	app := testApp(out, io.Discard)
	app.Reader = in

	done := make(chan error, 1)
	go func() {
		done <- app.Run([]string{"omnisearch", "interactive", "--base-url", base, "--debounce", "10ms"})
	}()

	_, err := io.WriteString(feed, "phone\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "/verticals/v1")
	}, 2*time.Second, 5*time.Millisecond)

	_, err = io.WriteString(feed, ":down\n:enter\n:quit\n")
	require.NoError(t, err)
	require.NoError(t, <-done)
	feed.Close()

	assert.Contains(t, out.String(), "-> /services/s1")
	assert.Contains(t, out.String(), "[closed]")
}

func TestSeedCommand(t *testing.T) {
	dir := t.TempDir()

	out, errOut := &bytes.Buffer{}, &syncBuffer{}
	err := testApp(out, errOut).Run([]string{"omnisearch", "seed", "--catalog", dir, "--batch-size", "5"})
	require.NoError(t, err)
	assert.Contains(t, errOut.String(), "Seeding complete")

	backend, err := badger.OpenBackend(dir, false)
	require.NoError(t, err)
	defer backend.Close()
	repo, err := badger.NewListingRepository(backend)
	require.NoError(t, err)

	count, err := repo.CountListings(context.Background(), core.TypeItem)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestSeedCommand_BadFixtures(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &syncBuffer{}
	err := testApp(out, errOut).Run([]string{"omnisearch", "seed", "--catalog", t.TempDir(), "--fixtures", "testdata/missing.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load fixtures")
}
