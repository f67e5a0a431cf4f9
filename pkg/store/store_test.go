package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/graph"
	"github.com/matzehuels/visigraph/pkg/observability"
	"github.com/matzehuels/visigraph/pkg/settings"
)

// exercise runs the behavior every backend shares.
func exercise(t *testing.T, s Store) {
	ctx := context.Background()

	doc := &Document{Name: "first", Content: `{ "name" : "first" }`}
	require.NoError(t, s.Put(ctx, doc))
	require.NotEmpty(t, doc.ID)
	require.NoError(t, errors.ValidateDocumentID(doc.ID))
	assert.False(t, doc.CreatedAt.IsZero())
	assert.Equal(t, doc.CreatedAt, doc.UpdatedAt)

	got, err := s.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Name)
	assert.Equal(t, doc.Content, got.Content)

	created := doc.CreatedAt
	time.Sleep(2 * time.Millisecond)
	update := &Document{ID: doc.ID, Name: "renamed", Content: "{ }"}
	require.NoError(t, s.Put(ctx, update))
	assert.True(t, update.CreatedAt.Equal(created), "replacing keeps the creation time")
	assert.True(t, update.UpdatedAt.After(created))

	time.Sleep(2 * time.Millisecond)
	second := &Document{Name: "second", Content: "{ }"}
	require.NoError(t, s.Put(ctx, second))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "most recent first")
	assert.Equal(t, "renamed", list[1].Name)
	assert.Equal(t, 3, list[1].Size)

	require.NoError(t, s.Delete(ctx, doc.ID))
	_, err = s.Get(ctx, doc.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeDocumentNotFound), "got %v", err)
	assert.True(t, errors.Is(s.Delete(ctx, doc.ID), errors.ErrCodeDocumentNotFound))

	assert.True(t, errors.Is(s.Put(ctx, &Document{Name: " "}), errors.ErrCodeInvalidName))
	_, err = s.Get(ctx, "../escape")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	require.NoError(t, s.Delete(ctx, second.ID))
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	exercise(t, s)
}

func TestFileStoreSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, s.Put(context.Background(), &Document{Name: "ok", Content: "{ }"}))

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("VISIGRAPH_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("VISIGRAPH_TEST_REDIS_ADDR not set")
	}
	s, err := NewRedisStore(context.Background(), settings.Redis{Addr: addr, Prefix: "visigraph-test-" + time.Now().Format("150405.000") + ":"})
	require.NoError(t, err)
	defer s.Close()
	exercise(t, s)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("VISIGRAPH_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("VISIGRAPH_TEST_MONGO_URI not set")
	}
	s, err := NewMongoStore(context.Background(), settings.Mongo{URI: uri, Database: "visigraph_test", Collection: "documents_" + time.Now().Format("150405")})
	require.NoError(t, err)
	defer func() {
		_ = s.coll.Drop(context.Background())
		s.Close()
	}()
	exercise(t, s)
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), settings.Storage{Backend: BackendFile, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	_, err = Open(context.Background(), settings.Storage{Backend: "sqlite"})
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported))
}

func TestSaveLoadGraph(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	g := graph.New("path", graph.Rules{}, nil)
	a, b := g.AddVertex(0, 0), g.AddVertex(10, 20)
	g.Connect(a, b)

	doc, err := SaveGraph(context.Background(), s, g)
	require.NoError(t, err)
	assert.Equal(t, "path", doc.Name)

	back, err := LoadGraph(context.Background(), s, doc.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, back.Vertices.Len())
	assert.Equal(t, 1, back.Edges.Len())
	assert.Equal(t, 20.0, back.Vertices.At(1).Y.Get())
}

type recordingHooks struct {
	mu  sync.Mutex
	ops []string
}

func (h *recordingHooks) OnStoreOperation(_ context.Context, backend, op, _ string, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	status := "ok"
	if err != nil {
		status = string(errors.GetCode(err))
	}
	h.ops = append(h.ops, backend+" "+op+" "+status)
}

func TestStoreHooks(t *testing.T) {
	t.Cleanup(observability.Reset)
	hooks := &recordingHooks{}
	observability.SetStoreHooks(hooks)

	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	doc := &Document{Name: "hooked", Content: "{ }"}
	require.NoError(t, s.Put(ctx, doc))
	_, _ = s.Get(ctx, "missing")
	_, _ = s.List(ctx)

	assert.Equal(t, []string{"file put ok", "file get DOCUMENT_NOT_FOUND", "file list ok"}, hooks.ops)
}
