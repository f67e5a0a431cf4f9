package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/matzehuels/visigraph/pkg/errors"
)

// FileStore keeps each document as a JSON file in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store.
// If baseDir is empty, defaults to ~/.config/visigraph/documents/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "locate config dir")
		}
		baseDir = filepath.Join(dir, "visigraph", "documents")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create document dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) documentPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) read(id string) (*Document, error) {
	data, err := os.ReadFile(s.documentPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read document %s", id)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode document %s", id)
	}
	return &doc, nil
}

func (s *FileStore) Put(ctx context.Context, doc *Document) (err error) {
	start := time.Now()
	defer func() { observe(ctx, BackendFile, "put", doc.ID, start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	var created time.Time
	if doc.ID != "" && errors.ValidateDocumentID(doc.ID) == nil {
		if old, err := s.read(doc.ID); err == nil {
			created = old.CreatedAt
		}
	}
	if err := prepare(doc, created); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	tmp := s.documentPath(doc.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write document %s", doc.ID)
	}
	if err := os.Rename(tmp, s.documentPath(doc.ID)); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeStorage, err, "write document %s", doc.ID)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (doc *Document, err error) {
	start := time.Now()
	defer func() { observe(ctx, BackendFile, "get", id, start, err) }()

	if err := errors.ValidateDocumentID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(id)
}

func (s *FileStore) List(ctx context.Context) (out []Summary, err error) {
	start := time.Now()
	defer func() { observe(ctx, BackendFile, "list", "", start, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read document dir")
	}
	out = []Summary{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		id := entry.Name()[:len(entry.Name())-len(".json")]
		doc, err := s.read(id)
		if err != nil {
			continue
		}
		out = append(out, doc.Summary())
	}
	sortSummaries(out)
	return out, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observe(ctx, BackendFile, "delete", id, start, err) }()

	if err := errors.ValidateDocumentID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.documentPath(id)); err != nil {
		if os.IsNotExist(err) {
			return notFound(id)
		}
		return errors.Wrap(errors.ErrCodeStorage, err, "remove document %s", id)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for document files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)

// sortSummaries orders by most recent update, then by id.
func sortSummaries(out []Summary) {
	slices.SortFunc(out, func(a, b Summary) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
}
