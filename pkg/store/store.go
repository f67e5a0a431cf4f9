// Package store keeps named graph documents.
//
// Documents hold the .vsg text of a graph together with a UUID identifier,
// the graph name and timestamps. Three backends implement [Store]:
//   - [FileStore]: one JSON file per document, for the CLI
//   - [RedisStore]: shared storage for multi-instance servers
//   - [MongoStore]: MongoDB collection with indexed names
//
// [Open] picks a backend from [settings.Storage]:
//
//	st, err := store.Open(ctx, cfg.Storage)
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	doc, err := store.SaveGraph(ctx, st, g)
//	g2, err := store.LoadGraph(ctx, st, doc.ID, cfg)
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/visigraph/pkg/codec"
	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/graph"
	"github.com/matzehuels/visigraph/pkg/observability"
	"github.com/matzehuels/visigraph/pkg/settings"
)

// Document is a stored graph.
type Document struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Summary describes a document without its content.
type Summary struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Size      int       `json:"size" bson:"size"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Summary returns d's listing entry.
func (d *Document) Summary() Summary {
	return Summary{ID: d.ID, Name: d.Name, Size: len(d.Content), UpdatedAt: d.UpdatedAt}
}

// Store is the interface for document storage backends.
type Store interface {
	// Put creates or replaces a document. An empty ID is assigned a new
	// UUID; CreatedAt is kept from an existing document with the same ID.
	Put(ctx context.Context, doc *Document) error

	// Get retrieves a document. A missing document is a DOCUMENT_NOT_FOUND
	// error.
	Get(ctx context.Context, id string) (*Document, error)

	// List returns all documents ordered by most recent update.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes a document. A missing document is a
	// DOCUMENT_NOT_FOUND error.
	Delete(ctx context.Context, id string) error

	// Close releases backend connections.
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Open connects the backend selected in cfg.
func Open(ctx context.Context, cfg settings.Storage) (Store, error) {
	switch cfg.Backend {
	case BackendFile, "":
		return NewFileStore(cfg.Dir)
	case BackendRedis:
		return NewRedisStore(ctx, cfg.Redis)
	case BackendMongo:
		return NewMongoStore(ctx, cfg.Mongo)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown storage backend %q", cfg.Backend)
	}
}

// SaveGraph encodes g and stores it as a new document.
func SaveGraph(ctx context.Context, s Store, g *graph.Graph) (*Document, error) {
	doc := &Document{Name: g.Name.Get(), Content: string(codec.MarshalGraph(g))}
	if err := s.Put(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadGraph retrieves and decodes a document.
func LoadGraph(ctx context.Context, s Store, id string, cfg *settings.Settings) (*graph.Graph, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return codec.UnmarshalGraph([]byte(doc.Content), cfg)
}

// prepare validates doc and fills in the identifier and timestamps. created
// is the creation time of the document being replaced, if any.
func prepare(doc *Document, created time.Time) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	} else if err := errors.ValidateDocumentID(doc.ID); err != nil {
		return err
	}
	if err := errors.ValidateGraphName(doc.Name); err != nil {
		return err
	}
	// MongoDB keeps milliseconds.
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc.CreatedAt = created
	if created.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeDocumentNotFound, "document %s not found", id)
}

// observe reports a finished operation to the store hooks.
func observe(ctx context.Context, backend, op, id string, start time.Time, err error) {
	observability.Store().OnStoreOperation(ctx, backend, op, id, time.Since(start), err)
}
