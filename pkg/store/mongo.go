package store

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/settings"
)

// MongoStore keeps documents in a MongoDB collection keyed by _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to the configured deployment, checks it with a
// ping, retrying while the deployment is unreachable, and ensures an index on document names.
func NewMongoStore(ctx context.Context, cfg settings.Mongo) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongodb")
	}
	err = RetryWithBackoff(ctx, func() error {
		return Retryable(client.Ping(ctx, nil))
	})
	if err != nil {
		client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongodb")
	}
	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}}); err != nil {
		client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create name index")
	}
	return &MongoStore{client: client, coll: coll}, nil
}

func (s *MongoStore) Put(ctx context.Context, doc *Document) (err error) {
	start := time.Now()
	defer func() { observe(ctx, BackendMongo, "put", doc.ID, start, err) }()

	var created time.Time
	if doc.ID != "" && errors.ValidateDocumentID(doc.ID) == nil {
		var old Document
		if s.coll.FindOne(ctx, bson.M{"_id": doc.ID}).Decode(&old) == nil {
			created = old.CreatedAt
		}
	}
	if err := prepare(doc, created); err != nil {
		return err
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "put document %s", doc.ID)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (doc *Document, err error) {
	start := time.Now()
	defer func() { observe(ctx, BackendMongo, "get", id, start, err) }()

	if err := errors.ValidateDocumentID(id); err != nil {
		return nil, err
	}
	var d Document
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound(id)
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "get document %s", id)
	}
	return &d, nil
}

func (s *MongoStore) List(ctx context.Context) (out []Summary, err error) {
	start := time.Now()
	defer func() { observe(ctx, BackendMongo, "list", "", start, err) }()

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"name": 1, "updated_at": 1, "size": bson.M{"$strLenBytes": "$content"}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list documents")
	}
	out = []Summary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list documents")
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observe(ctx, BackendMongo, "delete", id, start, err) }()

	if err := errors.ValidateDocumentID(id); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete document %s", id)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
