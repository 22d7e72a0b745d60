package catalog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/errors"
)

// Default MongoDB names.
const (
	DefaultDatabase   = "carousel"
	DefaultCollection = "items"
)

// itemDoc is one catalog item as stored in MongoDB.
type itemDoc struct {
	Catalog   string    `bson:"catalog"`
	Index     int       `bson:"index"`
	Source    string    `bson:"source"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps catalogs in a MongoDB collection, one document per item.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoOptions configures a MongoStore.
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

// NewMongoStore connects to MongoDB and ensures the (catalog, index) index.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo uri is required")
	}
	if opts.Database == "" {
		opts.Database = DefaultDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "connect to mongo")
	}
	s := &MongoStore{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
	}

	_, err = s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "catalog", Value: 1}, {Key: "index", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create catalog index")
	}
	return s, nil
}

// Load returns the named catalog sorted by index.
func (s *MongoStore) Load(ctx context.Context, name string) (Catalog, error) {
	cur, err := s.coll.Find(ctx,
		bson.D{{Key: "catalog", Value: name}},
		options.Find().SetSort(bson.D{{Key: "index", Value: 1}}),
	)
	if err != nil {
		return Catalog{}, errors.Wrap(errors.ErrCodeInternal, err, "find catalog %q", name)
	}
	var docs []itemDoc
	if err := cur.All(ctx, &docs); err != nil {
		return Catalog{}, errors.Wrap(errors.ErrCodeInternal, err, "read catalog %q", name)
	}
	if len(docs) == 0 {
		return Catalog{}, errors.New(errors.ErrCodeNotFound, "catalog %q not found", name)
	}

	c := fromDocs(name, docs)
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Replace validates c and replaces every stored item of the catalog. Items
// are upserted before surplus ones are trimmed, in one ordered bulk write, so
// a failed write leaves the previous items in place.
func (s *MongoStore) Replace(ctx context.Context, c Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if _, err := s.coll.BulkWrite(ctx, replaceModels(c, time.Now().UTC()), options.BulkWrite().SetOrdered(true)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "replace catalog %q", c.Name)
	}
	return nil
}

// Names lists the stored catalogs.
func (s *MongoStore) Names(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "catalog", bson.D{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list catalogs")
	}
	names := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func toDocs(c Catalog, now time.Time) []itemDoc {
	docs := make([]itemDoc, len(c.Items))
	for i, it := range c.Items {
		docs[i] = itemDoc{Catalog: c.Name, Index: it.Index, Source: it.Source, UpdatedAt: now}
	}
	return docs
}

// replaceModels upserts every item of c by (catalog, index), then deletes
// stored items past the end of c.
func replaceModels(c Catalog, now time.Time) []mongo.WriteModel {
	models := make([]mongo.WriteModel, 0, len(c.Items)+1)
	for _, d := range toDocs(c, now) {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "catalog", Value: d.Catalog}, {Key: "index", Value: d.Index}}).
			SetReplacement(d).
			SetUpsert(true))
	}
	models = append(models, mongo.NewDeleteManyModel().SetFilter(bson.D{
		{Key: "catalog", Value: c.Name},
		{Key: "index", Value: bson.D{{Key: "$gte", Value: len(c.Items)}}},
	}))
	return models
}

func fromDocs(name string, docs []itemDoc) Catalog {
	c := Catalog{Name: name, Items: make([]carousel.Item, len(docs))}
	for i, d := range docs {
		c.Items[i] = carousel.Item{Source: d.Source, Index: d.Index}
	}
	return c
}
