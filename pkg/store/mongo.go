package store

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/errors"
)

// MongoConfig configures [NewMongoStore].
type MongoConfig struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
	QueryTimeout   time.Duration
	Retention      time.Duration // documents older than this are expired by a TTL index; 0 keeps them
}

func (c *MongoConfig) applyDefaults() {
	if c.URI == "" {
		c.URI = "mongodb://localhost:27017"
	}
	if c.Database == "" {
		c.Database = "chartkit"
	}
	if c.Collection == "" {
		c.Collection = "artifacts"
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 10 * time.Second
	}
	if c.QueryTimeout <= 0 {
		c.QueryTimeout = 30 * time.Second
	}
}

type artifactDocument struct {
	Key         string    `bson:"_id"`
	Data        []byte    `bson:"data"`
	ContentType string    `bson:"content_type"`
	CreatedAt   time.Time `bson:"created_at"`
}

// MongoStore keeps artifacts as documents in a MongoDB collection.
type MongoStore struct {
	client       *mongo.Client
	collection   *mongo.Collection
	signer       *URLSigner
	queryTimeout time.Duration
}

// NewMongoStore connects to MongoDB, pings it and ensures the retention index.
func NewMongoStore(ctx context.Context, cfg MongoConfig, signer *URLSigner) (*MongoStore, error) {
	if signer == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo store requires a URL signer")
	}
	cfg.applyDefaults()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeStore, err, "ping mongodb"))
	}

	s := &MongoStore{
		client:       client,
		collection:   client.Database(cfg.Database).Collection(cfg.Collection),
		signer:       signer,
		queryTimeout: cfg.QueryTimeout,
	}
	if cfg.Retention > 0 {
		if err := s.ensureRetention(connectCtx, cfg.Retention); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
	}
	return s, nil
}

func (s *MongoStore) ensureRetention(ctx context.Context, retention time.Duration) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(retention.Seconds())),
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "create retention index")
	}
	return nil
}

// Put implements [Store].
func (s *MongoStore) Put(ctx context.Context, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	doc := artifactDocument{
		Key:         NewKey(contentType),
		Data:        data,
		ContentType: contentType,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return "", wrapMongo(err, "insert artifact")
	}
	return doc.Key, nil
}

// SignedGet implements [Store].
func (s *MongoStore) SignedGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	if err := errors.ValidateArtifactKey(key); err != nil {
		return "", err
	}
	return s.signer.Sign(key, ttl), nil
}

// Get implements [Reader].
func (s *MongoStore) Get(ctx context.Context, key string) ([]byte, string, error) {
	if err := errors.ValidateArtifactKey(key); err != nil {
		return nil, "", err
	}
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	var doc artifactDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", errors.New(errors.ErrCodeNotFound, "artifact not found: %s", key)
	}
	if err != nil {
		return nil, "", wrapMongo(err, "find artifact")
	}
	return doc.Data, doc.ContentType, nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// wrapMongo marks network and timeout failures retryable.
func wrapMongo(err error, msg string) error {
	wrapped := errors.Wrap(errors.ErrCodeStore, err, "%s", msg)
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || stderrors.Is(err, context.DeadlineExceeded) {
		return cache.Retryable(wrapped)
	}
	return wrapped
}

var (
	_ Store  = (*MongoStore)(nil)
	_ Reader = (*MongoStore)(nil)
)
