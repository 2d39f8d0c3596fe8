package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Backends holds the connections a store may need. Unused ones may be nil.
type Backends struct {
	Redis redis.UniversalClient
	Mongo *mongo.Database
}

// NewStore builds the store selected by cfg.Store.
func NewStore(ctx context.Context, cfg Config, b Backends) (Store, error) {
	switch cfg.Store {
	case "", StoreMemory:
		return NewMemoryStore(cfg.CleanupInterval), nil
	case StoreRedis:
		if b.Redis == nil {
			return nil, fmt.Errorf("%w: redis store without a redis client", ErrUnknownStoreKind)
		}
		return NewRedisStore(b.Redis, cfg.KeyPrefix), nil
	case StoreMongo:
		if b.Mongo == nil {
			return nil, fmt.Errorf("%w: mongo store without a database", ErrUnknownStoreKind)
		}
		return NewMongoStore(ctx, b.Mongo.Collection(cfg.Collection))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStoreKind, cfg.Store)
	}
}
