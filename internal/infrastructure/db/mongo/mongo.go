package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// Repositories groups the emulator's collections on one database.
type Repositories struct {
	Users        *UserRepository
	Categories   *CategoryRepository
	Providers    *ProviderRepository
	Appointments *AppointmentRepository
}

func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(db),
		Categories:   NewCategoryRepository(db),
		Providers:    NewProviderRepository(db),
		Appointments: NewAppointmentRepository(db),
	}
}

// EnsureIndexes creates every index the repositories rely on.
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	if err := r.Users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := r.Providers.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("providers indexes: %w", err)
	}
	if err := r.Appointments.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("appointments indexes: %w", err)
	}
	return nil
}
