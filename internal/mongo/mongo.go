package mongo

import (
	"context"
	"time"

	gomongo "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Database wraps the driver database together with its client so the
// caller can close the connection it opened.
type Database struct {
	*gomongo.Database
	client *gomongo.Client
}

func New(ctx context.Context, uri, database string) (*Database, error) {

	client, err := gomongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &Database{
		Database: client.Database(database),
		client:   client,
	}, nil
}

func (d *Database) Close() error {
	return d.client.Disconnect(context.Background())
}
