package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"my-finance-dashboard/config"
)

const connectTimeout = 10 * time.Second

// connectMongo dials the configured deployment and waits for the primary to answer.
func connectMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.DatabaseURL))
	if err != nil {
		return nil, errors.Wrap(err, "connect mongodb")
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "ping mongodb")
	}
	return client, nil
}

func collections(client *mongo.Client, cfg *config.Config) (usersColl, dashboardsColl *mongo.Collection) {
	db := client.Database(cfg.GetDatabaseName())
	return db.Collection(cfg.CollectionUserName), db.Collection(cfg.CollectionDashboardsName)
}
