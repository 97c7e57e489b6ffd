package db

import (
	"context"
	"log"
	"time"

	"github.com/vitorsz/shop-users-api/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func Connect(cfg config.DatabaseConfig) *mongo.Database {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		log.Fatalf("Unable to open Mongo connection: %v\n", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	return client.Database(cfg.Name)
}

func Disconnect(database *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := database.Client().Disconnect(ctx); err != nil {
		log.Printf("Error disconnecting from database: %v", err)
	}
}
