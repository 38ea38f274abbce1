package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakescan/stake-scanner/internal/db/model"
)

func (db *Database) Get(ctx context.Context, key string) ([]byte, error) {
	var doc model.KVDocument
	err := db.collection(model.KVCollection).FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     key,
				Message: fmt.Sprintf("no value stored under %q", key),
			}
		}
		return nil, err
	}

	return doc.Value, nil
}

func (db *Database) Set(ctx context.Context, key string, value []byte) error {
	filter := bson.M{"_id": key}
	update := bson.M{
		"$set": bson.M{
			"value":        value,
			"last_updated": time.Now().Unix(),
		},
	}
	opts := options.Update().SetUpsert(true)

	_, err := db.collection(model.KVCollection).UpdateOne(ctx, filter, update, opts)
	return err
}
