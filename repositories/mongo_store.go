package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const queryTimeout = 10 * time.Second

// MongoStore implements EntityStore on top of a MongoDB database.
// Expansion compiles the ExpandSpec tree into a single aggregation
// pipeline of $lookup/$unwind stages, so one FindOne call returns the
// fully expanded graph.
type MongoStore struct {
	db  *mongo.Database
	log *logrus.Entry
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		db:  db,
		log: logrus.WithField("component", "entity_store"),
	}
}

func (s *MongoStore) FindOne(ctx context.Context, collection string, filter bson.M, out interface{}, expand ...ExpandSpec) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if len(expand) == 0 {
		err := s.db.Collection(collection).FindOne(ctx, filter).Decode(out)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		if err != nil {
			s.log.WithError(err).WithField("collection", collection).Error("find one failed")
			return fmt.Errorf("find one %s: %w", collection, err)
		}
		return nil
	}

	cursor, err := s.db.Collection(collection).Aggregate(ctx, buildExpandPipeline(filter, expand))
	if err != nil {
		s.log.WithError(err).WithField("collection", collection).Error("expansion aggregate failed")
		return fmt.Errorf("find one %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			s.log.WithError(err).WithField("collection", collection).Error("expansion cursor failed")
			return fmt.Errorf("find one %s: %w", collection, err)
		}
		return ErrNotFound
	}
	if err := cursor.Decode(out); err != nil {
		s.log.WithError(err).WithField("collection", collection).Error("expansion decode failed")
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

func (s *MongoStore) FindMany(ctx context.Context, collection string, filter bson.M, sort bson.D, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		s.log.WithError(err).WithField("collection", collection).Error("find many failed")
		return fmt.Errorf("find many %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		s.log.WithError(err).WithField("collection", collection).Error("find many decode failed")
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

// buildExpandPipeline compiles the filter and expand specs into one
// aggregation: $match, $limit 1, then a $lookup/$unwind pair per spec.
func buildExpandPipeline(filter bson.M, expand []ExpandSpec) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$limit", Value: 1}},
	}
	for _, spec := range expand {
		pipeline = append(pipeline, lookupStages(spec)...)
	}
	return pipeline
}

// lookupStages turns one ExpandSpec into a $lookup resolving the
// reference plus a $unwind collapsing the single-element array. The
// unwind preserves null so a dangling reference surfaces as an absent
// field instead of dropping the parent document; the validator decides
// what a missing ancestor means.
func lookupStages(spec ExpandSpec) []bson.D {
	inner := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"$expr": bson.M{"$eq": bson.A{"$_id", "$$ref"}},
		}}},
	}
	for _, child := range spec.Expand {
		inner = append(inner, lookupStages(child)...)
	}
	if len(spec.Select) > 0 {
		projection := bson.M{"_id": 1}
		for _, field := range spec.Select {
			projection[field] = 1
		}
		for _, child := range spec.Expand {
			projection[child.Path] = 1
		}
		inner = append(inner, bson.D{{Key: "$project", Value: projection}})
	}

	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":     spec.From,
			"let":      bson.M{"ref": "$" + spec.Path},
			"pipeline": inner,
			"as":       spec.Path,
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$" + spec.Path,
			"preserveNullAndEmptyArrays": true,
		}}},
	}
}
