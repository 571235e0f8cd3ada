package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CounterCollectionName = "Counters"

	counterBookingSerial   = "bookingSerial"
	counterBookingNoSuffix = "bookingNoSuffix"
)

type counterDoc struct {
	ID  string `bson:"_id"`
	Seq int    `bson:"seq"`
}

// counterStore hands out monotonically increasing sequence numbers backed
// by a single document per counter. Increments go through findOneAndUpdate
// with $inc, so concurrent allocations never hand out the same value.
type counterStore struct {
	collection *mongo.Collection
	bookings   *mongoBookingRepository
}

func newCounterStore(db *mongo.Database, bookings *mongoBookingRepository) *counterStore {
	return &counterStore{
		collection: db.Collection(CounterCollectionName),
		bookings:   bookings,
	}
}

// next claims and returns the next value for the named counter.
func (s *counterStore) next(ctx context.Context, name string) (int, error) {
	if err := s.ensureSeeded(ctx, name); err != nil {
		return 0, err
	}

	update := bson.M{"$inc": bson.M{"seq": 1}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDoc
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": name}, update, opts).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("failed to advance counter %s: %w", name, err)
	}

	return doc.Seq, nil
}

// peek returns the current value for the named counter without advancing it.
func (s *counterStore) peek(ctx context.Context, name string) (int, error) {
	if err := s.ensureSeeded(ctx, name); err != nil {
		return 0, err
	}

	var doc counterDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read counter %s: %w", name, err)
	}

	return doc.Seq, nil
}

// ensureSeeded creates the counter document from existing booking data when
// it does not exist yet, so deployments over a live collection keep their
// sequences. The insert is racy only on first use; duplicate key errors from
// a concurrent seed are ignored.
func (s *counterStore) ensureSeeded(ctx context.Context, name string) error {
	err := s.collection.FindOne(ctx, bson.M{"_id": name}).Err()
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to read counter %s: %w", name, err)
	}

	var seed int
	switch name {
	case counterBookingSerial:
		seed, err = s.bookings.lastSerialNo(ctx)
	case counterBookingNoSuffix:
		seed, err = s.bookings.lastBookingNoSuffix(ctx)
	default:
		return fmt.Errorf("unknown counter %s", name)
	}
	if err != nil {
		return err
	}

	_, err = s.collection.InsertOne(ctx, counterDoc{ID: name, Seq: seed})
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to seed counter %s: %w", name, err)
	}

	return nil
}
