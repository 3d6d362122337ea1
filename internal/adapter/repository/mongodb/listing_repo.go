package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/entity"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/port/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ListingRepository serves one listing collection. The factory produces the
// concrete entity kind decoded from that collection, so the same repository
// code backs hotels, restaurants, cab services and guides.
type ListingRepository struct {
	coll    *mongo.Collection
	factory func() entity.Listing
}

func NewListingRepository(db *mongo.Database, collection string, factory func() entity.Listing) *ListingRepository {
	return &ListingRepository{
		coll:    db.Collection(collection),
		factory: factory,
	}
}

func (r *ListingRepository) Insert(ctx context.Context, l entity.Listing) (string, error) {
	l.SetID(primitive.NewObjectID().Hex())
	if _, err := r.coll.InsertOne(ctx, l); err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", r.coll.Name(), err)
	}
	return l.GetID(), nil
}

func (r *ListingRepository) FindAll(ctx context.Context) ([]entity.Listing, error) {
	return r.find(ctx, bson.M{})
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (entity.Listing, error) {
	doc := r.factory()
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find %s by id: %w", r.coll.Name(), err)
	}
	return doc, nil
}

func (r *ListingRepository) Merge(ctx context.Context, id string, fields map[string]interface{}) (entity.Listing, error) {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}

	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", r.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return nil, repository.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", r.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ListingRepository) Search(ctx context.Context, terms map[string]string) ([]entity.Listing, error) {
	filter := bson.M{}
	for field, term := range terms {
		filter[field] = primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	}
	return r.find(ctx, filter)
}

func (r *ListingRepository) find(ctx context.Context, filter bson.M) ([]entity.Listing, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	listings := []entity.Listing{}
	for cursor.Next(ctx) {
		doc := r.factory()
		if err := cursor.Decode(doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", r.coll.Name(), err)
		}
		listings = append(listings, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error on %s: %w", r.coll.Name(), err)
	}
	return listings, nil
}
