package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/entity"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/port/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const tripPlanCollection = "trip_plans"

type TripPlanRepository struct {
	coll *mongo.Collection
}

func NewTripPlanRepository(db *mongo.Database) *TripPlanRepository {
	return &TripPlanRepository{coll: db.Collection(tripPlanCollection)}
}

func (r *TripPlanRepository) Insert(ctx context.Context, plan *entity.TripPlan) (string, error) {
	plan.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, plan); err != nil {
		return "", fmt.Errorf("failed to insert trip plan: %w", err)
	}
	return plan.ID, nil
}

func (r *TripPlanRepository) FindByID(ctx context.Context, id string) (*entity.TripPlan, error) {
	var plan entity.TripPlan
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find trip plan by id: %w", err)
	}
	return &plan, nil
}

func (r *TripPlanRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.TripPlan, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to query trip plans: %w", err)
	}
	defer cursor.Close(ctx)

	plans := []*entity.TripPlan{}
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, fmt.Errorf("failed to decode trip plans: %w", err)
	}
	return plans, nil
}

func (r *TripPlanRepository) Merge(ctx context.Context, id string, fields map[string]interface{}) (*entity.TripPlan, error) {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}

	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update trip plan: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, repository.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *TripPlanRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete trip plan: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
