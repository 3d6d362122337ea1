package repository

import (
	"context"

	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/entity"
)

type TripPlanRepository interface {
	Insert(ctx context.Context, plan *entity.TripPlan) (string, error)
	FindByID(ctx context.Context, id string) (*entity.TripPlan, error)
	FindByUserID(ctx context.Context, userID string) ([]*entity.TripPlan, error)
	Merge(ctx context.Context, id string, fields map[string]interface{}) (*entity.TripPlan, error)
	Delete(ctx context.Context, id string) error
}
