package repository

import (
	"context"

	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/entity"
)

// ListingRepository is implemented once per listing collection; the bound
// entity kind is fixed at construction. Merge applies a partial $set-style
// update of already allow-listed fields and returns the post-update record.
// Search matches each field against a case-insensitive substring; multiple
// fields are combined with AND.
type ListingRepository interface {
	Insert(ctx context.Context, l entity.Listing) (string, error)
	FindAll(ctx context.Context) ([]entity.Listing, error)
	FindByID(ctx context.Context, id string) (entity.Listing, error)
	Merge(ctx context.Context, id string, fields map[string]interface{}) (entity.Listing, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, terms map[string]string) ([]entity.Listing, error)
}
