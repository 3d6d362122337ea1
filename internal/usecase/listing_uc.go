package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/attachment"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/entity"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/platform/metrics"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/port/cache"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/port/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const listingCacheTTL = 10 * time.Minute

// EventPublisher pushes domain events onto the message bus. Publishing is
// best-effort everywhere; a bus failure never fails the request.
type EventPublisher interface {
	PublishListingCreated(ctx context.Context, kind string, l entity.Listing) error
	PublishListingUpdated(ctx context.Context, kind string, l entity.Listing) error
	PublishListingDeleted(ctx context.Context, kind, id string) error
}

// ListingUsecase implements every listing operation once; the four kinds are
// instances of it parameterized by a Variant.
type ListingUsecase struct {
	variant   Variant
	repo      repository.ListingRepository
	files     *attachment.Lifecycle
	cacheRepo cache.CacheRepository
	publisher EventPublisher
	metrics   *metrics.Manager
	logger    *zap.Logger
}

func NewListingUsecase(
	variant Variant,
	repo repository.ListingRepository,
	files *attachment.Lifecycle,
	cacheRepo cache.CacheRepository,
	publisher EventPublisher,
	m *metrics.Manager,
	logger *zap.Logger,
) *ListingUsecase {
	return &ListingUsecase{
		variant:   variant,
		repo:      repo,
		files:     files,
		cacheRepo: cacheRepo,
		publisher: publisher,
		metrics:   m,
		logger:    logger.With(zap.String("kind", variant.Kind)),
	}
}

func (uc *ListingUsecase) Variant() Variant {
	return uc.variant
}

func (uc *ListingUsecase) List(ctx context.Context) ([]entity.Listing, error) {
	listings, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", uc.variant.Kind, err)
	}
	return listings, nil
}

func (uc *ListingUsecase) GetByID(ctx context.Context, id string) (entity.Listing, error) {
	if uc.cacheRepo != nil {
		if data, err := uc.cacheRepo.Get(ctx, uc.cacheKey(id)); err == nil {
			l := uc.variant.New()
			if err := json.Unmarshal(data, l); err == nil {
				return l, nil
			}
			uc.logger.Warn("Failed to unmarshal cached listing", zap.String("id", id))
		}
	}

	l, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", uc.variant.Kind, err)
	}
	uc.cacheSet(ctx, l)
	return l, nil
}

// Create persists a new listing owned by the acting user. The owner always
// comes from the authenticated identity, never from the body. If the record
// write fails for any reason after the files have been stored, the
// just-uploaded files are deleted and the write error is surfaced.
func (uc *ListingUsecase) Create(ctx context.Context, actorID string, body []byte, uploads []attachment.UploadedFile) (entity.Listing, error) {
	paths := uc.files.NormalizeUploaded(uploads)

	l := uc.variant.New()
	if len(body) > 0 {
		if err := json.Unmarshal(body, l); err != nil {
			uc.files.Compensate(ctx, paths)
			return nil, validationErr("invalid request body: " + err.Error())
		}
	}
	l.SetID("")
	l.SetOwnerID(actorID)

	images, _, dropped := attachment.Merge(nil, paths, false)
	l.SetImages(images)
	if len(dropped) > 0 {
		uc.logger.Warn("Uploads beyond image cap were not attached", zap.Int("dropped", len(dropped)))
	}

	now := time.Now().UTC()
	l.StampCreated(now)
	l.StampUpdated(now)

	if err := l.Validate(); err != nil {
		uc.files.Compensate(ctx, paths)
		return nil, validationErr(err.Error())
	}

	id, err := uc.repo.Insert(ctx, l)
	if err != nil {
		uc.files.Compensate(ctx, paths)
		return nil, validationErr(err.Error())
	}
	l.SetID(id)

	uc.cacheSet(ctx, l)
	uc.publishEvent(ctx, "created", func() error { return uc.publisher.PublishListingCreated(ctx, uc.variant.Kind, l) })
	if uc.metrics != nil {
		uc.metrics.ListingsCreatedTotal.WithLabelValues(uc.variant.Kind).Inc()
	}
	uc.logger.Info("Listing created", zap.String("id", id), zap.String("owner", actorID))
	return l, nil
}

// Update applies a partial update of allow-listed fields, merging any new
// uploads into the images sequence. With replace set the existing images are
// swapped out and their files deleted; the deletion happens before the record
// write, so a write failure afterwards leaves the record referencing files
// that are already gone. Without replace, new uploads are appended and the
// combined list truncated to the cap.
func (uc *ListingUsecase) Update(ctx context.Context, id, actorID string, body []byte, uploads []attachment.UploadedFile, replace bool) (entity.Listing, error) {
	newPaths := uc.files.NormalizeUploaded(uploads)

	existing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			uc.files.Compensate(ctx, newPaths)
			return nil, ErrNotFound
		}
		uc.files.Compensate(ctx, newPaths)
		return nil, fmt.Errorf("failed to get %s: %w", uc.variant.Kind, err)
	}
	if existing.OwnerID() != actorID {
		uc.files.Compensate(ctx, newPaths)
		return nil, ErrForbidden
	}

	patch := uc.variant.New()
	present := map[string]json.RawMessage{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, patch); err != nil {
			uc.files.Compensate(ctx, newPaths)
			return nil, validationErr("invalid request body: " + err.Error())
		}
		if err := json.Unmarshal(body, &present); err != nil {
			uc.files.Compensate(ctx, newPaths)
			return nil, validationErr("invalid request body: " + err.Error())
		}
	}

	fields, err := uc.mergeFields(patch, present)
	if err != nil {
		uc.files.Compensate(ctx, newPaths)
		return nil, fmt.Errorf("failed to encode update for %s: %w", uc.variant.Kind, err)
	}

	merged, displaced, dropped := attachment.Merge(existing.Images(), newPaths, replace)
	if replace && len(displaced) > 0 {
		uc.files.DeleteFiles(ctx, displaced)
	}
	if len(dropped) > 0 {
		uc.logger.Warn("Uploads beyond image cap were not attached", zap.Int("dropped", len(dropped)))
	}
	if len(newPaths) > 0 || replace {
		fields["images"] = merged
	}
	fields["updated_at"] = time.Now().UTC()

	updated, err := uc.repo.Merge(ctx, id, fields)
	if err != nil {
		uc.files.Compensate(ctx, newPaths)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, validationErr(err.Error())
	}

	uc.cacheSet(ctx, updated)
	uc.publishEvent(ctx, "updated", func() error { return uc.publisher.PublishListingUpdated(ctx, uc.variant.Kind, updated) })
	uc.logger.Info("Listing updated", zap.String("id", id))
	return updated, nil
}

// Delete removes the record and its image files. Files go first, best-effort;
// an undeletable file never blocks the record deletion.
func (uc *ListingUsecase) Delete(ctx context.Context, id, actorID string) error {
	existing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get %s: %w", uc.variant.Kind, err)
	}
	if existing.OwnerID() != actorID {
		return ErrForbidden
	}

	uc.files.DeleteFiles(ctx, existing.Images())

	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s: %w", uc.variant.Kind, err)
	}

	uc.cacheDelete(ctx, id)
	uc.publishEvent(ctx, "deleted", func() error { return uc.publisher.PublishListingDeleted(ctx, uc.variant.Kind, id) })
	if uc.metrics != nil {
		uc.metrics.ListingsDeletedTotal.WithLabelValues(uc.variant.Kind).Inc()
	}
	uc.logger.Info("Listing deleted", zap.String("id", id))
	return nil
}

// Search maps the variant's recognized query parameters onto stored fields
// and matches each as a case-insensitive substring. Unknown parameters are
// ignored; no parameters means no filter.
func (uc *ListingUsecase) Search(ctx context.Context, params map[string]string) ([]entity.Listing, error) {
	terms := make(map[string]string)
	for param, field := range uc.variant.Search {
		if v, ok := params[param]; ok && v != "" {
			terms[field] = v
		}
	}
	listings, err := uc.repo.Search(ctx, terms)
	if err != nil {
		return nil, fmt.Errorf("failed to search %ss: %w", uc.variant.Kind, err)
	}
	return listings, nil
}

func (uc *ListingUsecase) ListImages(ctx context.Context, id string) ([]string, error) {
	l, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return l.Images(), nil
}

// DeleteImageAt removes a single image by position. The backing file is
// deleted first, then the shortened sequence is written back with relative
// order preserved. An out-of-range index reports not found.
func (uc *ListingUsecase) DeleteImageAt(ctx context.Context, id, actorID string, index int) ([]string, error) {
	existing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", uc.variant.Kind, err)
	}
	if existing.OwnerID() != actorID {
		return nil, ErrForbidden
	}

	removed, rest, err := attachment.DeleteAt(existing.Images(), index)
	if err != nil {
		return nil, ErrNotFound
	}
	uc.files.DeleteFiles(ctx, []string{removed})

	updated, err := uc.repo.Merge(ctx, id, map[string]interface{}{
		"images":     rest,
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update %s images: %w", uc.variant.Kind, err)
	}

	uc.cacheSet(ctx, updated)
	uc.publishEvent(ctx, "updated", func() error { return uc.publisher.PublishListingUpdated(ctx, uc.variant.Kind, updated) })
	return updated.Images(), nil
}

// mergeFields builds the partial update document. The patch entity is
// round-tripped through its storage encoding so nested structures land under
// their stored names, then only allow-listed fields actually present in the
// request body are kept.
func (uc *ListingUsecase) mergeFields(patch entity.Listing, present map[string]json.RawMessage) (map[string]interface{}, error) {
	raw, err := bson.Marshal(patch)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	fields := make(map[string]interface{})
	for jsonKey, field := range uc.variant.Mutable {
		if _, ok := present[jsonKey]; ok {
			fields[field] = doc[field]
		}
	}
	return fields, nil
}

func (uc *ListingUsecase) cacheKey(id string) string {
	return uc.variant.Kind + ":" + id
}

func (uc *ListingUsecase) cacheSet(ctx context.Context, l entity.Listing) {
	if uc.cacheRepo == nil {
		return
	}
	data, err := json.Marshal(l)
	if err != nil {
		return
	}
	if err := uc.cacheRepo.Set(ctx, uc.cacheKey(l.GetID()), data, listingCacheTTL); err != nil {
		uc.logger.Warn("Failed to cache listing", zap.String("id", l.GetID()), zap.Error(err))
	}
}

func (uc *ListingUsecase) cacheDelete(ctx context.Context, id string) {
	if uc.cacheRepo == nil {
		return
	}
	if err := uc.cacheRepo.Delete(ctx, uc.cacheKey(id)); err != nil && !errors.Is(err, cache.ErrNotFound) {
		uc.logger.Warn("Failed to evict cached listing", zap.String("id", id), zap.Error(err))
	}
}

func (uc *ListingUsecase) publishEvent(ctx context.Context, event string, publish func() error) {
	if uc.publisher == nil {
		return
	}
	if err := publish(); err != nil {
		uc.logger.Warn("Failed to publish listing event", zap.String("event", event), zap.Error(err))
	}
}
