package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/attachment"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/entity"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/port/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Insert(ctx context.Context, l entity.Listing) (string, error) {
	args := m.Called(ctx, l)
	return args.String(0), args.Error(1)
}

func (m *MockListingRepository) FindAll(ctx context.Context) ([]entity.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Listing), args.Error(1)
}

func (m *MockListingRepository) FindByID(ctx context.Context, id string) (entity.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entity.Listing), args.Error(1)
}

func (m *MockListingRepository) Merge(ctx context.Context, id string, fields map[string]interface{}) (entity.Listing, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entity.Listing), args.Error(1)
}

func (m *MockListingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListingRepository) Search(ctx context.Context, terms map[string]string) ([]entity.Listing, error) {
	args := m.Called(ctx, terms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Listing), args.Error(1)
}

type recordingStore struct {
	removed []string
}

func (s *recordingStore) Save(ctx context.Context, dir, originalName string, data []byte) (string, error) {
	return dir + "/" + originalName, nil
}

func (s *recordingStore) Remove(ctx context.Context, path string) error {
	s.removed = append(s.removed, path)
	return nil
}

func newHotelUsecase(repo repository.ListingRepository, store *recordingStore) *ListingUsecase {
	logger := zap.NewNop()
	return NewListingUsecase(HotelVariant, repo, attachment.NewLifecycle(store, logger), nil, nil, nil, logger)
}

func validHotelBody() []byte {
	return []byte(`{
		"name": "Galle Face Hotel",
		"description": "Colonial era hotel on the seafront",
		"location": {"address": "2 Galle Rd", "city": "Colombo"},
		"contactInfo": {"phone": "+94112541010", "email": "stay@gallefacehotel.lk"},
		"ownerId": "intruder"
	}`)
}

func TestListingCreate_OwnerComesFromActor(t *testing.T) {
	repo := new(MockListingRepository)
	store := &recordingStore{}
	uc := newHotelUsecase(repo, store)

	repo.On("Insert", mock.Anything, mock.MatchedBy(func(l entity.Listing) bool {
		return l.OwnerID() == "user-1"
	})).Return("hotel-1", nil)

	created, err := uc.Create(context.Background(), "user-1", validHotelBody(), nil)

	require.NoError(t, err)
	assert.Equal(t, "hotel-1", created.GetID())
	assert.Equal(t, "user-1", created.OwnerID())
	repo.AssertExpectations(t)
}

func TestListingCreate_NormalizesUploadPaths(t *testing.T) {
	repo := new(MockListingRepository)
	store := &recordingStore{}
	uc := newHotelUsecase(repo, store)

	repo.On("Insert", mock.Anything, mock.Anything).Return("hotel-1", nil)

	uploads := []attachment.UploadedFile{
		{StoredPath: `uploads\hotels\a.jpg`},
		{StoredPath: "uploads/hotels/b.jpg"},
	}
	created, err := uc.Create(context.Background(), "user-1", validHotelBody(), uploads)

	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/hotels/a.jpg", "/uploads/hotels/b.jpg"}, created.Images())
}

func TestListingCreate_ValidationFailureDeletesUploads(t *testing.T) {
	repo := new(MockListingRepository)
	store := &recordingStore{}
	uc := newHotelUsecase(repo, store)

	uploads := []attachment.UploadedFile{{StoredPath: "uploads/hotels/a.jpg"}}
	_, err := uc.Create(context.Background(), "user-1", []byte(`{"name": "No Description"}`), uploads)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"/uploads/hotels/a.jpg"}, store.removed)
	repo.AssertNotCalled(t, "Insert")
}

func TestListingCreate_InsertFailureDeletesUploads(t *testing.T) {
	repo := new(MockListingRepository)
	store := &recordingStore{}
	uc := newHotelUsecase(repo, store)

	repo.On("Insert", mock.Anything, mock.Anything).Return("", errors.New("write concern error"))

	uploads := []attachment.UploadedFile{
		{StoredPath: "uploads/hotels/a.jpg"},
		{StoredPath: "uploads/hotels/b.jpg"},
	}
	_, err := uc.Create(context.Background(), "user-1", validHotelBody(), uploads)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "write concern error", vErr.Reason)
	assert.ElementsMatch(t, []string{"/uploads/hotels/a.jpg", "/uploads/hotels/b.jpg"}, store.removed)
}

func TestListingUpdate_NotFoundBeforeForbidden(t *testing.T) {
	repo := new(MockListingRepository)
	store := &recordingStore{}
	uc := newHotelUsecase(repo, store)

	repo.On("FindByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	_, err := uc.Update(context.Background(), "missing", "someone-else", nil, nil, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListingUpdate_ForbiddenForNonOwner(t *testing.T) {
	repo := new(MockListingRepository)
	store := &recordingStore{}
	uc := newHotelUsecase(repo, store)

	repo.On("FindByID", mock.Anything, "hotel-1").Return(&entity.Hotel{ID: "hotel-1", Owner: "user-1"}, nil)

	uploads := []attachment.UploadedFile{{StoredPath: "uploads/hotels/new.jpg"}}
	_, err := uc.Update(context.Background(), "hotel-1", "user-2", nil, uploads, false)

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, []string{"/uploads/hotels/new.jpg"}, store.removed,
		"uploads for a rejected update must not be left behind")
	repo.AssertNotCalled(t, "Merge")
}

func TestListingUpdate_AppendPreservesOrderAndCap(t *testing.T) {
	repo := new(MockListingRepository)
	store := &recordingStore{}
	uc := newHotelUsecase(repo, store)

	existing := &entity.Hotel{
		ID:         "hotel-1",
		Owner:      "user-1",
		ImagePaths: []string{"/uploads/hotels/1.jpg", "/uploads/hotels/2.jpg", "/uploads/hotels/3.jpg", "/uploads/hotels/4.jpg"},
	}
	repo.On("FindByID", mock.Anything, "hotel-1").Return(existing, nil)

	var mergedImages []string
	repo.On("Merge", mock.Anything, "hotel-1", mock.MatchedBy(func(fields map[string]interface{}) bool {
		images, ok := fields["images"].([]string)
		if ok {
			mergedImages = images
		}
		return ok
	})).Return(existing, nil)

	uploads := []attachment.UploadedFile{
		{StoredPath: "uploads/hotels/5.jpg"},
		{StoredPath: "uploads/hotels/6.jpg"},
	}
	_, err := uc.Update(context.Background(), "hotel-1", "user-1", nil, uploads, false)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"/uploads/hotels/1.jpg", "/uploads/hotels/2.jpg", "/uploads/hotels/3.jpg",
		"/uploads/hotels/4.jpg", "/uploads/hotels/5.jpg",
	}, mergedImages)
	assert.Empty(t, store.removed, "truncated uploads keep their files on disk")
}

func TestListingUpdate_ReplaceDeletesOldFilesBeforeWrite(t *testing.T) {
	repo := new(MockListingRepository)
	store := &recordingStore{}
	uc := newHotelUsecase(repo, store)

	existing := &entity.Hotel{
		ID:         "hotel-1",
		Owner:      "user-1",
		ImagePaths: []string{"/uploads/hotels/old1.jpg", "/uploads/hotels/old2.jpg"},
	}
	repo.On("FindByID", mock.Anything, "hotel-1").Return(existing, nil)

	repo.On("Merge", mock.Anything, "hotel-1", mock.MatchedBy(func(fields map[string]interface{}) bool {
		images, ok := fields["images"].([]string)
		return ok && len(images) == 1 && images[0] == "/uploads/hotels/new.jpg"
	})).Return(existing, nil)

	uploads := []attachment.UploadedFile{{StoredPath: "uploads/hotels/new.jpg"}}
	_, err := uc.Update(context.Background(), "hotel-1", "user-1", nil, uploads, true)

	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/hotels/old1.jpg", "/uploads/hotels/old2.jpg"}, store.removed)
}

func TestListingUpdate_OnlyAllowListedFieldsMerged(t *testing.T) {
	repo := new(MockListingRepository)
	store := &recordingStore{}
	uc := newHotelUsecase(repo, store)

	existing := &entity.Hotel{ID: "hotel-1", Owner: "user-1"}
	repo.On("FindByID", mock.Anything, "hotel-1").Return(existing, nil)

	var merged map[string]interface{}
	repo.On("Merge", mock.Anything, "hotel-1", mock.MatchedBy(func(fields map[string]interface{}) bool {
		merged = fields
		return true
	})).Return(existing, nil)

	body := []byte(`{"name": "Renamed", "ownerId": "hijacker", "images": ["/etc/passwd"], "id": "other"}`)
	_, err := uc.Update(context.Background(), "hotel-1", "user-1", body, nil, false)

	require.NoError(t, err)
	assert.Equal(t, "Renamed", merged["name"])
	assert.NotContains(t, merged, "owner_id")
	assert.NotContains(t, merged, "_id")
	assert.NotContains(t, merged, "images", "images only change through uploads or the image delete endpoint")
}

func TestListingDelete_CascadesImageFiles(t *testing.T) {
	repo := new(MockListingRepository)
	store := &recordingStore{}
	uc := newHotelUsecase(repo, store)

	existing := &entity.Hotel{
		ID:         "hotel-1",
		Owner:      "user-1",
		ImagePaths: []string{"/uploads/hotels/a.jpg", "/uploads/hotels/b.jpg"},
	}
	repo.On("FindByID", mock.Anything, "hotel-1").Return(existing, nil)
	repo.On("Delete", mock.Anything, "hotel-1").Return(nil)

	err := uc.Delete(context.Background(), "hotel-1", "user-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/hotels/a.jpg", "/uploads/hotels/b.jpg"}, store.removed)
	repo.AssertExpectations(t)
}

func TestListingDelete_ForbiddenKeepsRecordAndFiles(t *testing.T) {
	repo := new(MockListingRepository)
	store := &recordingStore{}
	uc := newHotelUsecase(repo, store)

	existing := &entity.Hotel{ID: "hotel-1", Owner: "user-1", ImagePaths: []string{"/uploads/hotels/a.jpg"}}
	repo.On("FindByID", mock.Anything, "hotel-1").Return(existing, nil)

	err := uc.Delete(context.Background(), "hotel-1", "user-2")

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, store.removed)
	repo.AssertNotCalled(t, "Delete")
}

func TestListingDeleteImageAt_RemovesFileAndKeepsOrder(t *testing.T) {
	repo := new(MockListingRepository)
	store := &recordingStore{}
	uc := newHotelUsecase(repo, store)

	existing := &entity.Hotel{
		ID:         "hotel-1",
		Owner:      "user-1",
		ImagePaths: []string{"/uploads/hotels/a.jpg", "/uploads/hotels/b.jpg", "/uploads/hotels/c.jpg"},
	}
	repo.On("FindByID", mock.Anything, "hotel-1").Return(existing, nil)

	updated := &entity.Hotel{
		ID:         "hotel-1",
		Owner:      "user-1",
		ImagePaths: []string{"/uploads/hotels/a.jpg", "/uploads/hotels/c.jpg"},
	}
	repo.On("Merge", mock.Anything, "hotel-1", mock.MatchedBy(func(fields map[string]interface{}) bool {
		images, ok := fields["images"].([]string)
		return ok && len(images) == 2 && images[0] == "/uploads/hotels/a.jpg" && images[1] == "/uploads/hotels/c.jpg"
	})).Return(updated, nil)

	rest, err := uc.DeleteImageAt(context.Background(), "hotel-1", "user-1", 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/hotels/a.jpg", "/uploads/hotels/c.jpg"}, rest)
	assert.Equal(t, []string{"/uploads/hotels/b.jpg"}, store.removed)
}

func TestListingDeleteImageAt_OutOfRangeIsNotFound(t *testing.T) {
	repo := new(MockListingRepository)
	store := &recordingStore{}
	uc := newHotelUsecase(repo, store)

	existing := &entity.Hotel{ID: "hotel-1", Owner: "user-1", ImagePaths: []string{"/uploads/hotels/a.jpg"}}
	repo.On("FindByID", mock.Anything, "hotel-1").Return(existing, nil)

	_, err := uc.DeleteImageAt(context.Background(), "hotel-1", "user-1", 5)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.removed)
	repo.AssertNotCalled(t, "Merge")
}

func TestListingSearch_MapsRecognizedParams(t *testing.T) {
	repo := new(MockListingRepository)
	store := &recordingStore{}
	logger := zap.NewNop()
	uc := NewListingUsecase(CabServiceVariant, repo, attachment.NewLifecycle(store, logger), nil, nil, nil, logger)

	repo.On("Search", mock.Anything, map[string]string{"operating_areas": "goa"}).
		Return([]entity.Listing{}, nil)

	_, err := uc.Search(context.Background(), map[string]string{"area": "goa", "bogus": "x"})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListingSearch_GuideCombinesLanguageAndSpecialization(t *testing.T) {
	repo := new(MockListingRepository)
	store := &recordingStore{}
	logger := zap.NewNop()
	uc := NewListingUsecase(GuideVariant, repo, attachment.NewLifecycle(store, logger), nil, nil, nil, logger)

	repo.On("Search", mock.Anything, map[string]string{
		"languages":       "english",
		"specializations": "wildlife",
	}).Return([]entity.Listing{}, nil)

	_, err := uc.Search(context.Background(), map[string]string{
		"language":       "english",
		"specialization": "wildlife",
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
