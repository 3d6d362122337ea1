package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/entity"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/platform/metrics"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/port/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// TripPlanPublisher pushes trip plan events onto the message bus.
type TripPlanPublisher interface {
	PublishTripPlanCreated(ctx context.Context, plan *entity.TripPlan) error
	PublishTripPlanDeleted(ctx context.Context, id string) error
}

// tripPlanMutable is the allow-list for partial updates; user and created_at
// are absent so neither can be rewritten through the body.
var tripPlanMutable = map[string]string{
	"name":        "name",
	"startDate":   "start_date",
	"endDate":     "end_date",
	"hotels":      "hotels",
	"restaurants": "restaurants",
	"cabServices": "cab_services",
	"guides":      "guides",
}

// TripPlanView is a plan with its listing references resolved. A reference to
// a listing that no longer exists resolves to a null embed; the stop itself
// stays in place.
type TripPlanView struct {
	ID          string               `json:"id"`
	UserID      string               `json:"userId"`
	Name        string               `json:"name"`
	StartDate   time.Time            `json:"startDate"`
	EndDate     time.Time            `json:"endDate"`
	Hotels      []HotelStopView      `json:"hotels"`
	Restaurants []RestaurantStopView `json:"restaurants"`
	CabServices []CabRideView        `json:"cabServices"`
	Guides      []GuideBookingView   `json:"guides"`
	CreatedAt   time.Time            `json:"createdAt"`
}

type HotelStopView struct {
	Hotel    *entity.Hotel `json:"hotel"`
	CheckIn  time.Time     `json:"checkIn,omitempty"`
	CheckOut time.Time     `json:"checkOut,omitempty"`
}

type RestaurantStopView struct {
	Restaurant *entity.Restaurant `json:"restaurant"`
	Date       time.Time          `json:"date,omitempty"`
	Time       string             `json:"time,omitempty"`
}

type CabRideView struct {
	CabService *entity.CabService `json:"cabService"`
	Date       time.Time          `json:"date,omitempty"`
	Pickup     string             `json:"pickup,omitempty"`
	Dropoff    string             `json:"dropoff,omitempty"`
}

type GuideBookingView struct {
	Guide     *entity.Guide `json:"guide"`
	StartDate time.Time     `json:"startDate,omitempty"`
	EndDate   time.Time     `json:"endDate,omitempty"`
}

// TripPlanUsecase owns trip plan CRUD. Plans store listing ids only; reads
// resolve them against the four listing repositories.
type TripPlanUsecase struct {
	repo        repository.TripPlanRepository
	hotels      repository.ListingRepository
	restaurants repository.ListingRepository
	cabs        repository.ListingRepository
	guides      repository.ListingRepository
	publisher   TripPlanPublisher
	metrics     *metrics.Manager
	logger      *zap.Logger
}

func NewTripPlanUsecase(
	repo repository.TripPlanRepository,
	hotels, restaurants, cabs, guides repository.ListingRepository,
	publisher TripPlanPublisher,
	m *metrics.Manager,
	logger *zap.Logger,
) *TripPlanUsecase {
	return &TripPlanUsecase{
		repo:        repo,
		hotels:      hotels,
		restaurants: restaurants,
		cabs:        cabs,
		guides:      guides,
		publisher:   publisher,
		metrics:     m,
		logger:      logger,
	}
}

// ListMine returns the acting user's plans, newest first, fully resolved.
func (uc *TripPlanUsecase) ListMine(ctx context.Context, userID string) ([]*TripPlanView, error) {
	plans, err := uc.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trip plans: %w", err)
	}
	views := make([]*TripPlanView, 0, len(plans))
	for _, plan := range plans {
		views = append(views, uc.resolve(ctx, plan))
	}
	return views, nil
}

func (uc *TripPlanUsecase) GetByID(ctx context.Context, id, actorID string) (*TripPlanView, error) {
	plan, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trip plan: %w", err)
	}
	if plan.UserID != actorID {
		return nil, ErrForbidden
	}
	return uc.resolve(ctx, plan), nil
}

func (uc *TripPlanUsecase) Create(ctx context.Context, actorID string, body []byte) (*TripPlanView, error) {
	plan := &entity.TripPlan{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, plan); err != nil {
			return nil, validationErr("invalid request body: " + err.Error())
		}
	}
	plan.ID = ""
	plan.UserID = actorID
	plan.CreatedAt = time.Now().UTC()

	if err := plan.Validate(); err != nil {
		return nil, validationErr(err.Error())
	}

	id, err := uc.repo.Insert(ctx, plan)
	if err != nil {
		return nil, validationErr(err.Error())
	}
	plan.ID = id

	if uc.publisher != nil {
		if err := uc.publisher.PublishTripPlanCreated(ctx, plan); err != nil {
			uc.logger.Warn("Failed to publish trip plan event", zap.Error(err))
		}
	}
	if uc.metrics != nil {
		uc.metrics.TripPlansCreated.Inc()
	}
	uc.logger.Info("Trip plan created", zap.String("id", id), zap.String("user", actorID))
	return uc.resolve(ctx, plan), nil
}

func (uc *TripPlanUsecase) Update(ctx context.Context, id, actorID string, body []byte) (*TripPlanView, error) {
	existing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trip plan: %w", err)
	}
	if existing.UserID != actorID {
		return nil, ErrForbidden
	}

	patch := &entity.TripPlan{}
	present := map[string]json.RawMessage{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, patch); err != nil {
			return nil, validationErr("invalid request body: " + err.Error())
		}
		if err := json.Unmarshal(body, &present); err != nil {
			return nil, validationErr("invalid request body: " + err.Error())
		}
	}

	raw, err := bson.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode trip plan update: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to encode trip plan update: %w", err)
	}
	fields := make(map[string]interface{})
	for jsonKey, field := range tripPlanMutable {
		if _, ok := present[jsonKey]; ok {
			fields[field] = doc[field]
		}
	}
	if len(fields) == 0 {
		return uc.resolve(ctx, existing), nil
	}

	updated, err := uc.repo.Merge(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, validationErr(err.Error())
	}
	uc.logger.Info("Trip plan updated", zap.String("id", id))
	return uc.resolve(ctx, updated), nil
}

func (uc *TripPlanUsecase) Delete(ctx context.Context, id, actorID string) error {
	existing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get trip plan: %w", err)
	}
	if existing.UserID != actorID {
		return ErrForbidden
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete trip plan: %w", err)
	}

	if uc.publisher != nil {
		if err := uc.publisher.PublishTripPlanDeleted(ctx, id); err != nil {
			uc.logger.Warn("Failed to publish trip plan event", zap.Error(err))
		}
	}
	uc.logger.Info("Trip plan deleted", zap.String("id", id))
	return nil
}

// resolve looks up every referenced listing. A dangling reference is not an
// error: the embed is left null and the lookup moves on.
func (uc *TripPlanUsecase) resolve(ctx context.Context, plan *entity.TripPlan) *TripPlanView {
	view := &TripPlanView{
		ID:          plan.ID,
		UserID:      plan.UserID,
		Name:        plan.Name,
		StartDate:   plan.StartDate,
		EndDate:     plan.EndDate,
		Hotels:      make([]HotelStopView, 0, len(plan.Hotels)),
		Restaurants: make([]RestaurantStopView, 0, len(plan.Restaurants)),
		CabServices: make([]CabRideView, 0, len(plan.CabServices)),
		Guides:      make([]GuideBookingView, 0, len(plan.Guides)),
		CreatedAt:   plan.CreatedAt,
	}

	for _, stop := range plan.Hotels {
		sv := HotelStopView{CheckIn: stop.CheckIn, CheckOut: stop.CheckOut}
		if l := uc.lookup(ctx, uc.hotels, stop.HotelID); l != nil {
			sv.Hotel = l.(*entity.Hotel)
		}
		view.Hotels = append(view.Hotels, sv)
	}
	for _, stop := range plan.Restaurants {
		sv := RestaurantStopView{Date: stop.Date, Time: stop.Time}
		if l := uc.lookup(ctx, uc.restaurants, stop.RestaurantID); l != nil {
			sv.Restaurant = l.(*entity.Restaurant)
		}
		view.Restaurants = append(view.Restaurants, sv)
	}
	for _, ride := range plan.CabServices {
		rv := CabRideView{Date: ride.Date, Pickup: ride.Pickup, Dropoff: ride.Dropoff}
		if l := uc.lookup(ctx, uc.cabs, ride.CabServiceID); l != nil {
			rv.CabService = l.(*entity.CabService)
		}
		view.CabServices = append(view.CabServices, rv)
	}
	for _, booking := range plan.Guides {
		bv := GuideBookingView{StartDate: booking.StartDate, EndDate: booking.EndDate}
		if l := uc.lookup(ctx, uc.guides, booking.GuideID); l != nil {
			bv.Guide = l.(*entity.Guide)
		}
		view.Guides = append(view.Guides, bv)
	}
	return view
}

func (uc *TripPlanUsecase) lookup(ctx context.Context, repo repository.ListingRepository, id string) entity.Listing {
	if id == "" {
		return nil
	}
	l, err := repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Warn("Failed to resolve trip plan reference", zap.String("id", id), zap.Error(err))
		}
		return nil
	}
	return l
}
