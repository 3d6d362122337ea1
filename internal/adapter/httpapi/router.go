package httpapi

import (
	"net/http"
	"path/filepath"

	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/entity"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Deps carries everything the router wires together. LocalUploadsDir is the
// base directory of the local file store; when set, stored files are served
// under /uploads. With an object store it stays empty and files are served
// by the store itself.
type Deps struct {
	Hotels      *ListingHandler
	Restaurants *ListingHandler
	Cabs        *ListingHandler
	Guides      *ListingHandler
	TripPlans   *TripPlanHandler
	Users       *UserHandler

	JWTSecret       string
	ServiceName     string
	LocalUploadsDir string
	Metrics         *metrics.Manager
	Logger          *zap.Logger
}

func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(Metrics(deps.Metrics))
	}
	r.Use(Tracing(deps.ServiceName))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusOK, "ok")
	})

	if deps.LocalUploadsDir != "" {
		uploads := http.FileServer(http.Dir(filepath.Join(deps.LocalUploadsDir, "uploads")))
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", uploads))
	}

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", deps.Users.Register)
		r.Post("/login", deps.Users.Login)
		r.Group(func(r chi.Router) {
			r.Use(Authenticate(deps.JWTSecret, deps.Logger))
			r.Get("/me", deps.Users.Me)
		})
	})

	mountListing(r, "/api/hotels", deps.Hotels, entity.RoleHotelOwner, deps)
	mountListing(r, "/api/restaurants", deps.Restaurants, entity.RoleRestaurantOwner, deps)
	mountListing(r, "/api/cabs", deps.Cabs, entity.RoleCabDriver, deps)
	mountListing(r, "/api/guides", deps.Guides, entity.RoleGuide, deps)

	r.Route("/api/tripplans", func(r chi.Router) {
		r.Use(Authenticate(deps.JWTSecret, deps.Logger))
		r.Get("/", deps.TripPlans.ListMine)
		r.Post("/", deps.TripPlans.Create)
		r.Get("/{id}", deps.TripPlans.GetByID)
		r.Put("/{id}", deps.TripPlans.Update)
		r.Delete("/{id}", deps.TripPlans.Delete)
	})

	return r
}

// mountListing wires the shared route shape of a listing kind. Reads are
// public; every mutation requires the kind's owner role.
func mountListing(r chi.Router, path string, h *ListingHandler, writeRole string, deps Deps) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/search", h.Search)
		r.Get("/{id}", h.GetByID)
		r.Get("/{id}/images", h.ListImages)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(deps.JWTSecret, deps.Logger))
			r.Use(RequireRole(writeRole))
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Delete("/{id}/images/{index}", h.DeleteImage)
		})
	})
}
