package usecase

import (
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/entity"
)

// Variant describes one listing kind. All kind-specific behavior of the
// listing usecase is data here: the upload directory, the update allow-list
// and the search parameter mapping. Mutable maps incoming JSON keys to the
// stored field names; owner and images are deliberately absent from every
// allow-list, so neither can be rewritten through an update body.
type Variant struct {
	Kind       string
	Collection string
	UploadDir  string
	Mutable    map[string]string
	Search     map[string]string
	New        func() entity.Listing
}

var HotelVariant = Variant{
	Kind:       "hotel",
	Collection: "hotels",
	UploadDir:  "uploads/hotels",
	Mutable: map[string]string{
		"name":        "name",
		"description": "description",
		"location":    "location",
		"contactInfo": "contact_info",
		"amenities":   "amenities",
		"rooms":       "rooms",
		"starRating":  "star_rating",
	},
	Search: map[string]string{
		"city": "location.city",
	},
	New: func() entity.Listing { return &entity.Hotel{} },
}

var RestaurantVariant = Variant{
	Kind:       "restaurant",
	Collection: "restaurants",
	UploadDir:  "uploads/restaurants",
	Mutable: map[string]string{
		"name":        "name",
		"description": "description",
		"location":    "location",
		"contact":     "contact",
		"cuisine":     "cuisine",
		"menu":        "menu",
		"socialLinks": "social_links",
		"rating":      "rating",
		"priceRange":  "price_range",
	},
	Search: map[string]string{
		"cuisine": "cuisine",
	},
	New: func() entity.Listing { return &entity.Restaurant{} },
}

var CabServiceVariant = Variant{
	Kind:       "cab",
	Collection: "cab_services",
	UploadDir:  "uploads/cabs",
	Mutable: map[string]string{
		"name":           "name",
		"description":    "description",
		"vehicleType":    "vehicle_type",
		"vehicleModel":   "vehicle_model",
		"licensePlate":   "license_plate",
		"capacity":       "capacity",
		"pricePerKm":     "price_per_km",
		"operatingAreas": "operating_areas",
		"contactInfo":    "contact_info",
		"availability":   "availability",
	},
	Search: map[string]string{
		"area": "operating_areas",
	},
	New: func() entity.Listing { return &entity.CabService{} },
}

var GuideVariant = Variant{
	Kind:       "guide",
	Collection: "guides",
	UploadDir:  "uploads/guides",
	Mutable: map[string]string{
		"name":             "name",
		"bio":              "bio",
		"experience":       "experience",
		"languages":        "languages",
		"specializations":  "specializations",
		"areasOfOperation": "areas_of_operation",
		"contactInfo":      "contact_info",
		"pricePerDay":      "price_per_day",
		"availability":     "availability",
	},
	Search: map[string]string{
		"language":       "languages",
		"specialization": "specializations",
	},
	New: func() entity.Listing { return &entity.Guide{} },
}
