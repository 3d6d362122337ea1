package entity

import (
	"errors"
	"time"
)

type Room struct {
	Type          string  `bson:"type" json:"type"`
	PricePerNight float64 `bson:"price_per_night" json:"pricePerNight"`
	Capacity      int     `bson:"capacity" json:"capacity"`
	Available     bool    `bson:"available" json:"available"`
}

type Hotel struct {
	ID          string      `bson:"_id,omitempty" json:"id"`
	Name        string      `bson:"name" json:"name"`
	Description string      `bson:"description" json:"description"`
	Location    Location    `bson:"location" json:"location"`
	ContactInfo ContactInfo `bson:"contact_info" json:"contactInfo"`
	Amenities   []string    `bson:"amenities,omitempty" json:"amenities"`
	Rooms       []Room      `bson:"rooms,omitempty" json:"rooms"`
	StarRating  int         `bson:"star_rating,omitempty" json:"starRating,omitempty"`
	ImagePaths  []string    `bson:"images" json:"images"`
	Owner       string      `bson:"owner_id" json:"ownerId"`
	CreatedAt   time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `bson:"updated_at" json:"updatedAt"`
}

func (h *Hotel) GetID() string             { return h.ID }
func (h *Hotel) SetID(id string)           { h.ID = id }
func (h *Hotel) OwnerID() string           { return h.Owner }
func (h *Hotel) SetOwnerID(id string)      { h.Owner = id }
func (h *Hotel) Images() []string          { return h.ImagePaths }
func (h *Hotel) SetImages(paths []string)  { h.ImagePaths = paths }
func (h *Hotel) StampCreated(t time.Time)  { h.CreatedAt = t }
func (h *Hotel) StampUpdated(t time.Time)  { h.UpdatedAt = t }

func (h *Hotel) Validate() error {
	switch {
	case h.Name == "":
		return errors.New("name is required")
	case h.Description == "":
		return errors.New("description is required")
	case h.Location.Address == "":
		return errors.New("location.address is required")
	case h.Location.City == "":
		return errors.New("location.city is required")
	case h.ContactInfo.Phone == "":
		return errors.New("contactInfo.phone is required")
	case h.ContactInfo.Email == "":
		return errors.New("contactInfo.email is required")
	}
	if h.StarRating != 0 && (h.StarRating < 1 || h.StarRating > 5) {
		return errors.New("starRating must be between 1 and 5")
	}
	return nil
}
