package entity

import (
	"errors"
	"time"
)

type MenuItem struct {
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64 `bson:"price" json:"price"`
	Category    string  `bson:"category,omitempty" json:"category,omitempty"`
}

type SocialLinks struct {
	Website   string `bson:"website,omitempty" json:"website,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

type Restaurant struct {
	ID          string      `bson:"_id,omitempty" json:"id"`
	Name        string      `bson:"name" json:"name"`
	Description string      `bson:"description" json:"description"`
	Location    Location    `bson:"location" json:"location"`
	Contact     ContactInfo `bson:"contact" json:"contact"`
	Cuisine     []string    `bson:"cuisine,omitempty" json:"cuisine"`
	Menu        []MenuItem  `bson:"menu,omitempty" json:"menu"`
	SocialLinks SocialLinks `bson:"social_links,omitempty" json:"socialLinks,omitempty"`
	Rating      float64     `bson:"rating" json:"rating"`
	PriceRange  string      `bson:"price_range" json:"priceRange"`
	ImagePaths  []string    `bson:"images" json:"images"`
	Owner       string      `bson:"owner_id" json:"ownerId"`
	CreatedAt   time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `bson:"updated_at" json:"updatedAt"`
}

func (r *Restaurant) GetID() string            { return r.ID }
func (r *Restaurant) SetID(id string)          { r.ID = id }
func (r *Restaurant) OwnerID() string          { return r.Owner }
func (r *Restaurant) SetOwnerID(id string)     { r.Owner = id }
func (r *Restaurant) Images() []string         { return r.ImagePaths }
func (r *Restaurant) SetImages(paths []string) { r.ImagePaths = paths }
func (r *Restaurant) StampCreated(t time.Time) { r.CreatedAt = t }
func (r *Restaurant) StampUpdated(t time.Time) { r.UpdatedAt = t }

func (r *Restaurant) Validate() error {
	switch {
	case r.Name == "":
		return errors.New("name is required")
	case r.Description == "":
		return errors.New("description is required")
	case r.Location.Address == "":
		return errors.New("location.address is required")
	case r.Location.City == "":
		return errors.New("location.city is required")
	case r.Contact.Phone == "":
		return errors.New("contact.phone is required")
	case r.Contact.Email == "":
		return errors.New("contact.email is required")
	}
	switch r.PriceRange {
	case "budget", "moderate", "luxury":
	default:
		return errors.New("priceRange must be one of budget, moderate, luxury")
	}
	if r.Rating < 0 || r.Rating > 5 {
		return errors.New("rating must be between 0 and 5")
	}
	return nil
}
