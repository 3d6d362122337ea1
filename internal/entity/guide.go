package entity

import (
	"errors"
	"time"
)

type Guide struct {
	ID               string      `bson:"_id,omitempty" json:"id"`
	Name             string      `bson:"name" json:"name"`
	Bio              string      `bson:"bio" json:"bio"`
	Experience       int         `bson:"experience" json:"experience"`
	Languages        []string    `bson:"languages" json:"languages"`
	Specializations  []string    `bson:"specializations" json:"specializations"`
	AreasOfOperation []string    `bson:"areas_of_operation" json:"areasOfOperation"`
	ContactInfo      ContactInfo `bson:"contact_info" json:"contactInfo"`
	PricePerDay      float64     `bson:"price_per_day" json:"pricePerDay"`
	Availability     bool        `bson:"availability" json:"availability"`
	ImagePaths       []string    `bson:"images" json:"images"`
	Owner            string      `bson:"owner_id" json:"ownerId"`
	CreatedAt        time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time   `bson:"updated_at" json:"updatedAt"`
}

func (g *Guide) GetID() string            { return g.ID }
func (g *Guide) SetID(id string)          { g.ID = id }
func (g *Guide) OwnerID() string          { return g.Owner }
func (g *Guide) SetOwnerID(id string)     { g.Owner = id }
func (g *Guide) Images() []string         { return g.ImagePaths }
func (g *Guide) SetImages(paths []string) { g.ImagePaths = paths }
func (g *Guide) StampCreated(t time.Time) { g.CreatedAt = t }
func (g *Guide) StampUpdated(t time.Time) { g.UpdatedAt = t }

func (g *Guide) Validate() error {
	switch {
	case g.Name == "":
		return errors.New("name is required")
	case g.Bio == "":
		return errors.New("bio is required")
	case g.Experience < 0:
		return errors.New("experience cannot be negative")
	case len(g.Languages) == 0:
		return errors.New("languages is required")
	case len(g.Specializations) == 0:
		return errors.New("specializations is required")
	case len(g.AreasOfOperation) == 0:
		return errors.New("areasOfOperation is required")
	case g.ContactInfo.Phone == "":
		return errors.New("contactInfo.phone is required")
	case g.ContactInfo.Email == "":
		return errors.New("contactInfo.email is required")
	case g.PricePerDay <= 0:
		return errors.New("pricePerDay must be greater than zero")
	}
	return nil
}
