package entity

import "time"

// MaxListingImages caps the images sequence of every listing kind.
const MaxListingImages = 5

// Listing is the common surface of the four listing kinds. Every listing is
// owned by exactly one user; the owner is set once at creation and is never
// writable through an update body.
type Listing interface {
	GetID() string
	SetID(id string)
	OwnerID() string
	SetOwnerID(id string)
	Images() []string
	SetImages(paths []string)
	StampCreated(t time.Time)
	StampUpdated(t time.Time)
	Validate() error
}

type Coordinates struct {
	Lat float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng float64 `bson:"lng,omitempty" json:"lng,omitempty"`
}

type Location struct {
	Address     string      `bson:"address" json:"address"`
	City        string      `bson:"city" json:"city"`
	Coordinates Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

type ContactInfo struct {
	Phone   string `bson:"phone" json:"phone"`
	Email   string `bson:"email" json:"email"`
	Website string `bson:"website,omitempty" json:"website,omitempty"`
}
