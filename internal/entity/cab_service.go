package entity

import (
	"errors"
	"time"
)

type CabService struct {
	ID             string      `bson:"_id,omitempty" json:"id"`
	Name           string      `bson:"name" json:"name"`
	Description    string      `bson:"description" json:"description"`
	VehicleType    string      `bson:"vehicle_type" json:"vehicleType"`
	VehicleModel   string      `bson:"vehicle_model" json:"vehicleModel"`
	LicensePlate   string      `bson:"license_plate" json:"licensePlate"`
	Capacity       int         `bson:"capacity" json:"capacity"`
	PricePerKm     float64     `bson:"price_per_km" json:"pricePerKm"`
	OperatingAreas []string    `bson:"operating_areas" json:"operatingAreas"`
	ContactInfo    ContactInfo `bson:"contact_info" json:"contactInfo"`
	ImagePaths     []string    `bson:"images" json:"images"`
	Owner          string      `bson:"owner_id" json:"ownerId"`
	Availability   bool        `bson:"availability" json:"availability"`
	CreatedAt      time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time   `bson:"updated_at" json:"updatedAt"`
}

func (c *CabService) GetID() string            { return c.ID }
func (c *CabService) SetID(id string)          { c.ID = id }
func (c *CabService) OwnerID() string          { return c.Owner }
func (c *CabService) SetOwnerID(id string)     { c.Owner = id }
func (c *CabService) Images() []string         { return c.ImagePaths }
func (c *CabService) SetImages(paths []string) { c.ImagePaths = paths }
func (c *CabService) StampCreated(t time.Time) { c.CreatedAt = t }
func (c *CabService) StampUpdated(t time.Time) { c.UpdatedAt = t }

func (c *CabService) Validate() error {
	switch {
	case c.Name == "":
		return errors.New("name is required")
	case c.Description == "":
		return errors.New("description is required")
	case c.VehicleType == "":
		return errors.New("vehicleType is required")
	case c.VehicleModel == "":
		return errors.New("vehicleModel is required")
	case c.LicensePlate == "":
		return errors.New("licensePlate is required")
	case c.Capacity <= 0:
		return errors.New("capacity must be greater than zero")
	case c.PricePerKm <= 0:
		return errors.New("pricePerKm must be greater than zero")
	case len(c.OperatingAreas) == 0:
		return errors.New("operatingAreas is required")
	case c.ContactInfo.Phone == "":
		return errors.New("contactInfo.phone is required")
	case c.ContactInfo.Email == "":
		return errors.New("contactInfo.email is required")
	}
	return nil
}
