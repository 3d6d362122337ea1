package entity

import (
	"errors"
	"time"
)

// TripPlan references listings by id only. References are weak: a listing may
// be deleted after being added to a plan, and the same listing may appear more
// than once. Resolution happens at read time.
type TripPlan struct {
	ID          string           `bson:"_id,omitempty" json:"id"`
	UserID      string           `bson:"user_id" json:"userId"`
	Name        string           `bson:"name" json:"name"`
	StartDate   time.Time        `bson:"start_date" json:"startDate"`
	EndDate     time.Time        `bson:"end_date" json:"endDate"`
	Hotels      []HotelStop      `bson:"hotels,omitempty" json:"hotels"`
	Restaurants []RestaurantStop `bson:"restaurants,omitempty" json:"restaurants"`
	CabServices []CabRide        `bson:"cab_services,omitempty" json:"cabServices"`
	Guides      []GuideBooking   `bson:"guides,omitempty" json:"guides"`
	CreatedAt   time.Time        `bson:"created_at" json:"createdAt"`
}

type HotelStop struct {
	HotelID  string    `bson:"hotel_id" json:"hotelId"`
	CheckIn  time.Time `bson:"check_in,omitempty" json:"checkIn,omitempty"`
	CheckOut time.Time `bson:"check_out,omitempty" json:"checkOut,omitempty"`
}

type RestaurantStop struct {
	RestaurantID string    `bson:"restaurant_id" json:"restaurantId"`
	Date         time.Time `bson:"date,omitempty" json:"date,omitempty"`
	Time         string    `bson:"time,omitempty" json:"time,omitempty"`
}

type CabRide struct {
	CabServiceID string    `bson:"cab_service_id" json:"cabServiceId"`
	Date         time.Time `bson:"date,omitempty" json:"date,omitempty"`
	Pickup       string    `bson:"pickup,omitempty" json:"pickup,omitempty"`
	Dropoff      string    `bson:"dropoff,omitempty" json:"dropoff,omitempty"`
}

type GuideBooking struct {
	GuideID   string    `bson:"guide_id" json:"guideId"`
	StartDate time.Time `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate   time.Time `bson:"end_date,omitempty" json:"endDate,omitempty"`
}

func (p *TripPlan) Validate() error {
	switch {
	case p.Name == "":
		return errors.New("name is required")
	case p.StartDate.IsZero():
		return errors.New("startDate is required")
	case p.EndDate.IsZero():
		return errors.New("endDate is required")
	case p.EndDate.Before(p.StartDate):
		return errors.New("endDate must not be before startDate")
	}
	return nil
}
