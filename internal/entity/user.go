package entity

import (
	"errors"
	"time"
)

const (
	RoleTourist         = "tourist"
	RoleHotelOwner      = "hotel_owner"
	RoleRestaurantOwner = "restaurant_owner"
	RoleCabDriver       = "cab_driver"
	RoleGuide           = "guide"
)

// User holds the hashed credential; hashing happens in the repository.
type User struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Username  string    `bson:"username" json:"username"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"`
	Phone     string    `bson:"phone" json:"phone"`
	Role      string    `bson:"role" json:"role"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleTourist, RoleHotelOwner, RoleRestaurantOwner, RoleCabDriver, RoleGuide:
		return true
	}
	return false
}

func (u *User) Validate() error {
	switch {
	case u.Username == "":
		return errors.New("username is required")
	case u.Email == "":
		return errors.New("email is required")
	case u.Password == "":
		return errors.New("password is required")
	case u.Phone == "":
		return errors.New("phone is required")
	case !ValidRole(u.Role):
		return errors.New("role must be one of tourist, hotel_owner, restaurant_owner, cab_driver, guide")
	}
	return nil
}
