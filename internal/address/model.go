package address

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

const minFieldLength = 3

// ShippingAddress is stored as JSON on the user profile and copied onto every order.
type ShippingAddress struct {
	FullName      string   `json:"fullName"`
	StreetAddress string   `json:"streetAddress"`
	City          string   `json:"city"`
	PostalCode    string   `json:"postalCode"`
	Country       string   `json:"country"`
	Lat           *float64 `json:"lat,omitempty"`
	Lng           *float64 `json:"lng,omitempty"`
}

type UpdateAddressInput struct {
	FullName      string   `json:"fullName"`
	StreetAddress string   `json:"streetAddress"`
	City          string   `json:"city"`
	PostalCode    string   `json:"postalCode"`
	Country       string   `json:"country"`
	Lat           *float64 `json:"lat,omitempty"`
	Lng           *float64 `json:"lng,omitempty"`
}

func (a ShippingAddress) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"fullName", a.FullName},
		{"streetAddress", a.StreetAddress},
		{"city", a.City},
		{"postalCode", a.PostalCode},
		{"country", a.Country},
	}
	for _, f := range fields {
		if len([]rune(f.value)) < minFieldLength {
			return fmt.Errorf("%w: %s must be at least %d characters", ErrInvalidAddress, f.name, minFieldLength)
		}
	}
	if a.Lat != nil && (*a.Lat < -90 || *a.Lat > 90) {
		return fmt.Errorf("%w: lat out of range", ErrInvalidAddress)
	}
	if a.Lng != nil && (*a.Lng < -180 || *a.Lng > 180) {
		return fmt.Errorf("%w: lng out of range", ErrInvalidAddress)
	}
	return nil
}

func (a ShippingAddress) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *ShippingAddress) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return errors.New("shipping address: unsupported column type")
	}
}
