package kernel

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly
// initialized Address. Addresses must be created via NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address represents a physical pickup or delivery address together with its
// geocoded position. Street and city are mandatory; suburb is optional since
// not every municipality uses one.
//
// Example:
//
//	point, _ := kernel.NewGeoPoint(-33.9249, 18.4241)
//	addr, err := kernel.NewAddress("12 Kloof St", "Cape Town", "Gardens", point)
type Address struct {
	street   string
	city     string
	suburb   string
	position GeoPoint
	guard    guard.ConstructorGuard
}

// NewAddress creates a validated Address. Returns an error if street or city
// is empty, or if the position was not properly constructed.
func NewAddress(street, city, suburb string, position GeoPoint) (Address, error) {
	var errValidate error
	if street == "" {
		errValidate = errors.Join(errValidate, errs.NewValueIsRequiredError("street"))
	}
	if city == "" {
		errValidate = errors.Join(errValidate, errs.NewValueIsRequiredError("city"))
	}
	if err := position.Validate(); err != nil {
		errValidate = errors.Join(errValidate, err)
	}
	if errValidate != nil {
		return Address{}, errValidate
	}

	return Address{
		street:   street,
		city:     city,
		suburb:   suburb,
		position: position,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Street returns the street line of the address.
func (a Address) Street() string {
	return a.street
}

// City returns the city of the address.
func (a Address) City() string {
	return a.city
}

// Suburb returns the suburb of the address, possibly empty.
func (a Address) Suburb() string {
	return a.suburb
}

// Position returns the geocoded coordinates of the address.
func (a Address) Position() GeoPoint {
	return a.position
}

// Validate checks that the Address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}
