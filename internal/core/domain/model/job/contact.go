package job

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrContactIsNotConstructed is returned when a Contact was not created via NewContact.
var ErrContactIsNotConstructed = errs.NewValueIsRequiredError(
	"contact must be created via NewContact constructor")

// Contact holds the customer's name and phone number for a delivery.
// It is read-only to the driver: nothing on the aggregate mutates it after
// job creation.
type Contact struct {
	name  string
	phone string
	guard guard.ConstructorGuard
}

// NewContact creates a validated customer contact. Both fields are required.
func NewContact(name, phone string) (Contact, error) {
	var errValidate error
	if name == "" {
		errValidate = errors.Join(errValidate, errs.NewValueIsRequiredError("customerName"))
	}
	if phone == "" {
		errValidate = errors.Join(errValidate, errs.NewValueIsRequiredError("customerPhone"))
	}
	if errValidate != nil {
		return Contact{}, errValidate
	}

	return Contact{name: name, phone: phone, guard: guard.NewConstructorGuard()}, nil
}

// Name returns the customer's name.
func (c Contact) Name() string {
	return c.name
}

// Phone returns the customer's phone number.
func (c Contact) Phone() string {
	return c.phone
}

// Validate checks that the contact was created through NewContact.
func (c Contact) Validate() error {
	return c.guard.Validate(ErrContactIsNotConstructed)
}
