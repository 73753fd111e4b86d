package payout

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrBankSnapshotIsNotConstructed is returned when a BankSnapshot was not
// created via NewBankSnapshot.
var ErrBankSnapshotIsNotConstructed = errs.NewValueIsRequiredError(
	"bank snapshot must be created via NewBankSnapshot constructor")

// BankSnapshot captures the driver's bank details at the moment a payout
// request is created, so later profile edits never retroactively change a
// pending request.
type BankSnapshot struct {
	holderName    string
	bank          string
	accountNumber string
	guard         guard.ConstructorGuard
}

// NewBankSnapshot creates a validated snapshot. All three fields are required.
func NewBankSnapshot(holderName, bank, accountNumber string) (BankSnapshot, error) {
	var errValidate error
	if holderName == "" {
		errValidate = errors.Join(errValidate, errs.NewValueIsRequiredError("holderName"))
	}
	if bank == "" {
		errValidate = errors.Join(errValidate, errs.NewValueIsRequiredError("bank"))
	}
	if accountNumber == "" {
		errValidate = errors.Join(errValidate, errs.NewValueIsRequiredError("accountNumber"))
	}
	if errValidate != nil {
		return BankSnapshot{}, errValidate
	}

	return BankSnapshot{
		holderName:    holderName,
		bank:          bank,
		accountNumber: accountNumber,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// HolderName returns the account holder's name.
func (b BankSnapshot) HolderName() string {
	return b.holderName
}

// Bank returns the bank's name.
func (b BankSnapshot) Bank() string {
	return b.bank
}

// AccountNumber returns the account number.
func (b BankSnapshot) AccountNumber() string {
	return b.accountNumber
}

// Validate checks that the snapshot was created through NewBankSnapshot.
func (b BankSnapshot) Validate() error {
	return b.guard.Validate(ErrBankSnapshotIsNotConstructed)
}
