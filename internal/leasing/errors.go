package leasing

import "errors"

var (
	ErrLeasingDisabled     = errors.New("Leasing is disabled for this room")
	ErrInvalidQuantity     = errors.New("Shares and months must be positive")
	ErrAmountOverflow      = errors.New("Rent amount overflows")
	ErrInsufficientPayment = errors.New("Payment does not cover the rent")
	ErrInsufficientSupply  = errors.New("Not enough shares available in the pool")
	ErrNoLease             = errors.New("No lease found for this room and tenant")
	ErrLeaseStillActive    = errors.New("Lease term has not expired yet")
)
