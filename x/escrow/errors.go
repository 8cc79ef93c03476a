package escrow

import "github.com/iov-one/weave-escrow/errors"

// Reserved codes 1200~1209
var (
	// ErrInvalidInstruction is returned when a message routed to the
	// escrow extension is not one of its instructions.
	ErrInvalidInstruction = errors.Register(1200, "invalid instruction")

	// ErrNotRentExempt is returned when the deposit does not cover the
	// storage of a new escrow record.
	ErrNotRentExempt = errors.Register(1201, "not rent exempt")
)
