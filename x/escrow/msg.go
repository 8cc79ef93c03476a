package escrow

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

const (
	pathInitEscrowMsg = "escrow/init"
	pathExchangeMsg   = "escrow/exchange"
)

var _ weave.Msg = (*InitEscrowMsg)(nil)

// Path returns the routing path for this message
func (InitEscrowMsg) Path() string {
	return pathInitEscrowMsg
}

// Validate makes sure that this is sensible
func (m *InitEscrowMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Initializer", m.Initializer.Validate())
	errs = errors.AppendField(errs, "HoldingAccount", m.HoldingAccount.Validate())
	errs = errors.AppendField(errs, "PayoutAccount", m.PayoutAccount.Validate())
	errs = errors.AppendField(errs, "EscrowRecord", m.EscrowRecord.Validate())
	if m.ExpectedAmount == 0 {
		errs = errors.Append(errs, errors.Field("ExpectedAmount", errors.ErrAmount, "must be positive"))
	}
	if m.EscrowRecord.Equals(m.HoldingAccount) {
		errs = errors.Append(errs, errors.Field("EscrowRecord", errors.ErrInput, "must differ from the holding account"))
	}
	return errs
}

var _ weave.Msg = (*ExchangeMsg)(nil)

// Path returns the routing path for this message
func (ExchangeMsg) Path() string {
	return pathExchangeMsg
}

// Validate makes sure that this is sensible
func (m *ExchangeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Taker", m.Taker.Validate())
	errs = errors.AppendField(errs, "TakerSource", m.TakerSource.Validate())
	errs = errors.AppendField(errs, "TakerDestination", m.TakerDestination.Validate())
	errs = errors.AppendField(errs, "HoldingAccount", m.HoldingAccount.Validate())
	errs = errors.AppendField(errs, "Initializer", m.Initializer.Validate())
	errs = errors.AppendField(errs, "PayoutAccount", m.PayoutAccount.Validate())
	errs = errors.AppendField(errs, "EscrowRecord", m.EscrowRecord.Validate())
	errs = errors.AppendField(errs, "Authority", m.Authority.Validate())
	return errs
}
