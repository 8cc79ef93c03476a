package ledger

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

const (
	pathCreateAccountMsg       = "ledger/create"
	pathTransferMsg            = "ledger/transfer"
	pathSetAuthorityMsg        = "ledger/authority"
	pathUpdateConfigurationMsg = "ledger/update_configuration"
)

var _ weave.Msg = (*CreateAccountMsg)(nil)

// Path returns the routing path for this message
func (CreateAccountMsg) Path() string {
	return pathCreateAccountMsg
}

// Validate makes sure that this is sensible
func (m *CreateAccountMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	if !isTicker(m.Ticker) {
		errs = errors.Append(errs, errors.Field("Ticker", errors.ErrInput, "invalid ticker"))
	}
	errs = errors.AppendField(errs, "Authority", m.Authority.Validate())
	return errs
}

var _ weave.Msg = (*TransferMsg)(nil)

// Path returns the routing path for this message
func (TransferMsg) Path() string {
	return pathTransferMsg
}

// Validate makes sure that this is sensible
func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Amount == 0 {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrAmount, "must be positive"))
	}
	return errs
}

var _ weave.Msg = (*SetAuthorityMsg)(nil)

// Path returns the routing path for this message
func (SetAuthorityMsg) Path() string {
	return pathSetAuthorityMsg
}

// Validate makes sure that this is sensible
func (m *SetAuthorityMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Account", m.Account.Validate())
	errs = errors.AppendField(errs, "NewAuthority", m.NewAuthority.Validate())
	return errs
}

var _ weave.Msg = (*UpdateConfigurationMsg)(nil)

// Path returns the routing path for this message
func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

// Validate will skip any zero fields and validate the set ones
func (m *UpdateConfigurationMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	c := m.Patch
	if c == nil {
		return errors.Append(errs, errors.Field("Patch", errors.ErrEmpty, "required"))
	}
	if len(c.Owner) != 0 {
		errs = errors.AppendField(errs, "Patch.Owner", c.Owner.Validate())
	}
	if c.NativeTicker != "" && !isTicker(c.NativeTicker) {
		errs = errors.Append(errs, errors.Field("Patch.NativeTicker", errors.ErrInput, "invalid ticker"))
	}
	return errs
}
