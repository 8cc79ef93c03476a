package ledger

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/gconf"
	"github.com/iov-one/weave-escrow/x"
)

const (
	createAccountCost int64 = 100
	transferCost      int64 = 100
	setAuthorityCost  int64 = 50
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathCreateAccountMsg, &createAccountHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathTransferMsg, &transferHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathSetAuthorityMsg, &setAuthorityHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathUpdateConfigurationMsg, NewConfigHandler(auth))
}

// RegisterQuery will register the accounts bucket as "/accounts"
func RegisterQuery(qr weave.QueryRouter) {
	NewAccountBucket().Register("accounts", qr)
}

// NewConfigHandler returns a handler of the configuration updates.
func NewConfigHandler(auth x.Authenticator) weave.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler(gconfPackage, &conf, auth)
}

type createAccountHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = (*createAccountHandler)(nil)

func (h *createAccountHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: createAccountCost}, nil
}

func (h *createAccountHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.CreateAccount(db, msg.Address, msg.Ticker, msg.Authority); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: msg.Address}, nil
}

// validate requires the signature of the new account address, so that an
// account cannot be created at an address somebody else is going to use.
func (h *createAccountHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*CreateAccountMsg, error) {
	var msg CreateAccountMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Address) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account address signature missing")
	}
	return &msg, nil
}

type transferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = (*transferHandler)(nil)

func (h *transferHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: transferCost}, nil
}

func (h *transferHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, src, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(ctx, db, msg.Source, msg.Destination, msg.Amount, src.Authority); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h *transferHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*TransferMsg, *Account, error) {
	var msg TransferMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	src, err := h.ctrl.Account(db, msg.Source)
	if err != nil {
		return nil, nil, errors.Wrap(err, "source")
	}
	if !h.auth.HasAddress(ctx, src.Authority) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "source authority signature missing")
	}
	return &msg, src, nil
}

type setAuthorityHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = (*setAuthorityHandler)(nil)

func (h *setAuthorityHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: setAuthorityCost}, nil
}

func (h *setAuthorityHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, acc, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.SetAuthority(ctx, db, msg.Account, acc.Authority, msg.NewAuthority); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h *setAuthorityHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*SetAuthorityMsg, *Account, error) {
	var msg SetAuthorityMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	acc, err := h.ctrl.Account(db, msg.Account)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, acc.Authority) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "account authority signature missing")
	}
	return &msg, acc, nil
}
