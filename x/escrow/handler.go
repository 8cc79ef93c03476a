package escrow

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/x"
	"github.com/iov-one/weave-escrow/x/ledger"
)

const (
	initEscrowCost int64 = 300
	exchangeCost   int64 = 300
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ctrl ledger.Controller) {
	bucket := NewBucket()
	r.Handle(pathInitEscrowMsg, &initEscrowHandler{auth: auth, bucket: bucket, ctrl: ctrl})
	r.Handle(pathExchangeMsg, &exchangeHandler{auth: auth, bucket: bucket, ctrl: ctrl})
}

// RegisterQuery will register this bucket as "/escrows"
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

type initEscrowHandler struct {
	auth   x.Authenticator
	bucket Bucket
	ctrl   ledger.Controller
}

var _ weave.Handler = (*initEscrowHandler)(nil)

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h *initEscrowHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: initEscrowCost}, nil
}

// Deliver moves the holding account under the escrow authority and stores
// the escrow record. The holding account balance is not changed.
func (h *initEscrowHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	authority, _, err := Authority()
	if err != nil {
		return nil, errors.Wrap(err, "escrow authority")
	}
	native, err := h.ctrl.NativeTicker(db)
	if err != nil {
		return nil, err
	}

	if _, err := h.ctrl.CreateAccount(db, msg.EscrowRecord, native, authority); err != nil {
		return nil, errors.Wrap(err, "cannot create record slot")
	}
	if msg.Deposit > 0 {
		if err := h.ctrl.Transfer(ctx, db, msg.Initializer, msg.EscrowRecord, msg.Deposit, msg.Initializer); err != nil {
			return nil, errors.Wrap(err, "cannot fund record slot")
		}
	}
	if err := h.bucket.Put(db, msg.EscrowRecord, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	if err := h.ctrl.SetAuthority(ctx, db, msg.HoldingAccount, msg.Initializer, authority); err != nil {
		return nil, errors.Wrap(err, "cannot take over holding account")
	}

	weave.GetLogger(ctx).Info("escrow opened",
		"record", msg.EscrowRecord,
		"initializer", msg.Initializer,
		"holding", msg.HoldingAccount,
		"expected", msg.ExpectedAmount)
	return &weave.DeliverResult{Data: msg.EscrowRecord}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h *initEscrowHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*InitEscrowMsg, *Escrow, error) {
	var msg InitEscrowMsg
	if err := loadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Initializer) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "initializer signature missing")
	}
	// Record slots are claimed like ledger accounts, by signing for them.
	if !h.auth.HasAddress(ctx, msg.EscrowRecord) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "record slot signature missing")
	}

	switch err := h.bucket.Has(db, msg.EscrowRecord); {
	case err == nil:
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "escrow %s", msg.EscrowRecord)
	case !errors.ErrNotFound.Is(err):
		return nil, nil, err
	}
	switch _, err := h.ctrl.Account(db, msg.EscrowRecord); {
	case err == nil:
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "record slot %s is in use", msg.EscrowRecord)
	case !errors.ErrNotFound.Is(err):
		return nil, nil, err
	}

	holding, err := h.ctrl.Account(db, msg.HoldingAccount)
	if err != nil {
		return nil, nil, errors.Wrap(err, "holding account")
	}
	if !holding.Authority.Equals(msg.Initializer) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "holding account is not controlled by the initializer")
	}

	escrow := &Escrow{
		Metadata:       &weave.Metadata{Schema: 1},
		Initializer:    msg.Initializer,
		HoldingAccount: msg.HoldingAccount,
		PayoutAccount:  msg.PayoutAccount,
		ExpectedAmount: msg.ExpectedAmount,
		State:          StateOpen,
		Deposit:        msg.Deposit,
	}
	raw, err := escrow.Marshal()
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot serialize escrow")
	}
	switch exempt, err := h.ctrl.IsRentExempt(db, msg.Deposit, len(raw)); {
	case err != nil:
		return nil, nil, err
	case !exempt:
		min, _ := h.ctrl.MinimumBalance(db, len(raw))
		return nil, nil, errors.Wrapf(ErrNotRentExempt, "deposit %d, required %d", msg.Deposit, min)
	}
	return &msg, escrow, nil
}

type exchangeHandler struct {
	auth   x.Authenticator
	bucket Bucket
	ctrl   ledger.Controller
}

var _ weave.Handler = (*exchangeHandler)(nil)

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h *exchangeHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: exchangeCost}, nil
}

// Deliver pays the initializer, releases the holding balance to the taker
// and settles the escrow.
func (h *exchangeHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.ctrl.Transfer(ctx, db, msg.TakerSource, escrow.PayoutAccount, escrow.ExpectedAmount, msg.Taker); err != nil {
		return nil, errors.Wrap(err, "cannot pay the initializer")
	}

	authority, signer, err := Authority()
	if err != nil {
		return nil, errors.Wrap(err, "escrow authority")
	}
	released, err := h.ctrl.Balance(db, escrow.HoldingAccount)
	if err != nil {
		return nil, errors.Wrap(err, "holding account")
	}
	if err := h.ctrl.Transfer(ctx, db, escrow.HoldingAccount, msg.TakerDestination, released, msg.Authority, signer); err != nil {
		return nil, errors.Wrap(err, "cannot release holding account")
	}

	escrow.State = StateSettled
	if err := h.bucket.Put(db, msg.EscrowRecord, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	deposit, err := h.ctrl.Balance(db, msg.EscrowRecord)
	if err != nil {
		return nil, errors.Wrap(err, "record slot")
	}
	if deposit > 0 {
		if err := h.ctrl.Transfer(ctx, db, msg.EscrowRecord, escrow.Initializer, deposit, authority, signer); err != nil {
			return nil, errors.Wrap(err, "cannot return deposit")
		}
	}

	weave.GetLogger(ctx).Info("escrow settled",
		"record", msg.EscrowRecord,
		"taker", msg.Taker,
		"paid", escrow.ExpectedAmount,
		"released", released,
		"counter_amount", msg.CounterAmount)
	return &weave.DeliverResult{Data: msg.EscrowRecord}, nil
}

// validate does all common pre-processing between Check and Deliver.
// The counter amount declared by the taker is not compared with anything.
func (h *exchangeHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*ExchangeMsg, *Escrow, error) {
	var msg ExchangeMsg
	if err := loadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Taker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "taker signature missing")
	}

	escrow, err := h.bucket.Get(db, msg.EscrowRecord)
	if err != nil {
		return nil, nil, err
	}
	if escrow.State != StateOpen {
		return nil, nil, errors.Wrapf(errors.ErrState, "escrow is %s", escrow.State)
	}

	switch {
	case !escrow.HoldingAccount.Equals(msg.HoldingAccount):
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "holding account does not match")
	case !escrow.Initializer.Equals(msg.Initializer):
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "initializer does not match")
	case !escrow.PayoutAccount.Equals(msg.PayoutAccount):
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "payout account does not match")
	}
	return &msg, escrow, nil
}

// loadMsg is weave.LoadMsg that reports a message of another type routed to
// the escrow as an invalid instruction.
func loadMsg(tx weave.Tx, dest weave.Msg) error {
	if err := weave.LoadMsg(tx, dest); err != nil {
		if errors.ErrType.Is(err) {
			return errors.Wrap(ErrInvalidInstruction, err.Error())
		}
		return errors.Wrap(err, "load msg")
	}
	return nil
}
