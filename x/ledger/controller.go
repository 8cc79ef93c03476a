package ledger

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/x"
)

// Controller is the asset-transfer primitive other extensions build on.
// All authorization checks are done by the controller, so callers only have
// to provide the claimed authority and, when the authority is a derived
// address, the proof of control.
type Controller interface {
	// CreateAccount creates an empty account at the given address.
	CreateAccount(db weave.KVStore, addr weave.Address, ticker string, authority weave.Address) (*Account, error)

	// Account returns the account stored at the given address.
	Account(db weave.ReadOnlyKVStore, addr weave.Address) (*Account, error)

	// Balance returns the amount held by the account at the given address.
	Balance(db weave.ReadOnlyKVStore, addr weave.Address) (uint64, error)

	// Transfer moves amount from src to dst. The authority must be the
	// current authority of src and it must have either signed the
	// transaction or be proven by one of the signers.
	Transfer(ctx weave.Context, db weave.KVStore, src, dst weave.Address, amount uint64, authority weave.Address, signers ...x.Signer) error

	// SetAuthority hands the control of an account from the current
	// authority to next. The current authority must be authorized the
	// same way as for Transfer.
	SetAuthority(ctx weave.Context, db weave.KVStore, account, current, next weave.Address, signers ...x.Signer) error

	// Mint increases the balance of an existing account. It must never be
	// reachable by a user message.
	Mint(db weave.KVStore, addr weave.Address, amount uint64) error

	// MinimumBalance returns the deposit required for a record of the
	// given size to be exempt from rent.
	MinimumBalance(db weave.ReadOnlyKVStore, size int) (uint64, error)

	// IsRentExempt returns true if balance covers the minimum balance for
	// the given size.
	IsRentExempt(db weave.ReadOnlyKVStore, balance uint64, size int) (bool, error)

	// NativeTicker returns the ticker of the asset used for deposits.
	NativeTicker(db weave.ReadOnlyKVStore) (string, error)
}

// NewController returns the ledger controller. Signatures are checked using
// the given authenticator.
func NewController(auth x.Authenticator) Controller {
	return &controller{
		auth:   auth,
		bucket: NewAccountBucket(),
	}
}

type controller struct {
	auth   x.Authenticator
	bucket AccountBucket
}

var _ Controller = (*controller)(nil)

func (c *controller) CreateAccount(db weave.KVStore, addr weave.Address, ticker string, authority weave.Address) (*Account, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "address")
	}
	switch err := c.bucket.Has(db, addr); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "account %s", addr)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	acc := &Account{
		Metadata:  &weave.Metadata{Schema: 1},
		Ticker:    ticker,
		Authority: authority,
	}
	if err := c.bucket.Put(db, addr, acc); err != nil {
		return nil, errors.Wrap(err, "cannot store account")
	}
	return acc, nil
}

func (c *controller) Account(db weave.ReadOnlyKVStore, addr weave.Address) (*Account, error) {
	return c.bucket.Get(db, addr)
}

func (c *controller) Balance(db weave.ReadOnlyKVStore, addr weave.Address) (uint64, error) {
	acc, err := c.bucket.Get(db, addr)
	if err != nil {
		return 0, err
	}
	return acc.Amount, nil
}

func (c *controller) Transfer(ctx weave.Context, db weave.KVStore, src, dst weave.Address, amount uint64, authority weave.Address, signers ...x.Signer) error {
	if src.Equals(dst) {
		return errors.Wrap(errors.ErrInput, "source and destination must differ")
	}
	from, err := c.bucket.Get(db, src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	to, err := c.bucket.Get(db, dst)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if from.Ticker != to.Ticker {
		return errors.Wrapf(errors.ErrType, "cannot transfer %s into %s account", from.Ticker, to.Ticker)
	}
	if err := c.authorize(ctx, from, authority, signers); err != nil {
		return err
	}
	if from.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, requested %d", from.Amount, amount)
	}
	total, err := add(to.Amount, amount)
	if err != nil {
		return err
	}
	from.Amount -= amount
	to.Amount = total

	if err := c.bucket.Put(db, src, from); err != nil {
		return errors.Wrap(err, "cannot store source")
	}
	if err := c.bucket.Put(db, dst, to); err != nil {
		return errors.Wrap(err, "cannot store destination")
	}
	weave.GetLogger(ctx).Debug("ledger transfer",
		"src", src, "dst", dst, "ticker", from.Ticker, "amount", amount)
	return nil
}

func (c *controller) SetAuthority(ctx weave.Context, db weave.KVStore, account, current, next weave.Address, signers ...x.Signer) error {
	if err := next.Validate(); err != nil {
		return errors.Wrap(err, "new authority")
	}
	acc, err := c.bucket.Get(db, account)
	if err != nil {
		return err
	}
	if err := c.authorize(ctx, acc, current, signers); err != nil {
		return err
	}
	acc.Authority = next
	if err := c.bucket.Put(db, account, acc); err != nil {
		return errors.Wrap(err, "cannot store account")
	}
	weave.GetLogger(ctx).Debug("ledger authority changed",
		"account", account, "from", current, "to", next)
	return nil
}

// authorize returns an error unless the authority controls the account and
// its control is proven for this transaction.
func (c *controller) authorize(ctx weave.Context, acc *Account, authority weave.Address, signers []x.Signer) error {
	if !acc.Authority.Equals(authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not the account authority", authority)
	}
	if !x.IsAuthorized(ctx, c.auth, authority, signers...) {
		return errors.Wrapf(errors.ErrUnauthorized, "missing signature of %s", authority)
	}
	return nil
}

func (c *controller) Mint(db weave.KVStore, addr weave.Address, amount uint64) error {
	acc, err := c.bucket.Get(db, addr)
	if err != nil {
		return err
	}
	total, err := add(acc.Amount, amount)
	if err != nil {
		return err
	}
	acc.Amount = total
	return c.bucket.Put(db, addr, acc)
}

func (c *controller) MinimumBalance(db weave.ReadOnlyKVStore, size int) (uint64, error) {
	conf, err := loadConf(db)
	if err != nil {
		return 0, err
	}
	return conf.MinimumBalance(size)
}

func (c *controller) IsRentExempt(db weave.ReadOnlyKVStore, balance uint64, size int) (bool, error) {
	min, err := c.MinimumBalance(db, size)
	if err != nil {
		return false, err
	}
	return balance >= min, nil
}

func (c *controller) NativeTicker(db weave.ReadOnlyKVStore) (string, error) {
	conf, err := loadConf(db)
	if err != nil {
		return "", err
	}
	return conf.NativeTicker, nil
}
