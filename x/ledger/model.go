package ledger

import (
	"regexp"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
)

// BucketName is where the accounts are stored.
const BucketName = "acct"

var isTicker = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

var _ orm.Model = (*Account)(nil)

// Validate returns an error if the account is not consistent.
func (a *Account) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", a.Metadata.Validate())
	if !isTicker(a.Ticker) {
		errs = errors.Append(errs, errors.Field("Ticker", errors.ErrInput, "invalid ticker"))
	}
	errs = errors.AppendField(errs, "Authority", a.Authority.Validate())
	return errs
}

// AccountBucket stores accounts under their address.
type AccountBucket struct {
	orm.ModelBucket
}

// NewAccountBucket returns a bucket for the ledger accounts.
func NewAccountBucket() AccountBucket {
	return AccountBucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Account{}),
	}
}

// Get loads the account stored at the given address. ErrNotFound is
// returned if there is none.
func (b AccountBucket) Get(db weave.ReadOnlyKVStore, addr weave.Address) (*Account, error) {
	var acc Account
	if err := b.One(db, addr, &acc); err != nil {
		return nil, errors.Wrapf(err, "account %s", addr)
	}
	return &acc, nil
}
