package escrow

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
)

// BucketName is where the escrows are stored.
const BucketName = "esc"

var _ orm.Model = (*Escrow)(nil)

// Validate ensures the escrow is valid.
func (e *Escrow) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", e.Metadata.Validate())
	errs = errors.AppendField(errs, "Initializer", e.Initializer.Validate())
	errs = errors.AppendField(errs, "HoldingAccount", e.HoldingAccount.Validate())
	errs = errors.AppendField(errs, "PayoutAccount", e.PayoutAccount.Validate())
	if e.ExpectedAmount == 0 {
		errs = errors.Append(errs, errors.Field("ExpectedAmount", errors.ErrAmount, "must be positive"))
	}
	if e.State != StateOpen && e.State != StateSettled {
		errs = errors.Append(errs, errors.Field("State", errors.ErrState, "unknown state %d", e.State))
	}
	return errs
}

// Bucket stores escrows under the address of their record slot.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket returns a bucket for the escrow records.
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Escrow{}),
	}
}

// Get loads the escrow stored in the given slot.
func (b Bucket) Get(db weave.ReadOnlyKVStore, slot weave.Address) (*Escrow, error) {
	var e Escrow
	if err := b.One(db, slot, &e); err != nil {
		return nil, errors.Wrapf(err, "escrow %s", slot)
	}
	return &e, nil
}
