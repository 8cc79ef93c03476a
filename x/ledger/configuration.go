package ledger

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/gconf"
)

// gconfPackage is the name the configuration is stored under.
const gconfPackage = "ledger"

// accountStorageOverhead is the number of bytes every stored record is
// charged for in addition to its serialized size.
const accountStorageOverhead = 128

var _ gconf.OwnedConfig = (*Configuration)(nil)

// Validate returns an error if the configuration cannot be used.
func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if !isTicker(c.NativeTicker) {
		errs = errors.Append(errs, errors.Field("NativeTicker", errors.ErrInput, "invalid ticker"))
	}
	return errs
}

// GetOwner returns the address allowed to update the configuration.
func (c *Configuration) GetOwner() weave.Address {
	return c.Owner
}

// MinimumBalance returns the deposit that makes a record of the given size
// exempt from rent collection.
func (c *Configuration) MinimumBalance(size int) (uint64, error) {
	if size < 0 {
		return 0, errors.Wrap(errors.ErrInput, "negative size")
	}
	n := uint64(size) + accountStorageOverhead
	perByte, err := mul(c.RentPerByteYear, c.ExemptionYears)
	if err != nil {
		return 0, err
	}
	return mul(n, perByte)
}

func mul(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	if c/b != a {
		return 0, errors.Wrap(errors.ErrOverflow, "multiplication")
	}
	return c, nil
}

func add(a, b uint64) (uint64, error) {
	c := a + b
	if c < a {
		return 0, errors.Wrap(errors.ErrOverflow, "addition")
	}
	return c, nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, gconfPackage, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
