package ledger

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/gconf"
)

const optKey = "ledger"

// GenesisAccount is used to parse the json from genesis file
// use weave.Address, so address in hex, not base64
type GenesisAccount struct {
	Address   weave.Address `json:"address"`
	Ticker    string        `json:"ticker"`
	Authority weave.Address `json:"authority"`
	Amount    uint64        `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis stores the ledger configuration and the initial accounts.
// An account without an authority is controlled by its own address.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, gconfPackage, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	// Genesis runs before any signature could be verified, so no
	// authenticator is needed.
	ctrl := NewController(nil)
	for i, a := range accts {
		authority := a.Authority
		if len(authority) == 0 {
			authority = a.Address
		}
		if _, err := ctrl.CreateAccount(db, a.Address, a.Ticker, authority); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if a.Amount == 0 {
			continue
		}
		if err := ctrl.Mint(db, a.Address, a.Amount); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
