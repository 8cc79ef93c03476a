package escrow

import (
	weave "github.com/iov-one/weave-escrow"
)

// Program is the name the escrow extension executes under. It is also the
// prefix of all escrow message paths.
const Program = "escrow"

// authoritySeed is the only seed of the derived authority. All escrows share
// a single authority.
var authoritySeed = []byte("escrow")

// Authority returns the derived address that controls the holding accounts
// and record slots of all escrows, together with the signer proving it.
// The signer is accepted by the ledger only while the escrow program is
// executing.
func Authority() (weave.Address, weave.DerivedSigner, error) {
	addr, bump, err := weave.DeriveAddress(Program, authoritySeed)
	if err != nil {
		return nil, weave.DerivedSigner{}, err
	}
	signer := weave.DerivedSigner{
		Program: Program,
		Seeds:   [][]byte{authoritySeed},
		Bump:    bump,
	}
	return addr, signer, nil
}
