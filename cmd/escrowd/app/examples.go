package app

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/commands"
	"github.com/iov-one/weave-escrow/crypto"
	"github.com/iov-one/weave-escrow/x/escrow"
	"github.com/iov-one/weave-escrow/x/ledger"
	"github.com/iov-one/weave-escrow/x/sigs"
)

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	priv := crypto.GenPrivKeyEd25519()
	pub := priv.PublicKey()
	user := &sigs.UserData{
		Metadata: &weave.Metadata{Schema: 1},
		Pubkey:   pub,
		Sequence: 17,
	}

	initializer := pub.Address()
	holding := weave.NewAddress([]byte("holding"))
	payout := weave.NewAddress([]byte("payout"))
	slot := weave.NewAddress([]byte("slot"))
	authority, _, err := escrow.Authority()
	if err != nil {
		panic(err)
	}

	acct := &ledger.Account{
		Metadata:  &weave.Metadata{Schema: 1},
		Ticker:    "IOV",
		Authority: initializer,
		Amount:    5000,
	}
	initMsg := &escrow.InitEscrowMsg{
		Metadata:       &weave.Metadata{Schema: 1},
		Initializer:    initializer,
		HoldingAccount: holding,
		PayoutAccount:  payout,
		EscrowRecord:   slot,
		Deposit:        1000,
		ExpectedAmount: 50,
	}
	record := &escrow.Escrow{
		Metadata:       &weave.Metadata{Schema: 1},
		Initializer:    initializer,
		HoldingAccount: holding,
		PayoutAccount:  payout,
		ExpectedAmount: 50,
		State:          escrow.StateOpen,
		Deposit:        1000,
	}

	taker := weave.NewAddress([]byte("taker"))
	exchangeMsg := &escrow.ExchangeMsg{
		Metadata:         &weave.Metadata{Schema: 1},
		Taker:            taker,
		TakerSource:      weave.NewAddress([]byte("taker source")),
		TakerDestination: weave.NewAddress([]byte("taker destination")),
		HoldingAccount:   holding,
		Initializer:      initializer,
		PayoutAccount:    payout,
		EscrowRecord:     slot,
		Authority:        authority,
		CounterAmount:    50,
	}

	unsigned := Tx{InitEscrowMsg: initMsg}
	tx := unsigned
	sig, err := sigs.SignTx(priv, &tx, "test-123", 17)
	if err != nil {
		panic(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}

	return []commands.Example{
		{Filename: "user", Obj: user},
		{Filename: "account", Obj: acct},
		{Filename: "escrow", Obj: record},
		{Filename: "init_escrow_msg", Obj: initMsg},
		{Filename: "exchange_msg", Obj: exchangeMsg},
		{Filename: "unsigned_tx", Obj: &unsigned},
		{Filename: "signed_tx", Obj: &tx},
	}
}
