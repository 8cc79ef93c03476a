package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/crypto"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/x/ledger"
	"github.com/prometheus/client_golang/prometheus"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

var isTicker = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode.
//
// Arguments are an optional native ticker (default IOV) and an optional hex
// address of the rich account. Without an address a new key is generated
// and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := "IOV"
	if len(args) > 0 {
		ticker = args[0]
		if !isTicker(ticker) {
			return nil, errors.Wrapf(errors.ErrInput, "invalid ticker %s", ticker)
		}
	}

	var addr weave.Address
	if len(args) > 1 {
		var err error
		if addr, err = weave.ParseAddress(args[1]); err != nil {
			return nil, err
		}
	} else {
		var keys string
		var err error
		if addr, keys, err = GenerateCoinKey(); err != nil {
			return nil, err
		}
		fmt.Println(keys)
	}

	opts := map[string]interface{}{
		"conf": map[string]interface{}{
			"ledger": ledger.Configuration{
				Metadata:        &weave.Metadata{Schema: 1},
				Owner:           addr,
				NativeTicker:    ticker,
				RentPerByteYear: 1,
				ExemptionYears:  2,
			},
		},
		"ledger": []ledger.GenesisAccount{
			{Address: addr, Ticker: ticker, Amount: 123456789},
		},
	}
	raw, err := json.MarshalIndent(opts, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "escrow.db")
	}

	stack := Stack(prometheus.DefaultRegisterer)
	application, err := Application("escrow", stack, TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(logger)
	return application, nil
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a public key,
// along with a json representation of the keys.
// You can give coins to this address and
// import the keys in a client to use them
func GenerateCoinKey() (weave.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return addr, string(keys), nil
}
