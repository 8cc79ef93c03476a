package ledger

import (
	"encoding/json"
	"strings"
	"testing"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/iov-one/weave-escrow/weavetest/assert"
)

func TestGenesis(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	wallet := weavetest.NewCondition().Address()
	holding := weavetest.NewCondition().Address()

	const confTmpl = `"conf": {"ledger": {"metadata": {"schema": 1}, "owner": "%OWNER%", "native_ticker": "IOV", "rent_per_byte_year": 3, "exemption_years": 2}}`
	conf := strings.Replace(confTmpl, "%OWNER%", owner.String(), 1)

	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
	}{
		"configuration and accounts": {
			genesis: `{` + conf + `, "ledger": [
				{"address": "` + wallet.String() + `", "ticker": "IOV", "amount": 500},
				{"address": "` + holding.String() + `", "ticker": "BTC", "authority": "` + wallet.String() + `", "amount": 7}
			]}`,
		},
		"missing configuration": {
			genesis: `{"ledger": []}`,
			wantErr: errors.ErrNotFound,
		},
		"duplicated account": {
			genesis: `{` + conf + `, "ledger": [
				{"address": "` + wallet.String() + `", "ticker": "IOV"},
				{"address": "` + wallet.String() + `", "ticker": "IOV"}
			]}`,
			wantErr: errors.ErrDuplicate,
		},
		"invalid ticker": {
			genesis: `{` + conf + `, "ledger": [
				{"address": "` + wallet.String() + `", "ticker": "money"}
			]}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts weave.Options
			if err := json.Unmarshal([]byte(tc.genesis), &opts); err != nil {
				t.Fatalf("cannot parse genesis: %s", err)
			}
			db := store.MemStore()
			if err := (Initializer{}).FromGenesis(opts, db); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}

			ctrl := NewController(&weavetest.Auth{})
			w, err := ctrl.Account(db, wallet)
			assert.Nil(t, err)
			assert.Equal(t, uint64(500), w.Amount)
			assert.Equal(t, wallet, w.Authority)

			h, err := ctrl.Account(db, holding)
			assert.Nil(t, err)
			assert.Equal(t, "BTC", h.Ticker)
			assert.Equal(t, wallet, h.Authority)
			assert.Equal(t, uint64(7), h.Amount)

			min, err := ctrl.MinimumBalance(db, 0)
			assert.Nil(t, err)
			assert.Equal(t, uint64(128*3*2), min)
		})
	}
}
