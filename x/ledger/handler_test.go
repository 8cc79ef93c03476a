package ledger

import (
	"context"
	"testing"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/gconf"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/iov-one/weave-escrow/weavetest/assert"
)

// router is a minimal weave.Registry used to collect the handlers.
type router map[string]weave.Handler

func (r router) Handle(path string, h weave.Handler) {
	r[path] = h
}

func TestHandlers(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()
	fresh := weavetest.NewCondition()
	meta := &weave.Metadata{Schema: 1}

	aliceAcc := alice.Address()
	bobAcc := bob.Address()

	cases := map[string]struct {
		signers        []weave.Condition
		msg            weave.Msg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		wantBalances   map[string]uint64
		wantAuthority  weave.Address
	}{
		"transfer": {
			signers:      []weave.Condition{alice},
			msg:          &TransferMsg{Metadata: meta, Source: aliceAcc, Destination: bobAcc, Amount: 25},
			wantBalances: map[string]uint64{string(aliceAcc): 75, string(bobAcc): 25},
		},
		"transfer without signature": {
			signers:        []weave.Condition{bob},
			msg:            &TransferMsg{Metadata: meta, Source: aliceAcc, Destination: bobAcc, Amount: 25},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
			wantBalances:   map[string]uint64{string(aliceAcc): 100, string(bobAcc): 0},
		},
		"transfer of nothing": {
			signers:        []weave.Condition{alice},
			msg:            &TransferMsg{Metadata: meta, Source: aliceAcc, Destination: bobAcc},
			wantCheckErr:   errors.ErrAmount,
			wantDeliverErr: errors.ErrAmount,
		},
		"transfer above balance": {
			signers:        []weave.Condition{alice},
			msg:            &TransferMsg{Metadata: meta, Source: aliceAcc, Destination: bobAcc, Amount: 101},
			wantDeliverErr: errors.ErrInsufficientAmount,
			wantBalances:   map[string]uint64{string(aliceAcc): 100, string(bobAcc): 0},
		},
		"create account": {
			signers:      []weave.Condition{fresh},
			msg:          &CreateAccountMsg{Metadata: meta, Address: fresh.Address(), Ticker: "IOV", Authority: bobAcc},
			wantBalances: map[string]uint64{string(fresh.Address()): 0},
		},
		"create account requires address signature": {
			signers:        []weave.Condition{bob},
			msg:            &CreateAccountMsg{Metadata: meta, Address: fresh.Address(), Ticker: "IOV", Authority: bobAcc},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"create existing account": {
			signers:        []weave.Condition{alice},
			msg:            &CreateAccountMsg{Metadata: meta, Address: aliceAcc, Ticker: "IOV", Authority: aliceAcc},
			wantDeliverErr: errors.ErrDuplicate,
		},
		"set authority": {
			signers:       []weave.Condition{alice},
			msg:           &SetAuthorityMsg{Metadata: meta, Account: aliceAcc, NewAuthority: bobAcc},
			wantAuthority: bobAcc,
		},
		"set authority without signature": {
			signers:        []weave.Condition{bob},
			msg:            &SetAuthorityMsg{Metadata: meta, Account: aliceAcc, NewAuthority: bobAcc},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
			wantAuthority:  aliceAcc,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			saveTestConfig(t, db)
			auth := &weavetest.Auth{Signers: tc.signers}
			ctrl := NewController(auth)
			mustCreate(t, ctrl, db, aliceAcc, "IOV", aliceAcc, 100)
			mustCreate(t, ctrl, db, bobAcc, "IOV", bobAcc, 0)

			r := make(router)
			RegisterRoutes(r, auth, ctrl)
			h, ok := r[tc.msg.Path()]
			if !ok {
				t.Fatalf("no handler for %q", tc.msg.Path())
			}

			ctx := context.Background()
			tx := &weavetest.Tx{Msg: tc.msg}

			cache := db.CacheWrap()
			if _, err := h.Check(ctx, cache, tx); !tc.wantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			cache.Discard()

			if _, err := h.Deliver(ctx, db, tx); !tc.wantDeliverErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			for addr, want := range tc.wantBalances {
				got, err := ctrl.Balance(db, weave.Address(addr))
				assert.Nil(t, err)
				assert.Equal(t, want, got)
			}
			if tc.wantAuthority != nil {
				acc, err := ctrl.Account(db, aliceAcc)
				assert.Nil(t, err)
				assert.Equal(t, tc.wantAuthority, acc.Authority)
			}
		})
	}
}

func TestUpdateConfiguration(t *testing.T) {
	db := store.MemStore()
	owner := weavetest.NewCondition()
	conf := Configuration{
		Metadata:        &weave.Metadata{Schema: 1},
		Owner:           owner.Address(),
		NativeTicker:    "IOV",
		RentPerByteYear: 2,
		ExemptionYears:  2,
	}
	assert.Nil(t, gconf.Save(db, gconfPackage, &conf))

	auth := &weavetest.Auth{Signer: owner}
	r := make(router)
	RegisterRoutes(r, auth, NewController(auth))

	msg := &UpdateConfigurationMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Patch:    &Configuration{RentPerByteYear: 10},
	}
	_, err := r[msg.Path()].Deliver(context.Background(), db, &weavetest.Tx{Msg: msg})
	assert.Nil(t, err)

	got, err := loadConf(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(10), got.RentPerByteYear)
	assert.Equal(t, uint64(2), got.ExemptionYears)
	assert.Equal(t, "IOV", got.NativeTicker)
}
