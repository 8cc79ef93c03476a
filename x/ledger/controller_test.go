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
	"github.com/iov-one/weave-escrow/x"
)

func TestTransfer(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()

	derived, bump, err := weave.DeriveAddress("test", []byte("vault"))
	assert.Nil(t, err)
	proof := weave.DerivedSigner{Program: "test", Seeds: [][]byte{[]byte("vault")}, Bump: bump}

	aliceIOV := weavetest.NewCondition().Address()
	bobIOV := weavetest.NewCondition().Address()
	aliceBTC := weavetest.NewCondition().Address()
	vault := weavetest.NewCondition().Address()

	cases := map[string]struct {
		signer    weave.Condition
		program   string
		src       weave.Address
		dst       weave.Address
		amount    uint64
		authority weave.Address
		proofs    []x.Signer
		wantErr   *errors.Error
		wantSrc   uint64
		wantDst   uint64
	}{
		"signed transfer": {
			signer:    alice,
			src:       aliceIOV,
			dst:       bobIOV,
			amount:    30,
			authority: alice.Address(),
			wantSrc:   70,
			wantDst:   30,
		},
		"whole balance": {
			signer:    alice,
			src:       aliceIOV,
			dst:       bobIOV,
			amount:    100,
			authority: alice.Address(),
			wantSrc:   0,
			wantDst:   100,
		},
		"zero amount": {
			signer:    alice,
			src:       aliceIOV,
			dst:       bobIOV,
			amount:    0,
			authority: alice.Address(),
			wantSrc:   100,
			wantDst:   0,
		},
		"insufficient funds": {
			signer:    alice,
			src:       aliceIOV,
			dst:       bobIOV,
			amount:    101,
			authority: alice.Address(),
			wantErr:   errors.ErrInsufficientAmount,
			wantSrc:   100,
		},
		"missing signature": {
			signer:    bob,
			src:       aliceIOV,
			dst:       bobIOV,
			amount:    1,
			authority: alice.Address(),
			wantErr:   errors.ErrUnauthorized,
			wantSrc:   100,
		},
		"not the account authority": {
			signer:    bob,
			src:       aliceIOV,
			dst:       bobIOV,
			amount:    1,
			authority: bob.Address(),
			wantErr:   errors.ErrUnauthorized,
			wantSrc:   100,
		},
		"ticker mismatch": {
			signer:    alice,
			src:       aliceIOV,
			dst:       aliceBTC,
			amount:    1,
			authority: alice.Address(),
			wantErr:   errors.ErrType,
			wantSrc:   100,
		},
		"missing destination": {
			signer:    alice,
			src:       aliceIOV,
			dst:       weavetest.NewCondition().Address(),
			amount:    1,
			authority: alice.Address(),
			wantErr:   errors.ErrNotFound,
			wantSrc:   100,
		},
		"derived authority with proof": {
			program:   "test",
			src:       vault,
			dst:       bobIOV,
			amount:    40,
			authority: derived,
			proofs:    []x.Signer{proof},
			wantSrc:   60,
			wantDst:   40,
		},
		"derived authority without proof": {
			program:   "test",
			src:       vault,
			dst:       bobIOV,
			amount:    40,
			authority: derived,
			wantErr:   errors.ErrUnauthorized,
			wantSrc:   100,
		},
		"derived proof used by another program": {
			program:   "other",
			src:       vault,
			dst:       bobIOV,
			amount:    40,
			authority: derived,
			proofs:    []x.Signer{proof},
			wantErr:   errors.ErrUnauthorized,
			wantSrc:   100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			saveTestConfig(t, db)
			ctrl := NewController(&weavetest.Auth{Signer: tc.signer})

			mustCreate(t, ctrl, db, aliceIOV, "IOV", alice.Address(), 100)
			mustCreate(t, ctrl, db, bobIOV, "IOV", bob.Address(), 0)
			mustCreate(t, ctrl, db, aliceBTC, "BTC", alice.Address(), 0)
			mustCreate(t, ctrl, db, vault, "IOV", derived, 100)

			ctx := context.Background()
			if tc.program != "" {
				ctx = weave.WithProgram(ctx, tc.program)
			}
			err := ctrl.Transfer(ctx, db, tc.src, tc.dst, tc.amount, tc.authority, tc.proofs...)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			got, err := ctrl.Balance(db, tc.src)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantSrc, got)
			if tc.wantErr == nil {
				got, err := ctrl.Balance(db, tc.dst)
				assert.Nil(t, err)
				assert.Equal(t, tc.wantDst, got)
			}
		})
	}
}

func TestSetAuthority(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()
	acc := weavetest.NewCondition().Address()

	db := store.MemStore()
	saveTestConfig(t, db)
	ctrl := NewController(&weavetest.Auth{Signer: alice})
	mustCreate(t, ctrl, db, acc, "IOV", alice.Address(), 10)
	ctx := context.Background()

	// Only the current authority can hand over the control.
	err := ctrl.SetAuthority(ctx, db, acc, bob.Address(), bob.Address())
	if !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want unauthorized, got %+v", err)
	}

	assert.Nil(t, ctrl.SetAuthority(ctx, db, acc, alice.Address(), bob.Address()))
	a, err := ctrl.Account(db, acc)
	assert.Nil(t, err)
	assert.Equal(t, bob.Address(), a.Authority)
	assert.Equal(t, uint64(10), a.Amount)

	// Alice lost the control.
	err = ctrl.SetAuthority(ctx, db, acc, alice.Address(), alice.Address())
	if !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want unauthorized, got %+v", err)
	}
	err = ctrl.Transfer(ctx, db, acc, weavetest.NewCondition().Address(), 1, alice.Address())
	if !errors.ErrNotFound.Is(err) && !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want failure, got %+v", err)
	}

	if err := ctrl.SetAuthority(ctx, db, weavetest.NewCondition().Address(), alice.Address(), bob.Address()); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}

func TestCreateAccount(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(&weavetest.Auth{})
	addr := weavetest.NewCondition().Address()
	owner := weavetest.NewCondition().Address()

	acc, err := ctrl.CreateAccount(db, addr, "IOV", owner)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), acc.Amount)

	if _, err := ctrl.CreateAccount(db, addr, "IOV", owner); !errors.ErrDuplicate.Is(err) {
		t.Fatalf("want duplicate, got %+v", err)
	}
	if _, err := ctrl.CreateAccount(db, weavetest.NewCondition().Address(), "iov", owner); !errors.ErrInput.Is(err) {
		t.Fatalf("want invalid ticker, got %+v", err)
	}
	if _, err := ctrl.CreateAccount(db, weavetest.NewCondition().Address(), "IOV", nil); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want missing authority, got %+v", err)
	}
}

func TestMintOverflow(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(&weavetest.Auth{})
	addr := weavetest.NewCondition().Address()
	mustCreate(t, ctrl, db, addr, "IOV", addr, 1)

	if err := ctrl.Mint(db, addr, ^uint64(0)); !errors.ErrOverflow.Is(err) {
		t.Fatalf("want overflow, got %+v", err)
	}
	b, err := ctrl.Balance(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), b)
}

func TestRentExemption(t *testing.T) {
	db := store.MemStore()
	saveTestConfig(t, db)
	ctrl := NewController(&weavetest.Auth{})

	// (128 + 72) bytes * 2 per byte year * 2 years
	min, err := ctrl.MinimumBalance(db, 72)
	assert.Nil(t, err)
	assert.Equal(t, uint64(800), min)

	ok, err := ctrl.IsRentExempt(db, 800, 72)
	assert.Nil(t, err)
	assert.Equal(t, true, ok)

	ok, err = ctrl.IsRentExempt(db, 799, 72)
	assert.Nil(t, err)
	assert.Equal(t, false, ok)

	ticker, err := ctrl.NativeTicker(db)
	assert.Nil(t, err)
	assert.Equal(t, "IOV", ticker)

	// Without configuration nothing can be computed.
	if _, err := ctrl.MinimumBalance(store.MemStore(), 1); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}

func TestMinimumBalanceOverflow(t *testing.T) {
	conf := Configuration{RentPerByteYear: 1 << 40, ExemptionYears: 1 << 30}
	if _, err := conf.MinimumBalance(10); !errors.ErrOverflow.Is(err) {
		t.Fatalf("want overflow, got %+v", err)
	}
}

func saveTestConfig(t testing.TB, db gconf.Store) {
	t.Helper()
	conf := Configuration{
		Metadata:        &weave.Metadata{Schema: 1},
		Owner:           weavetest.NewCondition().Address(),
		NativeTicker:    "IOV",
		RentPerByteYear: 2,
		ExemptionYears:  2,
	}
	assert.Nil(t, gconf.Save(db, gconfPackage, &conf))
}

func mustCreate(t testing.TB, ctrl Controller, db weave.KVStore, addr weave.Address, ticker string, authority weave.Address, amount uint64) {
	t.Helper()
	if _, err := ctrl.CreateAccount(db, addr, ticker, authority); err != nil {
		t.Fatalf("cannot create account: %s", err)
	}
	if amount > 0 {
		if err := ctrl.Mint(db, addr, amount); err != nil {
			t.Fatalf("cannot mint: %s", err)
		}
	}
}
