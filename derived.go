package weave

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
	"github.com/iov-one/weave-escrow/errors"
)

const (
	// MaxSeeds is the maximum number of seeds that can be used to create a
	// derived address.
	MaxSeeds = 16

	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32

	// derivedType is the condition type used by all derived addresses.
	derivedType = "derived"

	derivedMarker = "DerivedAddress"
)

// CreateDerivedAddress returns the address owned by the given program for
// the given seeds and bump.
//
// The key behind a derived address is guaranteed not to be a valid ed25519
// public key, so nobody can hold a private key for it. Such an address can
// only authorize an action when the owning program provides a matching
// DerivedSigner. ErrInput is returned when the seeds and bump produce a
// point on the curve.
func CreateDerivedAddress(program string, bump uint8, seeds ...[]byte) (Address, error) {
	key, err := derivedKey(program, bump, seeds)
	if err != nil {
		return nil, err
	}
	if onCurve(key) {
		return nil, errors.Wrap(errors.ErrInput, "derived key on curve")
	}
	return NewCondition(program, derivedType, key).Address(), nil
}

// DeriveAddress finds the first valid derived address for the given program
// and seeds, starting with bump 255 and counting down. It returns the address
// together with the bump that was used, which can later be used to produce a
// DerivedSigner without searching again.
func DeriveAddress(program string, seeds ...[]byte) (Address, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		key, err := derivedKey(program, uint8(bump), seeds)
		if err != nil {
			return nil, 0, err
		}
		if !onCurve(key) {
			return NewCondition(program, derivedType, key).Address(), uint8(bump), nil
		}
	}
	return nil, 0, errors.Wrap(errors.ErrInput, "unable to find a valid bump")
}

func derivedKey(program string, bump uint8, seeds [][]byte) ([]byte, error) {
	if len(seeds) > MaxSeeds {
		return nil, errors.Wrapf(errors.ErrInput, "too many seeds: %d", len(seeds))
	}
	h := sha256.New()
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return nil, errors.Wrapf(errors.ErrInput, "seed %d too long: %d", i, len(s))
		}
		_, _ = h.Write(s)
	}
	_, _ = h.Write([]byte{bump})
	_, _ = h.Write([]byte(program))
	_, _ = h.Write([]byte(derivedMarker))
	return h.Sum(nil), nil
}

func onCurve(key []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(key)
	return err == nil
}

// DerivedSigner is the proof that a program wants to act on behalf of one of
// its derived addresses. It carries the seeds and the bump so that the
// address can be recomputed and compared by whoever checks the
// authorization.
type DerivedSigner struct {
	Program string
	Seeds   [][]byte
	Bump    uint8
}

// Address recomputes the derived address this signer stands for.
func (s DerivedSigner) Address() (Address, error) {
	return CreateDerivedAddress(s.Program, s.Bump, s.Seeds...)
}

// Signs returns true if this signer proves control over the given address
// and was issued by the program currently executing in the context.
func (s DerivedSigner) Signs(ctx Context, addr Address) bool {
	if program, ok := GetProgram(ctx); !ok || program != s.Program {
		return false
	}
	got, err := s.Address()
	if err != nil {
		return false
	}
	return got.Equals(addr)
}
