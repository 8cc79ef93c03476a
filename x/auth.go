package x

import (
	weave "github.com/iov-one/weave-escrow"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/sigs for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled
	GetConditions(weave.Context) []weave.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(weave.Context, weave.Address) bool
}

// Signer proves control over an address without a signature being attached
// to the transaction. weave.DerivedSigner is the only implementation used by
// the extensions, allowing a program to act for its derived addresses.
type Signer interface {
	Signs(weave.Context, weave.Address) bool
}

var _ Signer = weave.DerivedSigner{}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators
func (m MultiAuth) GetConditions(ctx weave.Context) []weave.Condition {
	var res []weave.Condition
	for _, impl := range m.impls {
		if add := impl.GetConditions(ctx); len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// IsAuthorized returns true if the given address signed the transaction, or
// if any of the provided signers proves control over it.
func IsAuthorized(ctx weave.Context, auth Authenticator, addr weave.Address, signers ...Signer) bool {
	if len(addr) == 0 {
		return false
	}
	if auth.HasAddress(ctx, addr) {
		return true
	}
	for _, s := range signers {
		if s != nil && s.Signs(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first permission if any, otherwise nil
func MainSigner(ctx weave.Context, auth Authenticator) weave.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}
