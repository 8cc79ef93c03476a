/*
Package sigs provides basic authentication
middleware to verify the signatures on the transaction,
and maintain nonces for replay protection.

Every signature is done over the transaction sign bytes prefixed with the
signature version, the chain ID and the signer sequence (see
BuildSignBytes). Each successful verification increments the sequence of
the signer, so the same signature cannot be used twice.
*/
package sigs
