/*
Package ledger implements the asset-transfer primitive used by the escrow
extension.

Every account keeps the balance of exactly one asset (identified by its
ticker) and names an authority, the only identity that may move funds out
of it or hand its control to someone else. An authority can be proven
either by a transaction signature or, for derived addresses, by a
weave.DerivedSigner issued by the owning program.

The ledger also keeps the rent configuration. A record is exempt from rent
when the deposit backing it covers MinimumBalance for its size.
*/
package ledger
