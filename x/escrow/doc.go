/*
Package escrow implements a two party exchange of assets held in the ledger.

The initializer opens an escrow by handing the control of a holding account
to the escrow authority, an address derived from the "escrow" program name.
The record slot must sign the opening transaction as well.
Nobody holds a private key for that address. Only the escrow handlers can
move funds out of it, by presenting a weave.DerivedSigner.

A taker completes the escrow in a single transaction. The expected amount
is paid from the taker's source account to the initializer's payout account
and the whole holding balance is released to the taker's destination. The
escrow record is then marked as settled and the storage deposit locked in
its slot is returned to the initializer.

The router must execute escrow messages with the program set to Program,
otherwise the derived signer is rejected by the ledger.
*/
package escrow
