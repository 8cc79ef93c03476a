/*
Package weave defines interfaces used throughout the app, such as: storage,
transactions, handlers etc. It also contains helpers to work with context,
authentication, derived addresses and abci.

Extensions live under x/. The ledger extension keeps token accounts and
moves funds between them, the escrow extension locks a holding account under
an address derived from the escrow program and settles the trade with a
taker in a single transaction.
*/
package weave
