/*
Package app contains the building blocks of an ABCI application: the
router that dispatches messages to extension handlers, decorator chaining,
and the StoreApp/BaseApp pair implementing abci.Application on top of a
weave.CommitKVStore.
*/
package app
