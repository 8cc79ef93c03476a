// Package server contains the commands shared by the application daemons:
// writing the genesis app_state, validating it and serving the
// application over ABCI.
package server
