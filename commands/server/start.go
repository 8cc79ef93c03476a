package server

import (
	"flag"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind  = "bind"
	flagDebug = "debug"
)

func parseFlags(args []string) (string, bool, error) {
	var addr string
	var debug bool

	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&addr, flagBind, "tcp://localhost:26658", "address server listens on")
	startFlags.BoolVar(&debug, flagDebug, false, "call stack returned on error")
	if err := startFlags.Parse(args); err != nil {
		return "", false, errors.Wrap(errors.ErrInput, err.Error())
	}
	return addr, debug, nil
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

// StartCmd initializes the application and serves it over an ABCI socket
// until the process is signaled to stop.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	svr, err := startServer(gen, logger, home, args)
	if err != nil {
		return err
	}

	cmn.TrapSignal(logger, func() {
		if err := svr.Stop(); err != nil {
			logger.Error("cannot stop server", "err", err)
		}
	})
	// TrapSignal exits the process once the server is stopped.
	select {}
}

// startServer builds the application and returns its running ABCI server.
func startServer(gen AppGenerator, logger log.Logger, home string, args []string) (cmn.Service, error) {
	addr, debug, err := parseFlags(args)
	if err != nil {
		return nil, err
	}

	app, err := gen(home, logger, debug)
	if err != nil {
		return nil, err
	}

	logger.Info("Starting ABCI app", "bind", addr)

	svr, err := server.NewServer(addr, "socket", app)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create listener")
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return nil, errors.Wrap(err, "cannot start server")
	}
	return svr, nil
}
