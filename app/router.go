package app

import (
	"fmt"
	"regexp"
	"strings"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

var isPath = regexp.MustCompile(`^[a-zA-Z0-9_\-]+(/[a-zA-Z0-9_\-]+)*$`).MatchString

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Before a handler is called, the name of the extension owning the message
// path is set as the executing program on the context. Derived addresses of
// that extension can be used only by its own handlers.
type Router struct {
	routes map[string]weave.Handler
}

var _ weave.Registry = (*Router)(nil)
var _ weave.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]weave.Handler, 10),
	}
}

// Handle adds a new handler for the given path. It panics if the path is
// invalid or a handler was already registered for it.
func (r *Router) Handle(path string, h weave.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	h, path, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(weave.WithProgram(ctx, Program(path)), store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	h, path, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(weave.WithProgram(ctx, Program(path)), store, tx)
}

func (r *Router) handler(tx weave.Tx) (weave.Handler, string, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, "", errors.Wrap(err, "cannot load message")
	}
	if msg == nil {
		return nil, "", errors.Wrap(errors.ErrMsg, "no message")
	}
	path := msg.Path()
	h, ok := r.routes[path]
	if !ok {
		return nil, "", errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", path)
	}
	return h, path, nil
}

// Program returns the name of the extension owning the message path, that
// is everything before the first slash.
func Program(path string) string {
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
