package utils

import (
	"context"
	"testing"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()
	m := NewMetrics(prometheus.NewRegistry())

	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "escrow/init"}}
	ok := &weavetest.Handler{}
	fail := &weavetest.Handler{CheckErr: errors.ErrUnauthorized, DeliverErr: errors.ErrUnauthorized}

	_, _ = m.Check(ctx, db, tx, ok)
	_, _ = m.Deliver(ctx, db, tx, ok)
	_, _ = m.Deliver(ctx, db, tx, ok)
	_, err := m.Deliver(ctx, db, tx, fail)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.txs.WithLabelValues("check", "escrow/init", "success")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.txs.WithLabelValues("deliver", "escrow/init", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.txs.WithLabelValues("deliver", "escrow/init", "failure")))
}

func TestMetricsSharedRegistration(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()
	reg := prometheus.NewRegistry()
	first := NewMetrics(reg)
	second := NewMetrics(reg)

	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "escrow/exchange"}}
	_, _ = first.Deliver(ctx, db, tx, &weavetest.Handler{})
	_, _ = second.Deliver(ctx, db, tx, &weavetest.Handler{})

	assert.Equal(t, float64(2), testutil.ToFloat64(first.txs.WithLabelValues("deliver", "escrow/exchange", "success")))
}
