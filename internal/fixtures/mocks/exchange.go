// Package mocks provides testify mocks for the interfaces the services depend on.
package mocks

import (
	"context"

	"github.com/amirasaad/fxconv/pkg/money"
	"github.com/amirasaad/fxconv/pkg/provider/exchange"
	"github.com/stretchr/testify/mock"
)

// Exchange is a mock of exchange.Exchange.
type Exchange struct {
	mock.Mock
}

// NewExchange creates an Exchange mock whose expectations are asserted on cleanup.
func NewExchange(t interface {
	mock.TestingT
	Cleanup(func())
}) *Exchange {
	m := &Exchange{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Exchange) LatestRates(
	ctx context.Context,
	base money.Code,
	targets []money.Code,
) exchange.Result[money.RateMap] {
	args := m.Called(ctx, base, targets)
	return args.Get(0).(exchange.Result[money.RateMap])
}

func (m *Exchange) Currencies(ctx context.Context, base money.Code) exchange.Result[money.Directory] {
	args := m.Called(ctx, base)
	return args.Get(0).(exchange.Result[money.Directory])
}

// Name is not recorded as a call.
func (m *Exchange) Name() string {
	return "mock"
}

var _ exchange.Exchange = (*Exchange)(nil)
