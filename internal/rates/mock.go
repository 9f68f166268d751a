package rates

import (
	"context"
	"sync"

	"github.com/Veraticus/fxdash/internal/model"
)

// MockService is a mock implementation of Service for testing.
type MockService struct {
	// Functions that can be set by tests to control behavior
	CurrenciesFn   func(ctx context.Context) (model.Catalog, error)
	ConvertFn      func(ctx context.Context, pair model.Pair, amount float64) (float64, error)
	PopularRatesFn func(ctx context.Context, pairs []model.Pair) []model.PairRate
	HistoryFn      func(ctx context.Context, pair model.Pair) (model.Series, error)

	// Call tracking
	ConvertCalls    []ConvertCall
	HistoryCalls    []model.Pair
	PopularCalls    int
	CurrenciesCalls int

	mu sync.Mutex
}

// ConvertCall records the parameters of a Convert call.
type ConvertCall struct {
	Pair   model.Pair
	Amount float64
}

// NewMockService creates a new mock rate service.
func NewMockService() *MockService {
	return &MockService{}
}

// Currencies implements Service.Currencies.
func (m *MockService) Currencies(ctx context.Context) (model.Catalog, error) {
	m.mu.Lock()
	m.CurrenciesCalls++
	fn := m.CurrenciesFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return model.Catalog{}, nil
}

// Convert implements Service.Convert.
func (m *MockService) Convert(ctx context.Context, pair model.Pair, amount float64) (float64, error) {
	m.mu.Lock()
	m.ConvertCalls = append(m.ConvertCalls, ConvertCall{Pair: pair, Amount: amount})
	fn := m.ConvertFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, pair, amount)
	}
	return amount, nil
}

// PopularRates implements Service.PopularRates.
func (m *MockService) PopularRates(ctx context.Context, pairs []model.Pair, onSettled ...SettledFunc) []model.PairRate {
	m.mu.Lock()
	m.PopularCalls++
	fn := m.PopularRatesFn
	m.mu.Unlock()

	var out []model.PairRate
	if fn != nil {
		out = fn(ctx, pairs)
	} else {
		out = make([]model.PairRate, len(pairs))
		for i, p := range pairs {
			out[i] = model.PairRate{Pair: p, Rate: 1}
		}
	}

	for _, r := range out {
		for _, cb := range onSettled {
			cb(r)
		}
	}
	return out
}

// History implements Service.History.
func (m *MockService) History(ctx context.Context, pair model.Pair) (model.Series, error) {
	m.mu.Lock()
	m.HistoryCalls = append(m.HistoryCalls, pair)
	fn := m.HistoryFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, pair)
	}
	return model.Series{Pair: pair}, nil
}

// ConvertCallCount returns the number of Convert calls.
func (m *MockService) ConvertCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ConvertCalls)
}

// HistoryCallCount returns the number of History calls.
func (m *MockService) HistoryCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.HistoryCalls)
}
