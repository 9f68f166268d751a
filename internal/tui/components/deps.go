package components

import (
	"context"
	"time"

	"github.com/Veraticus/fxdash/internal/rates"
	"github.com/Veraticus/fxdash/internal/state"
)

// DefaultRequestTimeout bounds a single panel request.
const DefaultRequestTimeout = 15 * time.Second

// Deps are the collaborators shared by the panels. Each panel builds its
// own rates.CallSite from Service so loading flags are never shared.
type Deps struct {
	Ctx     context.Context
	Store   *state.Store
	Service rates.Service
	Timeout time.Duration
}

func (d Deps) requestContext() (context.Context, context.CancelFunc) {
	ctx := d.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
