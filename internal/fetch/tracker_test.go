package fetch

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_BeginSettle(t *testing.T) {
	tr := NewTracker()
	assert.True(t, tr.Status().Idle())

	tok := tr.Begin()
	assert.Equal(t, Status{Pending: true}, tr.Status())

	assert.True(t, tr.Settle(tok, errors.New("HTTP error! status: 500")))
	assert.Equal(t, Status{Err: "HTTP error! status: 500"}, tr.Status())
	assert.True(t, tr.Status().Failed())

	// A new attempt clears the previous error at start.
	tok = tr.Begin()
	assert.Equal(t, Status{Pending: true}, tr.Status())

	assert.True(t, tr.Settle(tok, nil))
	assert.True(t, tr.Status().Idle())
}

func TestTracker_StaleSettleIsIgnored(t *testing.T) {
	tr := NewTracker()

	first := tr.Begin()
	second := tr.Begin()

	// The superseded attempt finishing must not release the newer one.
	assert.False(t, tr.Settle(first, errors.New("late failure")))
	assert.Equal(t, Status{Pending: true}, tr.Status())
	assert.False(t, tr.Current(first))
	assert.True(t, tr.Current(second))

	assert.True(t, tr.Settle(second, nil))
	assert.True(t, tr.Status().Idle())

	// And it must not overwrite the settled result either.
	assert.False(t, tr.Settle(first, errors.New("even later")))
	assert.True(t, tr.Status().Idle())
}

func TestTracker_Invalidate(t *testing.T) {
	tr := NewTracker()
	tok := tr.Begin()

	tr.Invalidate()
	assert.True(t, tr.Status().Idle())
	assert.False(t, tr.Settle(tok, errors.New("ignored")))
	assert.True(t, tr.Status().Idle())
}

func TestDo_ReleasesPendingOnEveryPath(t *testing.T) {
	tests := []struct {
		fn      func() (int, error)
		name    string
		wantErr string
		want    int
	}{
		{
			name: "success",
			fn:   func() (int, error) { return 42, nil },
			want: 42,
		},
		{
			name:    "error",
			fn:      func() (int, error) { return 0, errors.New("rate unavailable") },
			wantErr: "rate unavailable",
		},
		{
			name:    "panic",
			fn:      func() (int, error) { panic("kaboom") },
			wantErr: "unexpected failure: kaboom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			var observedPending bool

			got, err := Do(tr, func() (int, error) {
				observedPending = tr.Status().Pending
				return tt.fn()
			})

			assert.True(t, observedPending)
			assert.False(t, tr.Status().Pending)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				assert.Equal(t, tt.wantErr, tr.Status().Err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, tr.Status().Err)
		})
	}
}

func TestTracker_ConcurrentAttempts(t *testing.T) {
	tr := NewTracker()

	var wg sync.WaitGroup
	tokens := make(chan Token, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tokens <- tr.Begin()
		}()
	}
	wg.Wait()
	close(tokens)

	var highest Token
	for tok := range tokens {
		if tok > highest {
			highest = tok
		}
		if tok != highest {
			tr.Settle(tok, nil)
		}
	}

	assert.True(t, tr.Settle(highest, nil))
	assert.False(t, tr.Status().Pending)
}
