// Package testing provides helpers for driving bubbletea models in tests.
package testing

import (
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultWait bounds how long Exec waits for a command tree to finish.
const DefaultWait = 300 * time.Millisecond

// TestRenderer drives a model without a terminal: it records the commands
// each Update returns and can run them and feed the results back in.
type TestRenderer struct {
	// Ignore drops messages before they reach the model. Defaults to
	// dropping spinner ticks and cursor blinks, which would otherwise keep
	// Settle busy forever.
	Ignore func(tea.Msg) bool

	// Output contains the last rendered view
	Output string

	// Commands contains the commands not yet executed
	Commands []tea.Cmd

	// Messages contains every message delivered to the model
	Messages []tea.Msg

	Wait time.Duration
}

// NewTestRenderer creates a new test renderer.
func NewTestRenderer() *TestRenderer {
	return &TestRenderer{
		Ignore: func(msg tea.Msg) bool {
			switch msg.(type) {
			case spinner.TickMsg, cursor.BlinkMsg:
				return true
			}
			return false
		},
		Wait: DefaultWait,
	}
}

// Render renders a model and captures its output.
func (r *TestRenderer) Render(model tea.Model) string {
	r.Output = model.View()
	return r.Output
}

// Init records the model's initial command.
func (r *TestRenderer) Init(model tea.Model) {
	if cmd := model.Init(); cmd != nil {
		r.Commands = append(r.Commands, cmd)
	}
	r.Output = model.View()
}

// Update delivers msg and records the returned command.
func (r *TestRenderer) Update(model tea.Model, msg tea.Msg) tea.Model {
	r.Messages = append(r.Messages, msg)

	next, cmd := model.Update(msg)
	if cmd != nil {
		r.Commands = append(r.Commands, cmd)
	}
	r.Output = next.View()
	return next
}

// Send delivers each message in order.
func (r *TestRenderer) Send(model tea.Model, msgs ...tea.Msg) tea.Model {
	for _, msg := range msgs {
		model = r.Update(model, msg)
	}
	return model
}

// Settle runs pending commands and feeds their messages back until no
// command produces anything new within the wait window.
func (r *TestRenderer) Settle(model tea.Model) tea.Model {
	for len(r.Commands) > 0 {
		cmds := r.Commands
		r.Commands = nil

		var produced []tea.Msg
		for _, cmd := range cmds {
			produced = append(produced, Exec(cmd, r.Wait)...)
		}

		delivered := 0
		for _, msg := range produced {
			if r.Ignore != nil && r.Ignore(msg) {
				continue
			}
			model = r.Update(model, msg)
			delivered++
		}
		if delivered == 0 {
			r.Commands = nil
			break
		}
	}
	return model
}

// StripANSI returns the last output without escape codes.
func (r *TestRenderer) StripANSI() string {
	return StripANSI(r.Output)
}

// Lines returns the stripped output split by newlines.
func (r *TestRenderer) Lines() []string {
	return strings.Split(r.StripANSI(), "\n")
}

// Exec runs cmd, expanding batches, and returns the messages produced
// before wait elapses. Commands still running afterwards, such as long
// ticks, are abandoned.
func Exec(cmd tea.Cmd, wait time.Duration) []tea.Msg {
	if cmd == nil {
		return nil
	}

	c := &collector{done: make(chan struct{})}
	c.run(cmd)

	select {
	case <-c.done:
	case <-time.After(wait):
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]tea.Msg, len(c.msgs))
	copy(out, c.msgs)
	return out
}

// MessagesOf filters msgs down to those of type T.
func MessagesOf[T any](msgs []tea.Msg) []T {
	var out []T
	for _, msg := range msgs {
		if m, ok := msg.(T); ok {
			out = append(out, m)
		}
	}
	return out
}

type collector struct {
	done    chan struct{}
	msgs    []tea.Msg
	mu      sync.Mutex
	pending int
	closed  bool
}

func (c *collector) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}

	c.mu.Lock()
	c.pending++
	c.mu.Unlock()

	go func() {
		msg := cmd()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, sub := range batch {
				c.run(sub)
			}
			msg = nil
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if msg != nil {
			c.msgs = append(c.msgs, msg)
		}
		c.pending--
		if c.pending == 0 && !c.closed {
			c.closed = true
			close(c.done)
		}
	}()
}
