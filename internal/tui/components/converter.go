package components

import (
	"log/slog"

	"github.com/Veraticus/fxdash/internal/conversion"
	"github.com/Veraticus/fxdash/internal/fetch"
	"github.com/Veraticus/fxdash/internal/model"
	"github.com/Veraticus/fxdash/internal/rates"
	"github.com/Veraticus/fxdash/internal/state"
	"github.com/Veraticus/fxdash/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type converterField int

const (
	fieldFrom converterField = iota
	fieldTo
	fieldAmount
	fieldCount
)

// ConverterKeys are the bindings the converter panel reacts to.
type ConverterKeys struct {
	NextField key.Binding
	PrevField key.Binding
	Prev      key.Binding
	Next      key.Binding
	Convert   key.Binding
	Swap      key.Binding
}

// DefaultConverterKeys returns the converter bindings.
func DefaultConverterKeys() ConverterKeys {
	return ConverterKeys{
		NextField: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous currency"),
		),
		Next: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next currency"),
		),
		Convert: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "convert"),
		),
		Swap: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "swap currencies"),
		),
	}
}

// ConverterModel is the spot conversion form. It owns the amount input, its
// own request flags and the form error; the result and rate live in the store.
type ConverterModel struct {
	deps      Deps
	site      *rates.CallSite
	keys      ConverterKeys
	theme     themes.Theme
	from      CurrencySelect
	to        CurrencySelect
	amount    textinput.Model
	spinner   spinner.Model
	snap      state.Snapshot
	formError string
	field     converterField
	width     int
	focused   bool
}

// NewConverterModel creates a converter wired to deps.
func NewConverterModel(deps Deps, theme themes.Theme, keys ConverterKeys) ConverterModel {
	input := textinput.New()
	input.Placeholder = "Amount"
	input.CharLimit = 24
	input.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return ConverterModel{
		deps:    deps,
		site:    rates.NewCallSite(deps.Service),
		keys:    keys,
		theme:   theme,
		from:    CurrencySelect{Label: "From"},
		to:      CurrencySelect{Label: "To"},
		amount:  input,
		spinner: sp,
		snap:    deps.Store.Snapshot(),
		field:   fieldAmount,
	}
}

// Focus gives the panel keyboard focus.
func (m ConverterModel) Focus() ConverterModel {
	m.focused = true
	m.syncInputFocus()
	return m
}

// Blur removes keyboard focus.
func (m ConverterModel) Blur() ConverterModel {
	m.focused = false
	m.syncInputFocus()
	return m
}

// Focused reports whether the panel has keyboard focus.
func (m ConverterModel) Focused() bool {
	return m.focused
}

// SetWidth sets the rendered width.
func (m ConverterModel) SetWidth(width int) ConverterModel {
	m.width = width
	m.amount.Width = max(width-6, 8)
	return m
}

// Status returns the panel's request flags.
func (m ConverterModel) Status() fetch.Status {
	return m.site.Status()
}

// FormError returns the message shown for the last rejected or failed attempt.
func (m ConverterModel) FormError() string {
	return m.formError
}

// Update handles messages.
func (m ConverterModel) Update(msg tea.Msg) (ConverterModel, tea.Cmd) {
	switch msg := msg.(type) {
	case StoreChangedMsg:
		m.snap = msg.Event.Snapshot
		if msg.Event.Kind == state.EventSelection {
			// A pair change makes any in-flight conversion stale.
			m.site.Tracker().Invalidate()
			m.formError = ""
		}
		return m, nil

	case ThemeChangedMsg:
		m.theme = themes.For(msg.Theme)
		return m, nil

	case ConversionDoneMsg:
		m.handleDone(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.site.Status().Pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m ConverterModel) handleKey(msg tea.KeyMsg) (ConverterModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Convert):
		return m.submit()

	case key.Matches(msg, m.keys.NextField):
		m.field = (m.field + 1) % fieldCount
		m.syncInputFocus()
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.field = (m.field + fieldCount - 1) % fieldCount
		m.syncInputFocus()
		return m, nil

	case key.Matches(msg, m.keys.Swap):
		m.deps.Store.SwapSelection()
		return m, nil

	case m.field != fieldAmount && key.Matches(msg, m.keys.Prev, m.keys.Next):
		delta := 1
		if key.Matches(msg, m.keys.Prev) {
			delta = -1
		}
		m.cycle(delta)
		return m, nil
	}

	if m.field != fieldAmount {
		return m, nil
	}

	var cmd tea.Cmd
	m.amount, cmd = m.amount.Update(msg)
	return m, cmd
}

func (m *ConverterModel) cycle(delta int) {
	sel := m.snap.Selection
	if m.field == fieldFrom {
		m.deps.Store.SetFromCurrency(m.from.Cycle(m.snap.Catalog, sel.From, delta))
		return
	}
	m.deps.Store.SetToCurrency(m.to.Cycle(m.snap.Catalog, sel.To, delta))
}

// submit validates the form and starts a conversion. Rejected input never
// reaches the service and leaves the request flags untouched.
func (m ConverterModel) submit() (ConverterModel, tea.Cmd) {
	m.formError = ""
	m.deps.Store.SetConversionResult("")

	pair := m.snap.Selection
	amount, err := conversion.Validate(m.amount.Value(), pair, m.snap.CatalogErr)
	if err != nil {
		m.formError = conversion.FailureText(err)
		return m, nil
	}

	tok := m.site.Tracker().Begin()
	slog.Debug("Starting conversion", "pair", pair.String(), "amount", amount)

	return m, tea.Batch(convertCmd(m.deps, m.site.Service(), tok, pair, amount), m.spinner.Tick)
}

func (m *ConverterModel) handleDone(msg ConversionDoneMsg) {
	if !m.site.Tracker().Settle(msg.Token, msg.Err) {
		slog.Debug("Discarding stale conversion", "pair", msg.Pair.String())
		return
	}

	if msg.Err != nil {
		m.formError = conversion.FailureText(msg.Err)
		// Failure clears both result and rate, but only for the pair it belongs to.
		m.deps.Store.CommitConversion(msg.Pair, "", 0)
		return
	}

	text := conversion.ResultText(msg.Pair, msg.Amount, msg.Converted)
	rate := conversion.Rate(msg.Amount, msg.Converted)
	m.deps.Store.CommitConversion(msg.Pair, text, rate)
}

func (m *ConverterModel) syncInputFocus() {
	if m.focused && m.field == fieldAmount {
		m.amount.Focus()
		return
	}
	m.amount.Blur()
}

// message picks the single status line: form error, then in-flight notice,
// then the stored result, then the prompt.
func (m ConverterModel) message() string {
	switch {
	case m.formError != "":
		return m.theme.StatusError.Render(m.formError)
	case m.site.Status().Pending:
		return m.spinner.View() + " " + m.theme.StatusPending.Render(conversion.ConvertingText)
	case m.snap.Conversion.ResultText != "":
		return m.theme.StatusSuccess.Render(m.snap.Conversion.ResultText)
	default:
		return m.theme.Subtitle.Render(conversion.PromptText)
	}
}

// View renders the converter panel.
func (m ConverterModel) View() string {
	sel := m.snap.Selection
	amountLabel := m.theme.Subtitle.Render("Amount:")
	amountView := m.amount.View()
	if m.focused && m.field == fieldAmount {
		amountView = lipgloss.NewStyle().Underline(true).Render(amountView)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Currency Converter"),
		m.from.View(m.theme, m.snap.Catalog, sel.From, m.focused && m.field == fieldFrom),
		m.to.View(m.theme, m.snap.Catalog, sel.To, m.focused && m.field == fieldTo),
		lipgloss.JoinHorizontal(lipgloss.Top, amountLabel, " ", amountView),
		"",
		m.message(),
	)

	return panelStyle(m.theme, m.focused, m.width).Render(body)
}

func panelStyle(theme themes.Theme, focused bool, width int) lipgloss.Style {
	style := theme.Panel
	if focused {
		style = theme.FocusedPanel
	}
	if width > 0 {
		// Border adds two columns.
		style = style.Width(max(width-2, 0))
	}
	return style
}

func convertCmd(deps Deps, svc rates.Service, tok fetch.Token, pair model.Pair, amount float64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := deps.requestContext()
		defer cancel()

		converted, err := fetch.Capture(func() (float64, error) {
			return svc.Convert(ctx, pair, amount)
		})
		return ConversionDoneMsg{
			Token:     tok,
			Pair:      pair,
			Amount:    amount,
			Converted: converted,
			Err:       err,
		}
	}
}
