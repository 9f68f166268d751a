package tui

import (
	"github.com/Veraticus/fxdash/internal/fetch"
	"github.com/Veraticus/fxdash/internal/model"
)

// Bootstrap messages.
type catalogLoadedMsg struct {
	err     error
	catalog model.Catalog
	token   fetch.Token
}
