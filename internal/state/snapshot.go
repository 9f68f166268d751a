package state

import "github.com/Veraticus/fxdash/internal/model"

// CatalogStatus is the state of the catalog sub-machine.
type CatalogStatus int

// Catalog states. Loading is initial; there is no automatic way back to it.
const (
	CatalogLoading CatalogStatus = iota
	CatalogLoaded
	CatalogFailed
)

func (s CatalogStatus) String() string {
	switch s {
	case CatalogLoading:
		return "loading"
	case CatalogLoaded:
		return "loaded"
	case CatalogFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of the store's state.
type Snapshot struct {
	Catalog          model.Catalog
	CatalogErr       string
	Selection        model.Pair
	Conversion       model.ConversionRecord
	Status           CatalogStatus
	BootstrapPending bool
}

// Loading reports whether the catalog is still being fetched.
func (s Snapshot) Loading() bool {
	return s.BootstrapPending || s.Status == CatalogLoading
}

// Failed reports whether the catalog fetch failed.
func (s Snapshot) Failed() bool {
	return s.Status == CatalogFailed
}

// Ready reports whether panels may render: the catalog loaded, is non-empty
// and the bootstrap fetch has settled.
func (s Snapshot) Ready() bool {
	return !s.BootstrapPending && s.Status == CatalogLoaded && !s.Catalog.IsEmpty()
}

// EventKind names the slice of state a mutation touched.
type EventKind int

// Event kinds.
const (
	EventCatalog EventKind = iota
	EventStatus
	EventSelection
	EventConversion
)

func (k EventKind) String() string {
	switch k {
	case EventCatalog:
		return "catalog"
	case EventStatus:
		return "status"
	case EventSelection:
		return "selection"
	case EventConversion:
		return "conversion"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after a mutation took effect.
type Event struct {
	Snapshot Snapshot
	Kind     EventKind
}
