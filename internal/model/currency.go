package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Well-known currency codes used for default selection.
const (
	CodeEUR = "EUR"
	CodeUSD = "USD"
)

// Catalog maps currency codes to display names and keeps the order in which
// the rate service listed them.
type Catalog struct {
	names map[string]string
	codes []string
}

// CatalogEntry is a single code/name pair.
type CatalogEntry struct {
	Code string
	Name string
}

// NewCatalog builds a catalog from entries, keeping the first occurrence of a code.
func NewCatalog(entries ...CatalogEntry) Catalog {
	c := Catalog{names: make(map[string]string, len(entries))}
	for _, e := range entries {
		code := strings.TrimSpace(e.Code)
		if code == "" {
			continue
		}
		if _, dup := c.names[code]; dup {
			continue
		}
		c.names[code] = e.Name
		c.codes = append(c.codes, code)
	}
	return c
}

// Len returns the number of currencies.
func (c Catalog) Len() int {
	return len(c.codes)
}

// IsEmpty reports whether the catalog has no currencies.
func (c Catalog) IsEmpty() bool {
	return len(c.codes) == 0
}

// Has reports whether code is present.
func (c Catalog) Has(code string) bool {
	if code == "" {
		return false
	}
	_, ok := c.names[code]
	return ok
}

// Name returns the display name for a code.
func (c Catalog) Name(code string) string {
	return c.names[code]
}

// Codes returns the codes in service order. The slice is a copy.
func (c Catalog) Codes() []string {
	out := make([]string, len(c.codes))
	copy(out, c.codes)
	return out
}

// Entries returns code/name pairs in service order.
func (c Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(c.codes))
	for _, code := range c.codes {
		out = append(out, CatalogEntry{Code: code, Name: c.names[code]})
	}
	return out
}

// First returns the first code, or "" when empty.
func (c Catalog) First() string {
	if len(c.codes) == 0 {
		return ""
	}
	return c.codes[0]
}

// FirstExcept returns the first code different from code, or "" if none exists.
func (c Catalog) FirstExcept(code string) string {
	for _, candidate := range c.codes {
		if candidate != code {
			return candidate
		}
	}
	return ""
}

// Equal reports whether both catalogs hold the same codes, names and order.
func (c Catalog) Equal(other Catalog) bool {
	if len(c.codes) != len(other.codes) {
		return false
	}
	for i, code := range c.codes {
		if other.codes[i] != code || other.names[code] != c.names[code] {
			return false
		}
	}
	return true
}

// UnmarshalJSON decodes a JSON object of code -> name, keeping key order.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("catalog must be a JSON object")
	}

	var entries []CatalogEntry
	for dec.More() {
		keyTok, keyErr := dec.Token()
		if keyErr != nil {
			return fmt.Errorf("failed to read catalog key: %w", keyErr)
		}
		code, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("catalog key must be a string")
		}

		var name string
		if valErr := dec.Decode(&name); valErr != nil {
			return fmt.Errorf("invalid name for currency %s: %w", code, valErr)
		}
		entries = append(entries, CatalogEntry{Code: code, Name: name})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to close catalog object: %w", err)
	}

	*c = NewCatalog(entries...)
	return nil
}

// Pair is an ordered (from, to) tuple of currency codes.
type Pair struct {
	From string
	To   string
}

// String renders the pair as FROM/TO.
func (p Pair) String() string {
	return p.From + "/" + p.To
}

// Complete reports whether both sides are selected.
func (p Pair) Complete() bool {
	return p.From != "" && p.To != ""
}

// Distinct reports whether both sides are selected and differ.
func (p Pair) Distinct() bool {
	return p.Complete() && p.From != p.To
}

// ParsePair parses "EUR/USD" (or "EUR-USD") into a Pair.
func ParsePair(s string) (Pair, error) {
	sep := "/"
	if !strings.Contains(s, sep) {
		sep = "-"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 2 {
		return Pair{}, fmt.Errorf("invalid currency pair %q", s)
	}
	p := Pair{
		From: strings.ToUpper(strings.TrimSpace(parts[0])),
		To:   strings.ToUpper(strings.TrimSpace(parts[1])),
	}
	if !p.Complete() {
		return Pair{}, fmt.Errorf("invalid currency pair %q", s)
	}
	return p, nil
}
