package model

import (
	"sort"
	"strings"
)

// Pair binds a currency pair symbol to the currencies and economies behind it.
type Pair struct {
	Symbol        string `yaml:"symbol"`
	BaseCurrency  string `yaml:"base_currency"`
	QuoteCurrency string `yaml:"quote_currency"`
	BaseCountry   string `yaml:"base_country"`
	QuoteCountry  string `yaml:"quote_country"`
}

// DefaultPairs are the pairs the dashboard ships with.
var DefaultPairs = []Pair{
	{"EUR_USD", "EUR", "USD", "Euro Area", "United States"},
	{"USD_JPY", "USD", "JPY", "United States", "Japan"},
	{"GBP_USD", "GBP", "USD", "United Kingdom", "United States"},
	{"AUD_USD", "AUD", "USD", "Australia", "United States"},
	{"AUD_CAD", "AUD", "CAD", "Australia", "Canada"},
	{"USD_CAD", "USD", "CAD", "United States", "Canada"},
	{"USD_CHF", "USD", "CHF", "United States", "Switzerland"},
	{"NZD_USD", "NZD", "USD", "New Zealand", "United States"},
	{"EUR_JPY", "EUR", "JPY", "Euro Area", "Japan"},
	{"GBP_JPY", "GBP", "JPY", "United Kingdom", "Japan"},
	{"EUR_GBP", "EUR", "GBP", "Euro Area", "United Kingdom"},
}

// PairRegistry resolves user-supplied pair selectors.
type PairRegistry struct {
	order []string
	pairs map[string]Pair
}

// NewPairRegistry builds a registry from pairs; later entries replace earlier ones with the same symbol.
func NewPairRegistry(pairs ...Pair) *PairRegistry {
	r := &PairRegistry{pairs: make(map[string]Pair, len(pairs))}
	for _, p := range pairs {
		r.Register(p)
	}
	return r
}

// DefaultRegistry returns a registry holding DefaultPairs.
func DefaultRegistry() *PairRegistry {
	return NewPairRegistry(DefaultPairs...)
}

// Register adds or replaces a pair.
func (r *PairRegistry) Register(p Pair) {
	p.Symbol = NormalizeSymbol(p.Symbol)
	if _, exists := r.pairs[p.Symbol]; !exists {
		r.order = append(r.order, p.Symbol)
	}
	r.pairs[p.Symbol] = p
}

// Lookup resolves a selector such as "EUR_USD", "eur/usd" or "EURUSD".
func (r *PairRegistry) Lookup(selector string) (Pair, bool) {
	p, ok := r.pairs[NormalizeSymbol(selector)]
	return p, ok
}

// Pairs returns the registered pairs in registration order.
func (r *PairRegistry) Pairs() []Pair {
	out := make([]Pair, 0, len(r.order))
	for _, s := range r.order {
		out = append(out, r.pairs[s])
	}
	return out
}

// Symbols returns the registered symbols sorted alphabetically.
func (r *PairRegistry) Symbols() []string {
	out := append([]string(nil), r.order...)
	sort.Strings(out)
	return out
}

// NormalizeSymbol converts a selector into the canonical "BASE_QUOTE" form.
func NormalizeSymbol(selector string) string {
	s := strings.ToUpper(strings.TrimSpace(selector))
	s = strings.NewReplacer("/", "_", "-", "_", " ", "").Replace(s)
	if len(s) == 6 && !strings.Contains(s, "_") {
		s = s[:3] + "_" + s[3:]
	}
	return s
}
