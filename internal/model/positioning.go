package model

// PositioningRecord holds Commitment of Traders style counts for one currency.
type PositioningRecord struct {
	Currency   string
	InstLongs  int
	InstShorts int
	RetLongs   int
	RetShorts  int
	// Bias is the report's own institutional label, empty when the source had none.
	Bias Label
}

// Counts returns the long and short counts for the given trader class.
func (r PositioningRecord) Counts(class TraderClass) (longs, shorts int) {
	if class == Retail {
		return r.RetLongs, r.RetShorts
	}
	return r.InstLongs, r.InstShorts
}

// PositioningTable maps a currency code to its unique record.
type PositioningTable map[string]PositioningRecord

// Lookup returns the record for currency, if any.
func (t PositioningTable) Lookup(currency string) (PositioningRecord, bool) {
	r, ok := t[currency]
	return r, ok
}
