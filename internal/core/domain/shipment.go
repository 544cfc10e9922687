package domain

import "github.com/shopspring/decimal"

var gramsPerKilogram = decimal.NewFromInt(1000)

type ManifestEntry struct {
	Name       string
	UnitWeight decimal.Decimal // kg
	Quantity   int
}

func (e ManifestEntry) UnitGrams() decimal.Decimal {
	return e.UnitWeight.Mul(gramsPerKilogram)
}

func (e ManifestEntry) LineGrams() decimal.Decimal {
	return e.UnitGrams().Mul(decimal.NewFromInt(int64(e.Quantity)))
}

func (e ManifestEntry) LineKilograms() decimal.Decimal {
	return e.UnitWeight.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// ShippingAccumulator collects one manifest entry per shippable line.
type ShippingAccumulator struct {
	entries []ManifestEntry
}

func (a *ShippingAccumulator) Add(item Shippable, quantity int) {
	a.entries = append(a.entries, ManifestEntry{
		Name:       item.Name(),
		UnitWeight: item.Weight(),
		Quantity:   quantity,
	})
}

func (a *ShippingAccumulator) Entries() []ManifestEntry {
	entries := make([]ManifestEntry, len(a.entries))
	copy(entries, a.entries)
	return entries
}

// TotalWeight is the package weight in kg.
func (a *ShippingAccumulator) TotalWeight() decimal.Decimal {
	return TotalWeight(a.entries)
}

func TotalWeight(entries []ManifestEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.LineKilograms())
	}
	return total
}
