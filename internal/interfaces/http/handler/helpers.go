package handler

import "github.com/shopspring/decimal"

// Prices are stored with two decimal places; request payloads carry
// them as JSON numbers.

func priceFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

func pricePtrFromFloat(f float64) *decimal.Decimal {
	d := priceFromFloat(f)
	return &d
}

func labelNames(refs []LabelRef) []string {
	if refs == nil {
		return nil
	}
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}
	return names
}

// labelNamesPtr keeps the absent/empty distinction: a nil pointer means
// the key was omitted and the association stays untouched.
func labelNamesPtr(refs *[]LabelRef) *[]string {
	if refs == nil {
		return nil
	}
	names := labelNames(*refs)
	if names == nil {
		names = []string{}
	}
	return &names
}

// labelNamesOpt does the same for value slices, where an omitted key
// decodes as a nil slice.
func labelNamesOpt(refs []LabelRef) *[]string {
	if refs == nil {
		return nil
	}
	names := labelNames(refs)
	return &names
}
