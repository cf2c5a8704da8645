package plans

// Plan maps a coin price to a server duration. A nil DurationHours
// means the server never expires.
type Plan struct {
	Coins         int64
	DurationHours *int
	Label         string
}

// Catalog is an ordered, immutable list of plans, selected by index.
type Catalog []Plan

func hours(h int) *int { return &h }

func Default() Catalog {
	return Catalog{
		{Coins: 10, DurationHours: hours(24), Label: "24 Hours"},
		{Coins: 50, DurationHours: hours(120), Label: "5 Days"},
		{Coins: 100, DurationHours: hours(168), Label: "7 Days"},
		{Coins: 300, DurationHours: nil, Label: "Unlimited"},
	}
}

func (c Catalog) Get(index int) (Plan, bool) {
	if index < 0 || index >= len(c) {
		return Plan{}, false
	}
	return c[index], true
}
