package core

const (
	// TrendDays is how many distinct date keys the daily trend keeps.
	TrendDays = 7
	// RecentLimit is how many records the recent-transactions list shows.
	RecentLimit = 5
)

// CategoryAmount is an amount aggregated under a category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// DayAmount is an amount aggregated under a display date string.
type DayAmount struct {
	Date   string
	Amount Money
}

// Summary holds everything the dashboard renders.
type Summary struct {
	TotalSpent            Money
	TransactionCount      int
	AveragePerTransaction Money
	ByCategory            []CategoryAmount
	ByDay                 []DayAmount
	Recent                []Record
}

// Summarize computes the dashboard aggregates over the full record list. It is
// pure and deterministic: same input, same output, no I/O.
//
// Category and day groupings keep first-seen order. The daily trend is the
// last TrendDays distinct date keys in that order; the date strings are
// display-formatted and are deliberately not parsed or re-sorted, so the
// window is only chronological when the store returns rows in append order.
func Summarize(records []Record) Summary {
	var s Summary
	s.TransactionCount = len(records)

	catIdx := map[string]int{}
	dayIdx := map[string]int{}
	for _, r := range records {
		s.TotalSpent.Cents += r.Amount.Cents

		if i, ok := catIdx[r.Category]; ok {
			s.ByCategory[i].Amount.Cents += r.Amount.Cents
		} else {
			catIdx[r.Category] = len(s.ByCategory)
			s.ByCategory = append(s.ByCategory, CategoryAmount{Name: r.Category, Amount: r.Amount})
		}

		if i, ok := dayIdx[r.Date]; ok {
			s.ByDay[i].Amount.Cents += r.Amount.Cents
		} else {
			dayIdx[r.Date] = len(s.ByDay)
			s.ByDay = append(s.ByDay, DayAmount{Date: r.Date, Amount: r.Amount})
		}
	}

	if len(s.ByDay) > TrendDays {
		s.ByDay = s.ByDay[len(s.ByDay)-TrendDays:]
	}

	if s.TransactionCount > 0 {
		n := int64(s.TransactionCount)
		s.AveragePerTransaction = Money{Cents: (s.TotalSpent.Cents + n/2) / n}
	}

	// Most recently appended first
	limit := RecentLimit
	if limit > len(records) {
		limit = len(records)
	}
	for i := 0; i < limit; i++ {
		s.Recent = append(s.Recent, records[len(records)-1-i])
	}

	return s
}
