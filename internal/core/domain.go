package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Categories is the closed set offered by the expense form. The validator
// accepts any non-empty category; only the UI constrains the choice.
var Categories = []string{
	"Alimentación",
	"Transporte",
	"Vivienda",
	"Ocio",
	"Salud",
	"Educación",
	"Ropa",
	"Ahorro",
	"Otros",
}

type (
	Money struct {
		Cents int64
	}

	// Expense is a validated expense, ready for the intake pipeline.
	Expense struct {
		Date        time.Time
		Amount      Money
		Category    string
		Description string
	}

	// RawRow is the string-keyed shape the row-store hands back. Amount is
	// unparsed; CoerceRow turns it into a Record.
	RawRow struct {
		Date        string
		Category    string
		Amount      string
		Description string
	}

	// Record is one persisted row. Date keeps the display-formatted string
	// exactly as it was written to the store.
	Record struct {
		Date        string
		Category    string
		Amount      Money
		Description string
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyCategory = errors.New("empty category")
)

// dateLayouts are the submission formats accepted by the validator. The HTML
// date input sends the first one.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
}

// ParseDate parses a submitted date string.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// DisplayDate renders a date the way the row-store stores it: day/month/year
// without zero padding, es-ES style (e.g. "5/1/2024").
func DisplayDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// Validate guards the adapter boundary: only well-formed rows may be
// persisted, whatever path produced them.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Date) == "" {
		return ErrInvalidDate
	}
	if r.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// Row returns the external representation of a validated expense, with the
// date reformatted for display. This is the only place the conversion happens.
func (e Expense) Row() Record {
	return Record{
		Date:        DisplayDate(e.Date),
		Category:    e.Category,
		Amount:      e.Amount,
		Description: e.Description,
	}
}

// CoerceRow turns a raw store row into a typed record. An unparsable amount
// coerces to zero rather than dropping the row.
func CoerceRow(r RawRow) Record {
	cents, err := ParseDecimalToCents(r.Amount)
	if err != nil {
		cents = 0
	}
	return Record{
		Date:        strings.TrimSpace(r.Date),
		Category:    strings.TrimSpace(r.Category),
		Amount:      Money{Cents: cents},
		Description: r.Description,
	}
}
