package core

import "strings"

// User-facing validation messages, matching the expense form's language.
const (
	MsgDateRequired      = "La fecha es requerida"
	MsgDateInvalid       = "La fecha no es válida"
	MsgAmountInvalid     = "El monto no es válido"
	MsgAmountNotPositive = "El monto debe ser positivo"
	MsgCategoryRequired  = "Selecciona una categoría"
)

// FieldErrors is the structured validation failure: the raw submission echoed
// back for re-populating the form, plus the ordered list of rule violations.
type FieldErrors struct {
	Fields map[string]string
	Issues []string
}

// Validate turns an untrusted string-keyed submission into an Expense or a
// FieldErrors. Rules are applied per field and every violation is collected;
// nothing short-circuits.
//
// Recognized keys: date, amount, category, description. A missing description
// normalizes to the empty string.
func Validate(raw map[string]string) (Expense, *FieldErrors) {
	var (
		exp    Expense
		issues []string
	)

	date := strings.TrimSpace(raw["date"])
	if date == "" {
		issues = append(issues, MsgDateRequired)
	} else if t, err := ParseDate(date); err != nil {
		issues = append(issues, MsgDateInvalid)
	} else {
		exp.Date = t
	}

	cents, err := ParseDecimalToCents(raw["amount"])
	switch {
	case err != nil:
		issues = append(issues, MsgAmountInvalid)
	case cents <= 0:
		issues = append(issues, MsgAmountNotPositive)
	default:
		exp.Amount = Money{Cents: cents}
	}

	category := sanitize(raw["category"])
	if category == "" {
		issues = append(issues, MsgCategoryRequired)
	} else {
		exp.Category = category
	}

	exp.Description = sanitize(raw["description"])

	if len(issues) > 0 {
		// The echo keeps the submitted values untouched so the form can be
		// re-populated exactly as the user left it.
		fields := make(map[string]string, len(raw))
		for k, v := range raw {
			fields[k] = v
		}
		return Expense{}, &FieldErrors{Fields: fields, Issues: issues}
	}
	return exp, nil
}

// sanitize trims whitespace and strips control characters from a field value
// before it enters the typed record.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
