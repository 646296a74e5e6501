package services

import (
	"context"
	"strings"

	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/sheets"
)

// Messages surfaced to the form.
const (
	msgRecorded     = "Gasto registrado correctamente"
	msgCheckFields  = "Por favor revisa los campos."
	msgUnknownStore = "Error desconocido al conectar con la hoja de cálculo"
)

// SubmissionResult is what a form submission gets back. On validation failure
// Fields echoes the raw input and Issues lists every violated rule, in order.
type SubmissionResult struct {
	Message string
	Success bool
	Fields  map[string]string
	Issues  []string
}

// Intake runs the submission path: validate, display-format the date, append
// to the row-store. One attempt per submission; a failed append is final and
// the caller decides whether to resubmit.
type Intake struct {
	store  sheets.RowAppender
	logger *log.Logger
}

func NewIntake(store sheets.RowAppender, logger *log.Logger) *Intake {
	return &Intake{store: store, logger: logger}
}

func (s *Intake) Submit(ctx context.Context, raw map[string]string) SubmissionResult {
	exp, ferr := core.Validate(raw)
	if ferr != nil {
		return SubmissionResult{
			Message: msgCheckFields,
			Fields:  ferr.Fields,
			Issues:  ferr.Issues,
		}
	}

	// The date is reformatted here, after validation and before persistence,
	// so the validator never sees display formatting.
	row := exp.Row()

	if err := s.store.AppendRow(ctx, row); err != nil {
		s.logger.ErrorContext(ctx, "Failed to append expense row",
			"error", err,
			"category", row.Category,
			"amount_cents", row.Amount.Cents)
		msg := strings.TrimSpace(err.Error())
		if msg == "" {
			msg = msgUnknownStore
		}
		return SubmissionResult{Message: "Error: " + msg}
	}

	s.logger.InfoContext(ctx, "Expense recorded",
		"date", row.Date,
		"category", row.Category,
		"amount_cents", row.Amount.Cents)
	return SubmissionResult{Message: msgRecorded, Success: true}
}
