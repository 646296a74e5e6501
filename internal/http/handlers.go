package http

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"gastos/internal/core"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		Today      string
		Categories []string
	}{
		Today:      time.Now().Format("2006-01-02"),
		Categories: core.Categories,
	}
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.logger.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Formato de solicitud no válido</div>`))
		return
	}

	// Values go in untouched; cleanup happens inside validation so a failed
	// submission is echoed back exactly as it arrived.
	raw := map[string]string{
		"date":        r.Form.Get("date"),
		"amount":      r.Form.Get("amount"),
		"category":    r.Form.Get("category"),
		"description": r.Form.Get("description"),
	}

	res := s.intake.Submit(r.Context(), raw)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if !res.Success {
		if len(res.Issues) > 0 {
			w.WriteHeader(http.StatusUnprocessableEntity)
		} else {
			w.WriteHeader(http.StatusInternalServerError)
		}
		var b strings.Builder
		b.WriteString(`<div class="error"><p>` + template.HTMLEscapeString(res.Message) + `</p>`)
		if len(res.Issues) > 0 {
			b.WriteString(`<ul>`)
			for _, issue := range res.Issues {
				b.WriteString(`<li>` + template.HTMLEscapeString(issue) + `</li>`)
			}
			b.WriteString(`</ul>`)
		}
		b.WriteString(`</div>`)
		_, _ = w.Write([]byte(b.String()))
		return
	}

	s.dashboard.Invalidate()
	w.Header().Set("HX-Trigger", `{"expense:created": true}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">` + template.HTMLEscapeString(res.Message) + `</div>`))
}

// View models for the dashboard template.
type (
	barRow struct {
		Name   string
		Amount string
		Width  int
	}

	recentRow struct {
		Date        string
		Category    string
		Description string
		Amount      string
	}

	dashboardView struct {
		Total      string
		Count      int
		Average    string
		Categories []barRow
		Days       []barRow
		Recent     []recentRow
		HasData    bool
	}
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	sum := s.dashboard.Load(r.Context())

	data := dashboardView{
		Total:   formatAmount(sum.TotalSpent),
		Count:   sum.TransactionCount,
		Average: formatAmount(sum.AveragePerTransaction),
		HasData: sum.TransactionCount > 0,
	}

	var maxCat int64
	for _, c := range sum.ByCategory {
		if c.Amount.Cents > maxCat {
			maxCat = c.Amount.Cents
		}
	}
	for _, c := range sum.ByCategory {
		data.Categories = append(data.Categories, barRow{
			Name:   c.Name,
			Amount: formatAmount(c.Amount),
			Width:  barWidth(c.Amount.Cents, maxCat),
		})
	}

	var maxDay int64
	for _, d := range sum.ByDay {
		if d.Amount.Cents > maxDay {
			maxDay = d.Amount.Cents
		}
	}
	for _, d := range sum.ByDay {
		data.Days = append(data.Days, barRow{
			Name:   dayLabel(d.Date),
			Amount: formatAmount(d.Amount),
			Width:  barWidth(d.Amount.Cents, maxDay),
		})
	}

	for _, rec := range sum.Recent {
		desc := rec.Description
		if desc == "" {
			desc = "-"
		}
		data.Recent = append(data.Recent, recentRow{
			Date:        rec.Date,
			Category:    rec.Category,
			Description: desc,
			Amount:      formatAmount(rec.Amount),
		})
	}

	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Dashboard template execution failed", "error", err, "template", "dashboard.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// barWidth scales an amount to a rounded percent of the largest bar, keeping
// tiny values visible.
func barWidth(cents, max int64) int {
	if max <= 0 || cents <= 0 {
		return 0
	}
	width := int((cents*100 + max/2) / max)
	if width < 2 {
		width = 2
	}
	if width > 100 {
		width = 100
	}
	return width
}

// dayLabel shortens a display date to day/month, e.g. "15/1/2024" -> "15/1".
func dayLabel(date string) string {
	parts := strings.Split(date, "/")
	if len(parts) < 2 {
		return date
	}
	return parts[0] + "/" + parts[1]
}

func formatAmount(m core.Money) string {
	return "$" + m.String()
}
