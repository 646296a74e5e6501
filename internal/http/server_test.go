package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/services"
	"gastos/internal/sheets/memory"
)

type failingStore struct{}

func (failingStore) AppendRow(context.Context, core.Record) error {
	return errors.New("append rejected")
}

func (failingStore) ListRows(context.Context) ([]core.RawRow, error) {
	return nil, errors.New("read rejected")
}

func testLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil), Component: "test"})
}

func newTestServer(store interface {
	AppendRow(context.Context, core.Record) error
	ListRows(context.Context) ([]core.RawRow, error)
}) *Server {
	logger := testLogger()
	intake := services.NewIntake(store, logger)
	dashboard := services.NewDashboard(store, logger)
	return NewServer(":0", intake, dashboard, logger)
}

func postForm(srv *Server, values url.Values) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestIndexAndHealth(t *testing.T) {
	srv := newTestServer(memory.New())

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("index status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Registrar Gasto") {
		t.Fatal("index body missing heading")
	}
	for _, cat := range core.Categories {
		if !strings.Contains(rr.Body.String(), cat) {
			t.Fatalf("index body missing category %q", cat)
		}
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}

	rr = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown path status=%d", rr.Code)
	}
}

func TestCreateExpenseEndToEnd(t *testing.T) {
	store := memory.New()
	srv := newTestServer(store)

	// Wrong method
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/expenses", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}

	// Validation failure: empty date, no write
	rr = postForm(srv, url.Values{"date": {""}, "amount": {"10"}, "category": {"Ocio"}})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), core.MsgDateRequired) {
		t.Fatalf("body missing required-date issue: %s", rr.Body.String())
	}
	if store.Len() != 0 {
		t.Fatal("validation failure must not reach the store")
	}

	// Success
	rr = postForm(srv, url.Values{
		"date":        {"2024-01-15"},
		"amount":      {"49.99"},
		"category":    {"Alimentación"},
		"description": {""},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Gasto registrado correctamente") {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}

	rows, err := store.ListRows(context.Background())
	if err != nil || len(rows) != 1 {
		t.Fatalf("rows=%v err=%v", rows, err)
	}
	if rows[0].Amount != "49.99" || rows[0].Category != "Alimentación" {
		t.Fatalf("unexpected stored row: %+v", rows[0])
	}
}

func TestCreateExpenseCleansPaddedFields(t *testing.T) {
	store := memory.New()
	srv := newTestServer(store)

	rr := postForm(srv, url.Values{
		"date":        {"2024-01-15"},
		"amount":      {" 10 "},
		"category":    {"  Ocio  "},
		"description": {" cine "},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rows, err := store.ListRows(context.Background())
	if err != nil || len(rows) != 1 {
		t.Fatalf("rows=%v err=%v", rows, err)
	}
	if rows[0].Category != "Ocio" || rows[0].Description != "cine" || rows[0].Amount != "10.00" {
		t.Fatalf("padding should be stripped before persisting: %+v", rows[0])
	}
}

func TestCreateExpensePersistenceFailure(t *testing.T) {
	srv := newTestServer(failingStore{})

	rr := postForm(srv, url.Values{"date": {"2024-01-15"}, "amount": {"10"}, "category": {"Ocio"}})
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Error:") {
		t.Fatalf("expected error message, got %s", rr.Body.String())
	}
}

func TestDashboardRendersSummary(t *testing.T) {
	store := memory.New()
	srv := newTestServer(store)

	rr := postForm(srv, url.Values{"date": {"2024-01-15"}, "amount": {"49.99"}, "category": {"Alimentación"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("submit status=%d", rr.Code)
	}

	rr = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("dashboard status=%d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"$49.99", "Alimentación", "15/1/2024", "Últimos Movimientos"} {
		if !strings.Contains(body, want) {
			t.Fatalf("dashboard body missing %q", want)
		}
	}
}

func TestDashboardDegradesToEmptyOnReadError(t *testing.T) {
	srv := newTestServer(failingStore{})

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("dashboard must render despite read errors, status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "No hay gastos registrados") {
		t.Fatalf("expected empty-state body, got: %s", rr.Body.String())
	}
}

func TestBarWidth(t *testing.T) {
	cases := []struct {
		cents, max int64
		want       int
	}{
		{0, 100, 0},
		{100, 100, 100},
		{50, 100, 50},
		{1, 1000, 2},    // tiny values stay visible
		{200, 100, 100}, // capped
		{10, 0, 0},
	}
	for _, tc := range cases {
		if got := barWidth(tc.cents, tc.max); got != tc.want {
			t.Errorf("barWidth(%d, %d) = %d, want %d", tc.cents, tc.max, got, tc.want)
		}
	}
}

func TestDayLabel(t *testing.T) {
	if got := dayLabel("15/1/2024"); got != "15/1" {
		t.Fatalf("dayLabel = %q", got)
	}
	if got := dayLabel("oddball"); got != "oddball" {
		t.Fatalf("dayLabel fallback = %q", got)
	}
}
