package sales

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"steeldesk/internal/auth"
	"steeldesk/internal/gateway"
	"steeldesk/internal/invoice"
	"steeldesk/pkg/models"
)

func newTestService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	sessionFile := filepath.Join(t.TempDir(), "session.json")
	data, err := json.Marshal(map[string]any{"token": signed, "user": map[string]any{"username": "rahim"}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(sessionFile, data, 0600))

	authClient := auth.NewClient(srv.URL, sessionFile, 5*time.Second)
	return NewService(gateway.NewClient(srv.URL, authClient, 5*time.Second))
}

func testDraft() *invoice.Draft {
	d := invoice.NewDraft(3, "Mr. Rahman", "2026-02-01")
	d.AddLine(11, "MS Rod 12mm", "ton", 2, 65000)
	d.AddLine(12, "Angle Bar", "pcs", 1, 60000)
	d.Discount = 1000
	d.OtherCost = 500
	d.AmountPaid = 150000
	d.PaymentMethod = "Cash"
	return d
}

func TestCreateSendsComputedTotals(t *testing.T) {
	var body map[string]any
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/sales", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Write([]byte(`{"id":42,"saleCode":"INV-0042"}`))
	}))

	sale, err := svc.Create(context.Background(), testDraft())
	require.NoError(t, err)

	assert.Equal(t, 190000.0, body["subtotal"])
	assert.Equal(t, 189500.0, body["grandTotal"])
	assert.Equal(t, 39500.0, body["dueAmount"])
	assert.Equal(t, "Cash", body["paymentMethod"])

	// The server returned a bare envelope; the reconciled sale still has
	// everything the invoice needs, with server fields untouched.
	assert.Equal(t, "INV-0042", sale.SaleCode)
	assert.Equal(t, "Mr. Rahman", sale.CustomerName)
	require.Len(t, sale.Lines, 2)
	assert.Equal(t, 189500.0, sale.GrandTotal)
}

func TestCreateServerValuesWin(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Server recomputed a different grand total (say a rounding rule).
		json.NewEncoder(w).Encode(models.Sale{
			ID:         42,
			SaleCode:   "INV-0042",
			GrandTotal: 189000,
			DueAmount:  39000,
		})
	}))

	sale, err := svc.Create(context.Background(), testDraft())
	require.NoError(t, err)
	assert.Equal(t, 189000.0, sale.GrandTotal)
	assert.Equal(t, 39000.0, sale.DueAmount)
}

func TestCreateServerZeroDiscountStands(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The server recomputed the discount to zero. An explicit zero is a
		// value, not an omission, and must not be replaced by the draft's.
		w.Write([]byte(`{"id":42,"saleCode":"INV-0042","discount":0,"grandTotal":189000,"dueAmount":39000}`))
	}))

	sale, err := svc.Create(context.Background(), testDraft())
	require.NoError(t, err)

	assert.Equal(t, 0.0, sale.Discount)
	assert.Equal(t, 189000.0, sale.GrandTotal)
	assert.Equal(t, 39000.0, sale.DueAmount)

	// Fields absent from the response are still filled from the draft.
	assert.Equal(t, 190000.0, sale.Subtotal)
	assert.Equal(t, "Mr. Rahman", sale.CustomerName)
}

func TestCreateRejectsInvalidDraft(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an invalid draft")
	}))

	empty := invoice.NewDraft(3, "Mr. Rahman", "2026-02-01")
	_, err := svc.Create(context.Background(), empty)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestCreateFailureLeavesNothingBehind(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("insufficient stock"))
	}))

	draft := testDraft()
	_, err := svc.Create(context.Background(), draft)

	var httpErr *gateway.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Status)

	// The draft is untouched and can be resubmitted as-is.
	assert.Len(t, draft.Lines, 2)
	assert.Equal(t, 189500.0, draft.Totals().GrandTotal)
}

func TestRenderInvoice(t *testing.T) {
	sale := &models.Sale{
		SaleCode:     "INV-0042",
		CustomerName: "Mr. Rahman",
		Date:         "2026-02-01",
		Lines: []models.SaleLine{
			{Name: "MS Rod 12mm", Unit: "ton", Quantity: 2, Rate: 65000, Total: 130000},
		},
		Subtotal:      130000,
		GrandTotal:    130000,
		AmountPaid:    100000,
		DueAmount:     30000,
		PaymentMethod: "Cash",
	}

	out := RenderInvoice(sale)
	assert.Contains(t, out, "INV-0042")
	assert.Contains(t, out, "Mr. Rahman")
	assert.Contains(t, out, "MS Rod 12mm")
	assert.Contains(t, out, "2 ton")
	assert.Contains(t, out, "Tk 130000.00")
	assert.Contains(t, out, "Due Amount   : Tk 30000.00")
}

func TestListPagination(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/sales", r.URL.Path)
		assert.Equal(t, "0", r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode(models.Page[models.Sale]{
			Content:       []models.Sale{{ID: 1, SaleCode: "INV-0001"}},
			TotalElements: 1,
			TotalPages:    1,
		})
	}))

	page, err := svc.List(context.Background(), 0, 20)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "INV-0001", page.Content[0].SaleCode)
}
