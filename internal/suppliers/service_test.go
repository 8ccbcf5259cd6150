package suppliers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"steeldesk/internal/auth"
	"steeldesk/internal/gateway"
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

func TestRecordShipmentPostsAllocatedTotals(t *testing.T) {
	due := 1000.0
	var posted models.Shipment

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/suppliers/4":
			json.NewEncoder(w).Encode(models.Supplier{ID: 4, Name: "Chittagong Steel", DueAmount: due})
		case r.Method == http.MethodPost && r.URL.Path == "/api/suppliers/shipments":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
			due = 1500 // server applies the same allocation
			posted.ID = 9
			json.NewEncoder(w).Encode(posted)
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))

	res, err := svc.RecordShipment(context.Background(), ShipmentInput{
		SupplierID:     4,
		SupplierName:   "Chittagong Steel",
		Date:           "2026-02-01",
		PurchaseAmount: 2000,
		LaborCost:      100,
		TransportCost:  50,
		PaidAmount:     1500,
	})
	require.NoError(t, err)

	// The 1500 payment retires the 1000 existing due first, leaving 500
	// against the 2000 purchase; labor and transport stay on the record.
	assert.Equal(t, 1000.0, res.Allocation.PaidToExisting)
	assert.Equal(t, 1500.0, res.Allocation.DueFromPurchase)
	assert.Equal(t, 1500.0, res.Allocation.NewSupplierDue)
	assert.Equal(t, 2150.0, posted.TotalAmount)
	assert.Equal(t, 650.0, posted.DueAmount)

	assert.False(t, res.Provisional)
	assert.Equal(t, 1500.0, res.Supplier.DueAmount)
	assert.Equal(t, int64(9), res.Shipment.ID)
}

func TestRecordShipmentProvisionalWhenRefetchFails(t *testing.T) {
	var gets int
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/suppliers/4":
			gets++
			if gets > 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			json.NewEncoder(w).Encode(models.Supplier{ID: 4, Name: "Chittagong Steel", DueAmount: 0})
		case r.Method == http.MethodPost && r.URL.Path == "/api/suppliers/shipments":
			var sh models.Shipment
			json.NewDecoder(r.Body).Decode(&sh)
			json.NewEncoder(w).Encode(sh)
		}
	}))

	res, err := svc.RecordShipment(context.Background(), ShipmentInput{
		SupplierID:     4,
		SupplierName:   "Chittagong Steel",
		Date:           "2026-02-01",
		PurchaseAmount: 3000,
		PaidAmount:     1000,
	})
	require.NoError(t, err)

	assert.True(t, res.Provisional)
	assert.Equal(t, 2000.0, res.Supplier.DueAmount)
}

func TestRecordShipmentValidatesInput(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for invalid input")
	}))

	_, err := svc.RecordShipment(context.Background(), ShipmentInput{
		SupplierID:     4,
		SupplierName:   "Chittagong Steel",
		Date:           "2026-02-01",
		PurchaseAmount: -50,
	})
	assert.Error(t, err)
}

func TestCreateRejectsNegativeDue(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for invalid input")
	}))

	_, err := svc.Create(context.Background(), SupplierInput{Name: "X", DueAmount: -10})
	assert.Error(t, err)
}

func TestListPagination(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/suppliers", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("size"))
		json.NewEncoder(w).Encode(models.Page[models.Supplier]{
			Content:       []models.Supplier{{ID: 4, Name: "Chittagong Steel"}},
			Page:          2,
			Size:          50,
			TotalElements: 101,
			TotalPages:    3,
		})
	}))

	page, err := svc.List(context.Background(), 2, 50)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Content, 1)
}
