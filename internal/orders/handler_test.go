package orders

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudepo/sudepo/internal/customers"
	"github.com/sudepo/sudepo/internal/domain"
	"github.com/sudepo/sudepo/internal/store"
)

func newTestHandler() (*Handler, *store.Store) {
	st := store.New(nil, nil, nil)
	svc := NewService(st, customers.NewService(st), nil, nil)
	return NewHandler(slog.Default(), svc, nil), st
}

func testRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/orders", h.List)
	r.Post("/orders", h.Create)
	r.Get("/orders/{id}", h.Show)
	r.Put("/orders/{id}/status", h.UpdateStatus)
	r.Put("/orders/{id}/courier", h.Reassign)
	r.Put("/orders/{id}/payment", h.SetPayment)
	return r
}

func doJSON(t *testing.T, router chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const createBody = `{
	"customerName": "Ayşe Yılmaz",
	"phone": "0555 111 22 33",
	"district": "Çankaya",
	"neighborhood": "Kültür",
	"street": "Atatürk Cad.",
	"buildingNo": "5",
	"items": [{"productId": "p1", "productName": "Damacana 19L", "quantity": 2, "price": 50}],
	"totalAmount": 100,
	"source": "Telefon"
}`

func TestHandlerCreate(t *testing.T) {
	h, st := newTestHandler()
	router := testRouter(h)

	rec := doJSON(t, router, http.MethodPost, "/orders", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	snap := st.Snapshot()
	require.Len(t, snap.Orders, 1)
	o := snap.Orders[0]
	assert.Equal(t, domain.OrderStatusPending, o.Status)
	assert.Equal(t, domain.SourcePhone, o.Source)
	assert.Equal(t, "Çankaya, Kültür, Atatürk Cad. No:5", o.Address)
	require.Len(t, snap.Customers, 1)
}

func TestHandlerCreateValidation(t *testing.T) {
	h, _ := newTestHandler()
	router := testRouter(h)

	// Missing items.
	rec := doJSON(t, router, http.MethodPost, "/orders", `{"customerName":"A","phone":"0555","items":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/orders", `{broken`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerUpdateStatus(t *testing.T) {
	h, st := newTestHandler()
	router := testRouter(h)
	o := st.InsertOrder(domain.Order{Status: domain.OrderStatusPending})

	rec := doJSON(t, router, http.MethodPut, "/orders/"+o.ID+"/status", `{"status":"Teslim Edildi"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got, _ := st.Snapshot().FindOrder(o.ID)
	assert.Equal(t, domain.OrderStatusDelivered, got.Status)

	// Unknown id writes nothing and signals an empty body.
	rec = doJSON(t, router, http.MethodPut, "/orders/missing/status", `{"status":"Yolda"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/orders/"+o.ID+"/status", `{"status":"Uçtu"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerReassign(t *testing.T) {
	h, st := newTestHandler()
	router := testRouter(h)
	courier := st.PutCourier(domain.Courier{Name: "Mehmet"})
	o := st.InsertOrder(domain.Order{Status: domain.OrderStatusPending})

	rec := doJSON(t, router, http.MethodPut, "/orders/"+o.ID+"/courier", `{"courierId":"`+courier.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got, _ := st.Snapshot().FindOrder(o.ID)
	assert.Equal(t, "Mehmet", got.CourierName)

	rec = doJSON(t, router, http.MethodPut, "/orders/missing/courier", `{"courierId":""}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandlerSetPayment(t *testing.T) {
	h, st := newTestHandler()
	router := testRouter(h)
	o := st.InsertOrder(domain.Order{Status: domain.OrderStatusDelivered})

	rec := doJSON(t, router, http.MethodPut, "/orders/"+o.ID+"/payment", `{"paymentMethod":"POS"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got, _ := st.Snapshot().FindOrder(o.ID)
	assert.Equal(t, domain.PaymentPOS, got.PaymentMethod)

	rec = doJSON(t, router, http.MethodPut, "/orders/"+o.ID+"/payment", `{"paymentMethod":"Çek"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerListAndShow(t *testing.T) {
	h, st := newTestHandler()
	router := testRouter(h)
	o := st.InsertOrder(domain.Order{Status: domain.OrderStatusPending, Source: domain.SourceGetir})
	st.InsertOrder(domain.Order{Status: domain.OrderStatusDelivered, Source: domain.SourcePhone})

	rec := doJSON(t, router, http.MethodGet, "/orders?status=Bekliyor", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)

	rec = doJSON(t, router, http.MethodGet, "/orders/"+o.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), o.ID)

	rec = doJSON(t, router, http.MethodGet, "/orders/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
