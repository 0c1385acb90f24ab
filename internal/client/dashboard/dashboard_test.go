package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpClient "github.com/iudanet/procure/internal/client/api"
	"github.com/iudanet/procure/internal/client/cache"
	"github.com/iudanet/procure/internal/validation"
	"github.com/iudanet/procure/pkg/api"
)

type fixture struct {
	dash *Dashboard

	projectListCalls atomic.Int64
	createCalls      atomic.Int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/projects", func(w http.ResponseWriter, r *http.Request) {
		n := f.projectListCalls.Add(1)
		resp := api.ListResponse[api.Project]{
			Data: []api.Project{
				{ProjectID: n, Name: "Bridge", Type: "Government", Status: "Planned"},
			},
			Pagination: api.Pagination{Page: 1, PageSize: 20, TotalPages: 1, TotalRecords: 1},
		}
		writeJSON(t, w, resp)
	})
	mux.HandleFunc("POST /api/v1/projects", func(w http.ResponseWriter, r *http.Request) {
		f.createCalls.Add(1)
		var in validation.ProjectInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		w.WriteHeader(http.StatusCreated)
		writeJSON(t, w, api.Response[api.Project]{
			Data: api.Project{ProjectID: 99, Name: in.Name, Type: in.Type, Status: in.Status},
		})
	})
	mux.HandleFunc("GET /api/v1/invoices/7", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, api.Response[api.Invoice]{
			Data: api.Invoice{InvoiceID: 7, InvoiceNumber: "INV-001", TotalAmount: 1000},
		})
	})
	mux.HandleFunc("GET /api/v1/payments", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("invoiceId"))
		writeJSON(t, w, api.ListResponse[api.Payment]{
			Data: []api.Payment{
				{PaymentID: 1, InvoiceID: 7, Amount: 300},
				{PaymentID: 2, InvoiceID: 7, Amount: 200},
			},
			Pagination: api.Pagination{Page: 1, PageSize: 20, TotalPages: 1, TotalRecords: 2},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	store := cache.New()
	t.Cleanup(store.Close)

	validate, err := validation.New()
	require.NoError(t, err)

	client := httpClient.NewClient(server.URL)
	f.dash = New(store, client, validate, nil)
	return f
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestListServesFromCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.dash.Projects.List(ctx, httpClient.ListParams{})
	require.NoError(t, err)

	second, err := f.dash.Projects.List(ctx, httpClient.ListParams{})
	require.NoError(t, err)

	assert.Equal(t, first.Data[0].ProjectID, second.Data[0].ProjectID)
	assert.Equal(t, int64(1), f.projectListCalls.Load())
}

func TestCreateInvalidatesListings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.dash.Projects.List(ctx, httpClient.ListParams{})
	require.NoError(t, err)
	// Отфильтрованный вариант списка кешируется отдельно
	_, err = f.dash.Projects.List(ctx, httpClient.ListParams{Page: 2})
	require.NoError(t, err)
	require.Equal(t, int64(2), f.projectListCalls.Load())

	_, err = f.dash.CreateProject(ctx, validation.ProjectInput{
		Name:   "Warehouse",
		Type:   "Private",
		Status: "Planned",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), f.createCalls.Load())

	// Оба варианта списка обязаны перечитаться
	_, err = f.dash.Projects.List(ctx, httpClient.ListParams{})
	require.NoError(t, err)
	_, err = f.dash.Projects.List(ctx, httpClient.ListParams{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), f.projectListCalls.Load())
}

func TestCreateProjectValidatesBeforeNetwork(t *testing.T) {
	f := newFixture(t)

	_, err := f.dash.CreateProject(context.Background(), validation.ProjectInput{
		Name:   "",
		Type:   "Municipal",
		Status: "Planned",
	})

	require.Error(t, err)
	var fe validation.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "name")
	assert.Contains(t, fe, "type")

	// Невалидная форма не уходит в сеть
	assert.Zero(t, f.createCalls.Load())
}

func TestOutstanding(t *testing.T) {
	f := newFixture(t)

	inv, outstanding, err := f.dash.Outstanding(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, "INV-001", inv.InvoiceNumber)
	assert.InDelta(t, 500.0, outstanding, 0.001)
}
