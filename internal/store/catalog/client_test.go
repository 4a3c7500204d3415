package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := NewClient(ts.URL, ts.Client())
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, payload any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(payload))
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	t.Parallel()

	_, err := NewClient("  ", nil)
	require.Error(t, err)
}

func TestLoginSendsCredentialsAndDecodesAuth(t *testing.T) {
	t.Parallel()

	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "priya@example.com", body["email"])
		require.Equal(t, "priya123", body["password"])

		writeJSON(t, w, http.StatusOK, map[string]any{
			"user":  map[string]string{"id": "u-1", "name": "Priya", "email": "priya@example.com", "role": "user"},
			"token": "token-1",
		})
	})

	auth, err := client.Login(context.Background(), " priya@example.com ", "priya123")
	require.NoError(t, err)
	require.Equal(t, "token-1", auth.Token)
	require.Equal(t, "u-1", auth.User.ID)
}

func TestLoginBadCredentialsReturnsUnauthorized(t *testing.T) {
	t.Parallel()

	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Login(context.Background(), "a@b.com", "nope")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestListProductsFullPageImpliesNext(t *testing.T) {
	t.Parallel()

	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "10", r.URL.Query().Get("limit"))

		items := make([]Product, 10)
		for i := range items {
			items[i] = Product{ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Product %d", i), Price: 9.99}
		}
		writeJSON(t, w, http.StatusOK, items)
	})

	page, err := client.ListProducts(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 10)
	require.Equal(t, 2, page.Page)
	require.True(t, page.HasNext, "a full page without a total must imply another page")
}

func TestListProductsShortPageEndsPagination(t *testing.T) {
	t.Parallel()

	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, make([]Product, 7))
	})

	page, err := client.ListProducts(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 7)
	require.False(t, page.HasNext)
}

func TestListProductsEnvelopeTotalIsExact(t *testing.T) {
	t.Parallel()

	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		// 20 products total: page 2 of 10 is full yet final.
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data":  make([]Product, 10),
			"total": 20,
		})
	})

	page, err := client.ListProducts(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 10)
	require.False(t, page.HasNext, "reported total must beat the full-page heuristic")
}

func TestListProductsNormalisesPage(t *testing.T) {
	t.Parallel()

	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1", r.URL.Query().Get("page"))
		require.Equal(t, "10", r.URL.Query().Get("limit"))
		writeJSON(t, w, http.StatusOK, []Product{})
	})

	page, err := client.ListProducts(context.Background(), -3, 0)
	require.NoError(t, err)
	require.Equal(t, 1, page.Page)
	require.Equal(t, DefaultPageLimit, page.Limit)
}

func TestGetProductEnvelopeAndBareObject(t *testing.T) {
	t.Parallel()

	enveloped := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/p1", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": Product{ID: "p1", Name: "Shampoo", Price: 24.99},
		})
	})
	product, err := enveloped.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, "Shampoo", product.Name)

	bare := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, Product{ID: "p1", Name: "Shampoo", Price: 24.99})
	})
	product, err = bare.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, "Shampoo", product.Name)
}

func TestGetProductNotFound(t *testing.T) {
	t.Parallel()

	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetProduct(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateProductSendsBearerToken(t *testing.T) {
	t.Parallel()

	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))

		var input ProductInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		require.Equal(t, "Face Serum", input.Name)

		writeJSON(t, w, http.StatusCreated, Product{ID: "p9", Name: input.Name})
	})

	product, err := client.CreateProduct(context.Background(), "admin-token", ProductInput{Name: "Face Serum", Price: 39.50})
	require.NoError(t, err)
	require.Equal(t, "p9", product.ID)
}

func TestDeleteProductAcceptsNoContent(t *testing.T) {
	t.Parallel()

	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/products/p1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteProduct(context.Background(), "t", "p1"))
}

func TestListContactsSendsTokenAndPaginates(t *testing.T) {
	t.Parallel()

	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/contacts", r.URL.Path)
		require.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data":  make([]ContactMessage, 10),
			"total": 35,
		})
	})

	page, err := client.ListContacts(context.Background(), "admin-token", 3, 10)
	require.NoError(t, err)
	require.True(t, page.HasNext)
}

func TestBackendErrorCarriesMessage(t *testing.T) {
	t.Parallel()

	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, map[string]string{
			"code":    "validation_failed",
			"message": "price must be positive",
		})
	})

	_, err := client.CreateProduct(context.Background(), "t", ProductInput{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "validation_failed")
	require.Contains(t, err.Error(), "price must be positive")
}

func TestHasNextPage(t *testing.T) {
	t.Parallel()

	total := func(n int) *int { return &n }

	cases := []struct {
		name  string
		count int
		page  int
		limit int
		total *int
		want  bool
	}{
		{"full page no total", 10, 1, 10, nil, true},
		{"short page no total", 7, 1, 10, nil, false},
		{"empty page no total", 0, 2, 10, nil, false},
		{"total says more", 10, 1, 10, total(25), true},
		{"total exact multiple", 10, 2, 10, total(20), false},
		{"total beats full page", 10, 3, 10, total(30), false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, hasNextPage(tc.count, tc.page, tc.limit, tc.total))
		})
	}
}
