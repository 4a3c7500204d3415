package wishlist

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	mgr, err := NewManager(Config{
		HashKey:  []byte("12345678901234567890123456789012"),
		BlockKey: []byte("abcdefghijklmnopqrstuv0123456789"),
		Lifetime: time.Hour,
		Now:      func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return mgr
}

func TestManagerRequiresHashKey(t *testing.T) {
	t.Parallel()

	_, err := NewManager(Config{})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestManagerRoundTrip(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t)

	w := New()
	w.Add(Item{ProductID: "p1", Name: "Nourishing Shampoo", Price: 24.99})
	w.Add(Item{ProductID: "p2", Name: "Face Serum", Price: 39.50})

	rec := httptest.NewRecorder()
	require.NoError(t, mgr.Save(rec, w))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "meenora_wishlist", cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookies[0])

	loaded := mgr.Load(req)
	require.Equal(t, 2, loaded.Count())
	require.True(t, loaded.Contains("p1"))
	require.True(t, loaded.Contains("p2"))
}

func TestManagerLoadMissingCookieYieldsEmptyList(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	require.True(t, mgr.Load(req).Empty())
}

func TestManagerLoadTamperedCookieYieldsEmptyList(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "meenora_wishlist", Value: "not-a-valid-value"})

	require.True(t, mgr.Load(req).Empty())
}

func TestManagerSaveEmptyListClearsCookie(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t)

	rec := httptest.NewRecorder()
	require.NoError(t, mgr.Save(rec, New()))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, -1, cookies[0].MaxAge)
	require.Empty(t, cookies[0].Value)
}
