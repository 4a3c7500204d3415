package cart

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

	c := New()
	c.Add("p1", "Nourishing Shampoo", 24.99, 2)
	c.Add("p2", "Face Serum", 39.50, 1)

	rec := httptest.NewRecorder()
	require.NoError(t, mgr.Save(rec, c))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "meenora_cart", cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(cookies[0])

	loaded := mgr.Load(req)
	require.Len(t, loaded.Lines(), 2)
	line, ok := loaded.Line("p1")
	require.True(t, ok)
	require.Equal(t, 2, line.Quantity)
	require.InDelta(t, 89.48, loaded.Total(), 1e-9)
}

func TestManagerLoadMissingCookieYieldsEmptyCart(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t)
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)

	c := mgr.Load(req)
	require.True(t, c.Empty())
}

func TestManagerLoadTamperedCookieYieldsEmptyCart(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t)
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "meenora_cart", Value: "not-a-valid-value"})

	c := mgr.Load(req)
	require.True(t, c.Empty())
}

func TestManagerSaveEmptyCartClearsCookie(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t)

	rec := httptest.NewRecorder()
	require.NoError(t, mgr.Save(rec, New()))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, -1, cookies[0].MaxAge)
	require.Empty(t, cookies[0].Value)
}
