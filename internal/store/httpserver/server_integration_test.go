package httpserver_test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"meenora.in/store/internal/store/testutil"
)

// newBrowser returns a cookie-jar client that follows redirects, emulating a
// storefront visitor.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func noRedirect(client *http.Client) *http.Client {
	copied := *client
	copied.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &copied
}

func getDoc(t *testing.T, client *http.Client, rawURL string) *goquery.Document {
	t.Helper()

	resp, err := client.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "GET %s", rawURL)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return testutil.ParseHTML(t, body)
}

// csrfToken fetches a page and pulls the embedded form token.
func csrfToken(t *testing.T, client *http.Client, pageURL string) string {
	t.Helper()

	doc := getDoc(t, client, pageURL)
	token, ok := doc.Find(`input[name="csrf_token"]`).First().Attr("value")
	require.True(t, ok, "page %s should embed a csrf token", pageURL)
	require.NotEmpty(t, token)
	return token
}

func postForm(t *testing.T, client *http.Client, rawURL string, form url.Values) *http.Response {
	t.Helper()

	resp, err := client.PostForm(rawURL, form)
	require.NoError(t, err)
	return resp
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) {
	t.Helper()

	token := csrfToken(t, client, baseURL+"/login")
	resp := postForm(t, client, baseURL+"/login", url.Values{
		"csrf_token": {token},
		"email":      {email},
		"password":   {password},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHomeRendersStorefront(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	doc := getDoc(t, newBrowser(t), ts.URL+"/")

	require.Contains(t, doc.Find("title").Text(), "Meenora")
	require.Equal(t, "Radiant Beauty, Naturally", doc.Find(".hero h1").Text())
	require.Greater(t, doc.Find(".featured-products .product-card").Length(), 0)
}

func TestShopListsSeededProducts(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	doc := getDoc(t, newBrowser(t), ts.URL+"/shop")

	require.Equal(t, 6, doc.Find(".product-grid .product-card").Length())
	// Six products fit on one page; Next must be disabled.
	require.Equal(t, 1, doc.Find(".pagination span.disabled").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.Text(), "Next")
	}).Length())
}

func TestProductDetailAndUnknownProduct(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := newBrowser(t)

	doc := getDoc(t, client, ts.URL+"/products/p1")
	require.Contains(t, doc.Find("h1").Text(), "Nourishing Shampoo")

	resp, err := noRedirect(client).Get(ts.URL + "/products/nope")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCheckoutRequiresLogin(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := noRedirect(newBrowser(t))

	resp, err := client.Get(ts.URL + "/checkout")
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/login?next=%2Fcheckout", resp.Header.Get("Location"))
}

func TestAdminRoutesRedirectAnonymousToAdminPortal(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := noRedirect(newBrowser(t))

	resp, err := client.Get(ts.URL + "/admin/products")
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/admin/login?next=%2Fadmin%2Fproducts", resp.Header.Get("Location"))
}

func TestCustomerLoginAndDashboard(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := newBrowser(t)

	login(t, client, ts.URL, "priya@example.com", "priya123")

	doc := getDoc(t, client, ts.URL+"/dashboard")
	require.Contains(t, doc.Find("h1").Text(), "Priya")
}

func TestCustomerCannotReachAdminConsole(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := newBrowser(t)

	login(t, client, ts.URL, "priya@example.com", "priya123")

	resp, err := noRedirect(client).Get(ts.URL + "/admin/products")
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestAdminBouncedFromCustomerPortal(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := newBrowser(t)

	token := csrfToken(t, client, ts.URL+"/login")
	resp := postForm(t, noRedirect(client), ts.URL+"/login", url.Values{
		"csrf_token": {token},
		"email":      {"admin@meenora.in"},
		"password":   {"admin123"},
	})
	resp.Body.Close()

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/login", resp.Header.Get("Location"))
}

func TestCustomerRejectedFromAdminPortal(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := newBrowser(t)

	token := csrfToken(t, client, ts.URL+"/admin/login")
	resp := postForm(t, noRedirect(client), ts.URL+"/admin/login", url.Values{
		"csrf_token": {token},
		"email":      {"priya@example.com"},
		"password":   {"priya123"},
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCartFlow(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := newBrowser(t)

	token := csrfToken(t, client, ts.URL+"/shop")

	// Add twice: the line merges rather than duplicating.
	for i := 0; i < 2; i++ {
		resp := postForm(t, client, ts.URL+"/cart/add", url.Values{
			"csrf_token": {token},
			"product_id": {"p1"},
		})
		resp.Body.Close()
	}

	doc := getDoc(t, client, ts.URL+"/cart")
	require.Equal(t, 1, doc.Find(".cart-table tbody tr").Length())
	require.Contains(t, doc.Find(".cart-total").Text(), "$49.98")
	require.Contains(t, doc.Find(".nav-cart").Text(), "(2)")

	// Quantity zero removes the line.
	resp := postForm(t, client, ts.URL+"/cart/update", url.Values{
		"csrf_token": {token},
		"product_id": {"p1"},
		"quantity":   {"0"},
	})
	resp.Body.Close()

	doc = getDoc(t, client, ts.URL+"/cart")
	require.Equal(t, 0, doc.Find(".cart-table tbody tr").Length())
	require.Contains(t, doc.Text(), "Your cart is empty")
}

func TestCheckoutFlowClearsCartAndRecordsOrder(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := newBrowser(t)

	login(t, client, ts.URL, "priya@example.com", "priya123")
	token := csrfToken(t, client, ts.URL+"/shop")

	resp := postForm(t, client, ts.URL+"/cart/add", url.Values{
		"csrf_token": {token},
		"product_id": {"p1"},
		"quantity":   {"2"},
	})
	resp.Body.Close()

	resp, err := client.PostForm(ts.URL+"/checkout", url.Values{
		"csrf_token": {token},
		"full_name":  {"Priya Sharma"},
		"address":    {"12 Lake Road"},
	})
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	confirmation := testutil.ParseHTML(t, body)
	require.Contains(t, confirmation.Find("h1").Text(), "Order placed")
	require.Contains(t, confirmation.Find(".cart-total").Text(), "$49.98")

	// The cart is gone and the dashboard shows the order.
	doc := getDoc(t, client, ts.URL+"/cart")
	require.Contains(t, doc.Text(), "Your cart is empty")

	doc = getDoc(t, client, ts.URL+"/dashboard")
	require.Equal(t, 1, doc.Find(".order-history tbody tr").Length())
}

func TestLogoutEndsSession(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := newBrowser(t)

	login(t, client, ts.URL, "priya@example.com", "priya123")
	token := csrfToken(t, client, ts.URL+"/shop")

	resp := postForm(t, client, ts.URL+"/logout", url.Values{"csrf_token": {token}})
	resp.Body.Close()

	redirect, err := noRedirect(client).Get(ts.URL + "/dashboard")
	require.NoError(t, err)
	redirect.Body.Close()
	require.Equal(t, http.StatusFound, redirect.StatusCode)
	require.Contains(t, redirect.Header.Get("Location"), "/login")
}

func TestAdminProductCRUDThroughConsole(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := newBrowser(t)

	// Sign in through the admin portal.
	token := csrfToken(t, client, ts.URL+"/admin/login")
	resp := postForm(t, client, ts.URL+"/admin/login", url.Values{
		"csrf_token": {token},
		"email":      {"admin@meenora.in"},
		"password":   {"admin123"},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Create.
	resp = postForm(t, client, ts.URL+"/admin/products", url.Values{
		"csrf_token":  {token},
		"name":        {"Overnight Repair Mask"},
		"description": {"An intensive overnight treatment for damaged hair."},
		"price":       {"34.00"},
		"category":    {"Hair Care"},
		"inStock":     {"on"},
	})
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	listing := testutil.ParseHTML(t, body)
	require.Contains(t, listing.Text(), "Overnight Repair Mask")
	require.Contains(t, listing.Find(".flash-success").Text(), "created")

	// Validation failure keeps the operator on the form with field errors.
	resp = postForm(t, client, ts.URL+"/admin/products", url.Values{
		"csrf_token":  {token},
		"name":        {"X"},
		"description": {"too short"},
		"price":       {"-1"},
	})
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	form := testutil.ParseHTML(t, body)
	require.Greater(t, form.Find(".field-error").Length(), 2)
}

func TestContactFormSubmission(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := newBrowser(t)

	token := csrfToken(t, client, ts.URL+"/contact")
	resp := postForm(t, client, ts.URL+"/contact", url.Values{
		"csrf_token": {token},
		"name":       {"Visitor"},
		"email":      {"visitor@example.com"},
		"message":    {"Do you ship internationally?"},
	})
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc := testutil.ParseHTML(t, body)
	require.Contains(t, doc.Find(".flash-success").Text(), "Visitor")
}

func TestUnknownPathRedirectsHome(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := noRedirect(newBrowser(t))

	resp, err := client.Get(ts.URL + "/no/such/page")
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

func TestBlogRendersMarkdown(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := newBrowser(t)

	doc := getDoc(t, client, ts.URL+"/blog")
	require.Equal(t, 2, doc.Find(".blog-card").Length())

	post := getDoc(t, client, ts.URL+"/blog/blog1")
	require.Contains(t, post.Find("h1").Text(), "Five Habits")
	require.Equal(t, 1, post.Find(".blog-body h2").Length(), "markdown heading should render as h2")
}

func TestShopCategoryFilterAndSearch(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := newBrowser(t)

	doc := getDoc(t, client, ts.URL+"/shop?category=skincare")
	require.Equal(t, 3, doc.Find(".product-grid .product-card").Length())
	require.NotContains(t, doc.Find(".product-grid").Text(), "Shampoo")

	doc = getDoc(t, client, ts.URL+"/shop?q=shampoo")
	require.Equal(t, 1, doc.Find(".product-grid .product-card").Length())
	require.Contains(t, doc.Find(".product-grid").Text(), "Nourishing Shampoo")

	doc = getDoc(t, client, ts.URL+"/shop?q=no+such+product")
	require.Equal(t, 0, doc.Find(".product-grid .product-card").Length())
	require.Contains(t, doc.Text(), "No products match your filters.")
}

func TestShopConcernSlugMatchesLikeCategory(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	doc := getDoc(t, newBrowser(t), ts.URL+"/shop?category=hair-growth")

	cards := doc.Find(".product-grid .product-card")
	require.Equal(t, 2, cards.Length())
	require.Contains(t, cards.Text(), "Nourishing Shampoo")
	require.Contains(t, cards.Text(), "Herbal Hair Oil")
}

func TestShopSortByPrice(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	doc := getDoc(t, newBrowser(t), ts.URL+"/shop?sort=price-low")

	first := doc.Find(".product-grid .product-card").First()
	require.Contains(t, first.Text(), "Herbal Hair Oil")

	doc = getDoc(t, newBrowser(t), ts.URL+"/shop?sort=price-high")
	first = doc.Find(".product-grid .product-card").First()
	require.Contains(t, first.Text(), "Sunscreen")
}

func TestWishlistFlow(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := newBrowser(t)

	token := csrfToken(t, client, ts.URL+"/products/p1")

	resp := postForm(t, client, ts.URL+"/wishlist/add", url.Values{
		"csrf_token": {token},
		"product_id": {"p1"},
	})
	resp.Body.Close()

	doc := getDoc(t, client, ts.URL+"/wishlist")
	require.Equal(t, 1, doc.Find(".wishlist-table tbody tr").Length())
	require.Contains(t, doc.Find(".wishlist-table").Text(), "Nourishing Shampoo")
	require.Contains(t, doc.Find(".nav-wishlist").Text(), "(1)")

	// Adding the same product again keeps a single entry.
	resp = postForm(t, client, ts.URL+"/wishlist/add", url.Values{
		"csrf_token": {token},
		"product_id": {"p1"},
	})
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	already := testutil.ParseHTML(t, body)
	require.Contains(t, already.Find(".flash-info").Text(), "already in your wishlist")
	require.Contains(t, already.Find(".nav-wishlist").Text(), "(1)")

	// The product page flips its button once the product is saved.
	detail := getDoc(t, client, ts.URL+"/products/p1")
	require.Equal(t, 1, detail.Find(`form[action="/wishlist/remove"]`).Length())

	resp = postForm(t, client, ts.URL+"/wishlist/remove", url.Values{
		"csrf_token": {token},
		"product_id": {"p1"},
	})
	resp.Body.Close()

	doc = getDoc(t, client, ts.URL+"/wishlist")
	require.Equal(t, 0, doc.Find(".wishlist-table tbody tr").Length())
	require.Contains(t, doc.Text(), "Your wishlist is empty")
}

func TestDashboardShowsWishlist(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := newBrowser(t)

	login(t, client, ts.URL, "priya@example.com", "priya123")
	token := csrfToken(t, client, ts.URL+"/shop")

	resp := postForm(t, client, ts.URL+"/wishlist/add", url.Values{
		"csrf_token": {token},
		"product_id": {"p5"},
	})
	resp.Body.Close()

	doc := getDoc(t, client, ts.URL+"/dashboard")
	require.Contains(t, doc.Find(".wishlist-summary h2").Text(), "My wishlist (1)")
	require.Contains(t, doc.Find(".wishlist-summary").Text(), "Herbal Hair Oil")
}

func TestPagesSendOneContentTypeHeader(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := newBrowser(t)

	for _, path := range []string{"/", "/shop", "/products/p1", "/wishlist"} {
		resp, err := client.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()

		values := resp.Header.Values("Content-Type")
		require.Len(t, values, 1, "GET %s", path)
		require.Contains(t, values[0], "text/html")
	}
}
