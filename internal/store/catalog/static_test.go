package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"meenora.in/store/internal/store/session"
)

func adminToken(t *testing.T, s *Static) string {
	t.Helper()

	auth, err := s.Login(context.Background(), "admin@meenora.in", "admin123")
	require.NoError(t, err)
	return auth.Token
}

func TestStaticLogin(t *testing.T) {
	t.Parallel()

	s := NewStatic()
	ctx := context.Background()

	auth, err := s.Login(ctx, "priya@example.com", "priya123")
	require.NoError(t, err)
	require.Equal(t, session.RoleUser, auth.User.Role)
	require.NotEmpty(t, auth.Token)

	_, err = s.Login(ctx, "priya@example.com", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestStaticProfileRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewStatic()
	ctx := context.Background()

	auth, err := s.Login(ctx, "admin@meenora.in", "admin123")
	require.NoError(t, err)

	user, err := s.Profile(ctx, auth.Token)
	require.NoError(t, err)
	require.Equal(t, "u-admin", user.ID)
	require.True(t, user.IsAdmin())

	_, err = s.Profile(ctx, "garbage")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestStaticRegister(t *testing.T) {
	t.Parallel()

	s := NewStatic()
	ctx := context.Background()

	auth, err := s.Register(ctx, RegisterInput{Name: "Asha", Email: "asha@example.com", Password: "asha-secret"})
	require.NoError(t, err)
	require.Equal(t, session.RoleUser, auth.User.Role)

	// The new account can log in and resolve its profile.
	again, err := s.Login(ctx, "asha@example.com", "asha-secret")
	require.NoError(t, err)
	require.Equal(t, auth.User.ID, again.User.ID)

	_, err = s.Register(ctx, RegisterInput{Name: "Dup", Email: "asha@example.com", Password: "x"})
	require.Error(t, err)
}

func TestStaticListProductsPaginates(t *testing.T) {
	t.Parallel()

	s := NewStatic()
	ctx := context.Background()

	page, err := s.ListProducts(ctx, 1, 4)
	require.NoError(t, err)
	require.Len(t, page.Items, 4)
	require.True(t, page.HasNext)

	page, err = s.ListProducts(ctx, 2, 4)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.False(t, page.HasNext)

	page, err = s.ListProducts(ctx, 9, 4)
	require.NoError(t, err)
	require.Empty(t, page.Items)
	require.False(t, page.HasNext)
}

func TestStaticProductCRUDRequiresAdmin(t *testing.T) {
	t.Parallel()

	s := NewStatic()
	ctx := context.Background()

	userAuth, err := s.Login(ctx, "priya@example.com", "priya123")
	require.NoError(t, err)

	_, err = s.CreateProduct(ctx, userAuth.Token, ProductInput{Name: "Sneaky"})
	require.ErrorIs(t, err, ErrUnauthorized)

	token := adminToken(t, s)
	created, err := s.CreateProduct(ctx, token, ProductInput{Name: "Night Cream", Price: 18.50, Category: "Skincare", InStock: true})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := s.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Night Cream", fetched.Name)

	updated, err := s.UpdateProduct(ctx, token, created.ID, ProductInput{Name: "Night Cream v2", Price: 19.50, Category: "Skincare"})
	require.NoError(t, err)
	require.Equal(t, "Night Cream v2", updated.Name)

	require.NoError(t, s.DeleteProduct(ctx, token, created.ID))
	_, err = s.GetProduct(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStaticBannerLifecycle(t *testing.T) {
	t.Parallel()

	s := NewStatic()
	ctx := context.Background()
	token := adminToken(t, s)

	banners, err := s.ListBanners(ctx)
	require.NoError(t, err)
	initial := len(banners)

	created, err := s.CreateBanner(ctx, token, BannerInput{Title: "Festival Sale", Image: "/static/img/festival.jpg", Active: true})
	require.NoError(t, err)

	updated, err := s.UpdateBanner(ctx, token, created.ID, BannerInput{Title: created.Title, Image: created.Image, Active: false})
	require.NoError(t, err)
	require.False(t, updated.Active)

	require.NoError(t, s.DeleteBanner(ctx, token, created.ID))
	banners, err = s.ListBanners(ctx)
	require.NoError(t, err)
	require.Len(t, banners, initial)
}

func TestStaticBlogLifecycle(t *testing.T) {
	t.Parallel()

	s := NewStatic()
	ctx := context.Background()
	token := adminToken(t, s)

	created, err := s.CreateBlog(ctx, token, BlogInput{Title: "Winter Skin", Author: "Meenora Team", Content: "Cold air dries skin fast."})
	require.NoError(t, err)
	require.False(t, created.CreatedAt.IsZero())

	fetched, err := s.GetBlog(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Winter Skin", fetched.Title)

	updated, err := s.UpdateBlog(ctx, token, created.ID, BlogInput{Title: "Winter Skin Rituals", Content: created.Content})
	require.NoError(t, err)
	require.Equal(t, "Winter Skin Rituals", updated.Title)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)

	require.NoError(t, s.DeleteBlog(ctx, token, created.ID))
	_, err = s.GetBlog(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStaticContactFlow(t *testing.T) {
	t.Parallel()

	s := NewStatic()
	ctx := context.Background()
	token := adminToken(t, s)

	require.NoError(t, s.CreateContact(ctx, ContactInput{Name: "Visitor", Email: "v@example.com", Message: "Where is my order?"}))

	// Listing the inbox needs admin credentials.
	_, err := s.ListContacts(ctx, "garbage", 1, 10)
	require.ErrorIs(t, err, ErrUnauthorized)

	page, err := s.ListContacts(ctx, token, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "Visitor", page.Items[0].Name)

	require.NoError(t, s.DeleteContact(ctx, token, page.Items[0].ID))
	page, err = s.ListContacts(ctx, token, 1, 10)
	require.NoError(t, err)
	require.Empty(t, page.Items)
}
