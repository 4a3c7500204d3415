package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"meenora.in/store/internal/store/session"
)

// Static implements Service from in-memory seed data. It backs tests and
// offline development when no backend API is configured.
type Static struct {
	mu       sync.Mutex
	nextID   int
	signKey  []byte
	accounts []staticAccount
	products []Product
	banners  []Banner
	blogs    []BlogPost
	contacts []ContactMessage
}

type staticAccount struct {
	user     session.User
	password string
}

// NewStatic constructs a Static service seeded with the Meenora catalog and
// two well-known accounts: admin@meenora.in/admin123 and
// priya@example.com/priya123.
func NewStatic() *Static {
	s := &Static{
		nextID:  1000,
		signKey: []byte("static-dev-signing-key"),
		accounts: []staticAccount{
			{
				user:     session.User{ID: "u-admin", Name: "Meenora Admin", Email: "admin@meenora.in", Role: session.RoleAdmin},
				password: "admin123",
			},
			{
				user:     session.User{ID: "u-priya", Name: "Priya Sharma", Email: "priya@example.com", Role: session.RoleUser},
				password: "priya123",
			},
		},
		products: seedProducts(),
		banners: []Banner{
			{ID: "b1", Title: "Monsoon Hair Care Sale", Image: "/static/img/banner-monsoon.jpg", Link: "/shop", Active: true},
			{ID: "b2", Title: "New: Daily Glow Range", Image: "/static/img/banner-glow.jpg", Link: "/shop", Active: false},
		},
		blogs: []BlogPost{
			{
				ID:        "blog1",
				Title:     "Five Habits for Healthier Hair",
				Author:    "Meenora Team",
				Content:   "Strong hair starts with a healthy scalp.\n\n## Wash smart\n\nLukewarm water and a gentle massage go further than hot water ever will.",
				CreatedAt: time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC),
			},
			{
				ID:        "blog2",
				Title:     "Reading an Ingredients Label",
				Author:    "Meenora Team",
				Content:   "Ingredients are listed by weight. The first five tell you most of the story.",
				CreatedAt: time.Date(2025, 7, 3, 9, 0, 0, 0, time.UTC),
			},
		},
	}
	return s
}

func seedProducts() []Product {
	return []Product{
		{
			ID: "p1", Name: "Meenora Nourishing Shampoo",
			Description: "Revitalize your hair with our natural shampoo, designed for daily nourishment and shine.",
			Price:       24.99, Category: "Hair Care", Concern: "Hair Growth",
			Ingredients: []string{"Argan Oil", "Aloe Vera", "Vitamin E", "Pea Protein"},
			Benefits:    []string{"Reduces Hair Loss", "Improves Shine & Smoothness"},
			Tags:        []string{"Bestseller", "Hair Growth"},
			InStock:     true, Featured: true,
		},
		{
			ID: "p2", Name: "Meenora Hydrating Conditioner",
			Description: "Deeply moisturize and detangle your hair, leaving it silky smooth and manageable.",
			Price:       26.99, Category: "Hair Care", Concern: "Hair Damage",
			Ingredients: []string{"Shea Butter", "Coconut Oil", "Biotin"},
			Benefits:    []string{"Intense Hydration", "Reduces Breakage"},
			Tags:        []string{"Bestseller"},
			InStock:     true, Featured: true,
		},
		{
			ID: "p3", Name: "Meenora Protective Sunscreen Cream SPF 50",
			Description: "Lightweight, broad-spectrum sunscreen to shield your skin from harmful UV rays.",
			Price:       32.99, Category: "Skincare", Concern: "Face Care",
			Ingredients: []string{"Zinc Oxide", "Hyaluronic Acid"},
			Benefits:    []string{"Broad Spectrum SPF 50", "Lightweight & Non-Greasy"},
			Tags:        []string{"Coming Soon"},
			ComingSoon:  true,
		},
		{
			ID: "p4", Name: "Meenora Daily Glow Moisturiser",
			Description: "Hydrate and illuminate your skin with our nourishing daily moisturiser.",
			Price:       28.99, Category: "Skincare", Concern: "Face Care",
			Ingredients: []string{"Hyaluronic Acid", "Vitamin C", "Niacinamide"},
			Benefits:    []string{"Deep Hydration", "Boosts Radiance"},
			ComingSoon:  true,
		},
		{
			ID: "p5", Name: "Meenora Herbal Hair Oil",
			Description: "A weekly ritual blend of cold-pressed oils for scalp health and growth.",
			Price:       19.99, Category: "Hair Care", Concern: "Hair Growth",
			Ingredients: []string{"Bhringraj", "Amla", "Castor Oil"},
			Benefits:    []string{"Strengthens Roots", "Conditions Scalp"},
			InStock:     true,
		},
		{
			ID: "p6", Name: "Meenora Gentle Face Cleanser",
			Description: "A soap-free cleanser that lifts impurities without stripping moisture.",
			Price:       21.99, Category: "Skincare", Concern: "Face Care",
			Ingredients: []string{"Chamomile", "Green Tea Extract"},
			Benefits:    []string{"Soap Free", "Maintains pH"},
			InStock:     true,
		},
	}
}

// Login checks the seeded accounts.
func (s *Static) Login(_ context.Context, email, password string) (*Auth, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acct := range s.accounts {
		if acct.user.Email == email && acct.password == password {
			token, err := s.issueToken(acct.user)
			if err != nil {
				return nil, err
			}
			user := acct.user
			return &Auth{User: user, Token: token}, nil
		}
	}
	return nil, fmt.Errorf("%w (invalid credentials)", ErrUnauthorized)
}

// Register adds a user-role account and logs it in.
func (s *Static) Register(_ context.Context, input RegisterInput) (*Auth, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acct := range s.accounts {
		if acct.user.Email == input.Email {
			return nil, fmt.Errorf("catalog: backend error (409): email already registered")
		}
	}
	user := session.User{
		ID:    s.id("u"),
		Name:  input.Name,
		Email: input.Email,
		Role:  session.RoleUser,
	}
	s.accounts = append(s.accounts, staticAccount{user: user, password: input.Password})
	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &Auth{User: user, Token: token}, nil
}

// Profile resolves the token back to the seeded account.
func (s *Static) Profile(_ context.Context, token string) (*session.User, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.signKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w (bad token)", ErrUnauthorized)
	}
	sub, _ := claims["sub"].(string)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acct := range s.accounts {
		if acct.user.ID == sub {
			user := acct.user
			return &user, nil
		}
	}
	return nil, fmt.Errorf("%w (unknown account)", ErrUnauthorized)
}

// ListProducts pages through the seeded catalog with an exact total.
func (s *Static) ListProducts(_ context.Context, page, limit int) (*ProductPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	page, limit = normalisePage(page, limit)
	items := pageOf(s.products, page, limit)
	total := len(s.products)
	return &ProductPage{
		Items:   append([]Product(nil), items...),
		Page:    page,
		Limit:   limit,
		HasNext: hasNextPage(len(items), page, limit, &total),
	}, nil
}

// GetProduct fetches a seeded product.
func (s *Static) GetProduct(_ context.Context, id string) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			copied := p
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("%w (product %s)", ErrNotFound, id)
}

// CreateProduct appends to the seeded catalog.
func (s *Static) CreateProduct(_ context.Context, token string, input ProductInput) (*Product, error) {
	if err := s.requireAdmin(token); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := productFromInput(s.id("p"), input)
	s.products = append(s.products, p)
	return &p, nil
}

// UpdateProduct replaces a seeded product.
func (s *Static) UpdateProduct(_ context.Context, token, id string, input ProductInput) (*Product, error) {
	if err := s.requireAdmin(token); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			updated := productFromInput(id, input)
			s.products[i] = updated
			return &updated, nil
		}
	}
	return nil, fmt.Errorf("%w (product %s)", ErrNotFound, id)
}

// DeleteProduct removes a seeded product.
func (s *Static) DeleteProduct(_ context.Context, token, id string) error {
	if err := s.requireAdmin(token); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w (product %s)", ErrNotFound, id)
}

// ListBanners returns the seeded banners.
func (s *Static) ListBanners(context.Context) ([]Banner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Banner(nil), s.banners...), nil
}

// CreateBanner appends a banner.
func (s *Static) CreateBanner(_ context.Context, token string, input BannerInput) (*Banner, error) {
	if err := s.requireAdmin(token); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := Banner{ID: s.id("b"), Title: input.Title, Image: input.Image, Link: input.Link, Active: input.Active}
	s.banners = append(s.banners, b)
	return &b, nil
}

// UpdateBanner replaces a banner.
func (s *Static) UpdateBanner(_ context.Context, token, id string, input BannerInput) (*Banner, error) {
	if err := s.requireAdmin(token); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.banners {
		if b.ID == id {
			updated := Banner{ID: id, Title: input.Title, Image: input.Image, Link: input.Link, Active: input.Active}
			s.banners[i] = updated
			return &updated, nil
		}
	}
	return nil, fmt.Errorf("%w (banner %s)", ErrNotFound, id)
}

// DeleteBanner removes a banner.
func (s *Static) DeleteBanner(_ context.Context, token, id string) error {
	if err := s.requireAdmin(token); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.banners {
		if b.ID == id {
			s.banners = append(s.banners[:i], s.banners[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w (banner %s)", ErrNotFound, id)
}

// ListBlogs returns the seeded posts.
func (s *Static) ListBlogs(context.Context) ([]BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]BlogPost(nil), s.blogs...), nil
}

// GetBlog fetches one post.
func (s *Static) GetBlog(_ context.Context, id string) (*BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.blogs {
		if b.ID == id {
			copied := b
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("%w (blog %s)", ErrNotFound, id)
}

// CreateBlog appends a post.
func (s *Static) CreateBlog(_ context.Context, token string, input BlogInput) (*BlogPost, error) {
	if err := s.requireAdmin(token); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := BlogPost{
		ID:        s.id("blog"),
		Title:     input.Title,
		Author:    input.Author,
		Image:     input.Image,
		Content:   input.Content,
		CreatedAt: time.Now().UTC(),
	}
	s.blogs = append(s.blogs, b)
	return &b, nil
}

// UpdateBlog replaces a post.
func (s *Static) UpdateBlog(_ context.Context, token, id string, input BlogInput) (*BlogPost, error) {
	if err := s.requireAdmin(token); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.blogs {
		if b.ID == id {
			updated := b
			updated.Title = input.Title
			updated.Author = input.Author
			updated.Image = input.Image
			updated.Content = input.Content
			s.blogs[i] = updated
			return &updated, nil
		}
	}
	return nil, fmt.Errorf("%w (blog %s)", ErrNotFound, id)
}

// DeleteBlog removes a post.
func (s *Static) DeleteBlog(_ context.Context, token, id string) error {
	if err := s.requireAdmin(token); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.blogs {
		if b.ID == id {
			s.blogs = append(s.blogs[:i], s.blogs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w (blog %s)", ErrNotFound, id)
}

// ListContacts pages through stored messages.
func (s *Static) ListContacts(_ context.Context, token string, page, limit int) (*ContactPage, error) {
	if err := s.requireAdmin(token); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	page, limit = normalisePage(page, limit)
	items := pageOf(s.contacts, page, limit)
	total := len(s.contacts)
	return &ContactPage{
		Items:   append([]ContactMessage(nil), items...),
		Page:    page,
		Limit:   limit,
		HasNext: hasNextPage(len(items), page, limit, &total),
	}, nil
}

// CreateContact stores a message.
func (s *Static) CreateContact(_ context.Context, input ContactInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = append(s.contacts, ContactMessage{
		ID:        s.id("c"),
		Name:      input.Name,
		Email:     input.Email,
		Subject:   input.Subject,
		Message:   input.Message,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

// DeleteContact removes a message.
func (s *Static) DeleteContact(_ context.Context, token, id string) error {
	if err := s.requireAdmin(token); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, msg := range s.contacts {
		if msg.ID == id {
			s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w (contact %s)", ErrNotFound, id)
}

func (s *Static) requireAdmin(token string) error {
	user, err := s.Profile(context.Background(), token)
	if err != nil {
		return err
	}
	if !user.IsAdmin() {
		return fmt.Errorf("%w (admin required)", ErrUnauthorized)
	}
	return nil
}

func (s *Static) issueToken(user session.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signKey)
	if err != nil {
		return "", fmt.Errorf("catalog: sign token: %w", err)
	}
	return signed, nil
}

func (s *Static) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s%d", prefix, s.nextID)
}

func productFromInput(id string, input ProductInput) Product {
	return Product{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		Category:    input.Category,
		Concern:     input.Concern,
		HowToUse:    input.HowToUse,
		Ingredients: input.Ingredients,
		Benefits:    input.Benefits,
		Tags:        input.Tags,
		InStock:     input.InStock,
		Featured:    input.Featured,
		ComingSoon:  input.ComingSoon,
	}
}

func pageOf[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
