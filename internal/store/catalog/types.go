package catalog

import (
	"context"
	"time"

	"meenora.in/store/internal/store/session"
)

// Product is a server-owned catalog record. The client holds a possibly stale
// copy for display; validation happens on the backend or at form level.
type Product struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Concern     string   `json:"concern"`
	HowToUse    string   `json:"howToUse"`
	Ingredients []string `json:"ingredients"`
	Benefits    []string `json:"benefits"`
	Tags        []string `json:"tags"`
	InStock     bool     `json:"inStock"`
	Featured    bool     `json:"featured"`
	ComingSoon  bool     `json:"comingSoon"`
}

// ProductInput is the payload for create and update calls.
type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Image       string   `json:"image,omitempty"`
	Category    string   `json:"category"`
	Concern     string   `json:"concern,omitempty"`
	HowToUse    string   `json:"howToUse,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Benefits    []string `json:"benefits,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	InStock     bool     `json:"inStock"`
	Featured    bool     `json:"featured"`
	ComingSoon  bool     `json:"comingSoon"`
}

// Banner is a promotional slot rendered on the storefront home page.
type Banner struct {
	ID     string `json:"_id"`
	Title  string `json:"title"`
	Image  string `json:"image"`
	Link   string `json:"link"`
	Active bool   `json:"active"`
}

// BannerInput is the payload for banner create and update calls.
type BannerInput struct {
	Title  string `json:"title"`
	Image  string `json:"image"`
	Link   string `json:"link,omitempty"`
	Active bool   `json:"active"`
}

// BlogPost is an article authored through the admin console. Content is
// markdown rendered and sanitised by the view layer.
type BlogPost struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Image     string    `json:"image"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlogInput is the payload for blog create and update calls.
type BlogInput struct {
	Title   string `json:"title"`
	Author  string `json:"author,omitempty"`
	Image   string `json:"image,omitempty"`
	Content string `json:"content"`
}

// ContactMessage is a storefront contact-form submission.
type ContactMessage struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactInput is the payload for contact submissions.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// Auth is the result of a successful login or registration.
type Auth struct {
	User  session.User `json:"user"`
	Token string       `json:"token"`
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProductPage is one page of the product listing.
type ProductPage struct {
	Items   []Product
	Page    int
	Limit   int
	HasNext bool
}

// ContactPage is one page of the contact message listing.
type ContactPage struct {
	Items   []ContactMessage
	Page    int
	Limit   int
	HasNext bool
}

// Service is the remote catalog surface consumed by the view layer. Every
// call is an asynchronous network request; failures surface to the caller and
// are never retried here.
type Service interface {
	Login(ctx context.Context, email, password string) (*Auth, error)
	Register(ctx context.Context, input RegisterInput) (*Auth, error)
	Profile(ctx context.Context, token string) (*session.User, error)

	ListProducts(ctx context.Context, page, limit int) (*ProductPage, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	CreateProduct(ctx context.Context, token string, input ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, token, id string, input ProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, token, id string) error

	ListBanners(ctx context.Context) ([]Banner, error)
	CreateBanner(ctx context.Context, token string, input BannerInput) (*Banner, error)
	UpdateBanner(ctx context.Context, token, id string, input BannerInput) (*Banner, error)
	DeleteBanner(ctx context.Context, token, id string) error

	ListBlogs(ctx context.Context) ([]BlogPost, error)
	GetBlog(ctx context.Context, id string) (*BlogPost, error)
	CreateBlog(ctx context.Context, token string, input BlogInput) (*BlogPost, error)
	UpdateBlog(ctx context.Context, token, id string, input BlogInput) (*BlogPost, error)
	DeleteBlog(ctx context.Context, token, id string) error

	ListContacts(ctx context.Context, token string, page, limit int) (*ContactPage, error)
	CreateContact(ctx context.Context, input ContactInput) error
	DeleteContact(ctx context.Context, token, id string) error
}
