package ui

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"meenora.in/store/internal/store/catalog"
	"meenora.in/store/internal/store/cms"
	"meenora.in/store/internal/store/flash"
	"meenora.in/store/internal/store/forms"
)

type homeData struct {
	Hero         cms.Hero
	Features     []cms.Feature
	Testimonials []cms.Testimonial
	Banners      []catalog.Banner
	Featured     []catalog.Product
}

// Home renders the storefront landing page. Catalog failures degrade to the
// static copy rather than erroring the whole page.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	data := homeData{
		Hero:         h.content.Hero,
		Features:     h.content.Features,
		Testimonials: h.content.Testimonials,
	}

	banners, err := h.catalog.ListBanners(r.Context())
	if err != nil {
		h.logger.Warn("list banners failed", zap.Error(err))
	} else {
		data.Banners = banners
	}

	page, err := h.catalog.ListProducts(r.Context(), 1, catalog.DefaultPageLimit)
	if err != nil {
		h.logger.Warn("list products failed", zap.Error(err))
	} else {
		for _, p := range page.Items {
			if p.Featured {
				data.Featured = append(data.Featured, p)
			}
		}
	}

	h.render(w, r, http.StatusOK, "home", h.page(w, r, "", data))
}

// About renders the static about page.
func (h *Handlers) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "about", h.page(w, r, "About", struct {
		About cms.About
	}{h.content.About}))
}

type shopData struct {
	Products   []catalog.Product
	Page       int
	HasNext    bool
	Query      string
	Category   string
	Sort       string
	Categories []shopCategory
	PrevURL    string
	NextURL    string
}

// Shop renders one page of the product listing, narrowed by the category,
// search and sort query parameters.
func (h *Handlers) Shop(w http.ResponseWriter, r *http.Request) {
	pageNum := pageParam(r)
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	sortBy := r.URL.Query().Get("sort")

	listing, err := h.catalog.ListProducts(r.Context(), pageNum, catalog.DefaultPageLimit)
	if err != nil {
		h.logger.Error("list products failed", zap.Int("page", pageNum), zap.Error(err))
		page := h.page(w, r, "Shop", shopData{Page: pageNum, Query: query, Category: category, Sort: sortBy})
		page.Flash = &flash.Message{Kind: flash.Error, Text: "Could not load products. Please try again."}
		h.render(w, r, http.StatusBadGateway, "shop", page)
		return
	}

	products := filterProducts(listing.Items, category, query)
	sortProducts(products, sortBy)

	h.render(w, r, http.StatusOK, "shop", h.page(w, r, "Shop", shopData{
		Products:   products,
		Page:       listing.Page,
		HasNext:    listing.HasNext,
		Query:      query,
		Category:   category,
		Sort:       sortBy,
		Categories: categoryOptions(listing.Items),
		PrevURL:    shopURL(listing.Page-1, query, category, sortBy),
		NextURL:    shopURL(listing.Page+1, query, category, sortBy),
	}))
}

// ProductDetail renders a single product page.
func (h *Handlers) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("get product failed", zap.String("id", id), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}

	h.render(w, r, http.StatusOK, "product", h.page(w, r, product.Name, struct {
		Product    *catalog.Product
		InWishlist bool
	}{product, h.wishlist(r).Contains(product.ID)}))
}

// Blog renders the post listing.
func (h *Handlers) Blog(w http.ResponseWriter, r *http.Request) {
	posts, err := h.catalog.ListBlogs(r.Context())
	if err != nil {
		h.logger.Error("list blogs failed", zap.Error(err))
		page := h.page(w, r, "Journal", struct{ Posts []catalog.BlogPost }{})
		page.Flash = &flash.Message{Kind: flash.Error, Text: "Could not load the journal. Please try again."}
		h.render(w, r, http.StatusBadGateway, "blog", page)
		return
	}

	h.render(w, r, http.StatusOK, "blog", h.page(w, r, "Journal", struct {
		Posts []catalog.BlogPost
	}{posts}))
}

// BlogPost renders one post with its markdown body converted and sanitised.
func (h *Handlers) BlogPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.catalog.GetBlog(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("get blog failed", zap.String("id", id), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}

	body, err := cms.RenderMarkdown(post.Content)
	if err != nil {
		h.logger.Error("render blog body failed", zap.String("id", id), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.render(w, r, http.StatusOK, "blog_post", h.page(w, r, post.Title, struct {
		Post *catalog.BlogPost
		Body template.HTML
	}{post, body}))
}

// ContactForm renders the contact page.
func (h *Handlers) ContactForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "contact", h.page(w, r, "Contact", emptyForm("/contact")))
}

// ContactSubmit validates and forwards a contact message, then redirects back
// with a confirmation.
func (h *Handlers) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	data := formData{
		Action: "/contact",
		Values: submittedValues(r, forms.Contact),
		Errors: forms.Contact.Validate(r.PostForm),
	}
	if !data.Errors.Valid() {
		h.render(w, r, http.StatusUnprocessableEntity, "contact", h.page(w, r, "Contact", data))
		return
	}

	input := catalog.ContactInput{
		Name:    data.Values["name"],
		Email:   data.Values["email"],
		Subject: data.Values["subject"],
		Message: data.Values["message"],
	}
	if err := h.catalog.CreateContact(r.Context(), input); err != nil {
		h.logger.Error("create contact failed", zap.Error(err))
		page := h.page(w, r, "Contact", data)
		page.Flash = &flash.Message{Kind: flash.Error, Text: "Could not send your message. Please try again."}
		h.render(w, r, http.StatusBadGateway, "contact", page)
		return
	}

	h.flashes.Set(w, flash.Success, "Thanks %s, we received your message.", input.Name)
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}
