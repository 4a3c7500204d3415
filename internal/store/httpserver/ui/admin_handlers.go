package ui

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"meenora.in/store/internal/store/catalog"
	"meenora.in/store/internal/store/flash"
	"meenora.in/store/internal/store/forms"
)

// AdminHome renders the console landing page with headline counts.
func (h *Handlers) AdminHome(w http.ResponseWriter, r *http.Request) {
	var productCount, bannerCount, blogCount int

	if listing, err := h.catalog.ListProducts(r.Context(), 1, catalog.DefaultPageLimit); err == nil {
		productCount = len(listing.Items)
	} else {
		h.logger.Warn("list products failed", zap.Error(err))
	}
	if banners, err := h.catalog.ListBanners(r.Context()); err == nil {
		bannerCount = len(banners)
	} else {
		h.logger.Warn("list banners failed", zap.Error(err))
	}
	if posts, err := h.catalog.ListBlogs(r.Context()); err == nil {
		blogCount = len(posts)
	} else {
		h.logger.Warn("list blogs failed", zap.Error(err))
	}

	h.render(w, r, http.StatusOK, "admin_dashboard", h.page(w, r, "Dashboard", struct {
		ProductCount int
		BannerCount  int
		BlogCount    int
	}{productCount, bannerCount, blogCount}))
}

// AdminProducts renders one page of the product table.
func (h *Handlers) AdminProducts(w http.ResponseWriter, r *http.Request) {
	pageNum := pageParam(r)

	listing, err := h.catalog.ListProducts(r.Context(), pageNum, catalog.DefaultPageLimit)
	if err != nil {
		h.logger.Error("list products failed", zap.Int("page", pageNum), zap.Error(err))
		page := h.page(w, r, "Products", shopData{Page: pageNum})
		page.Flash = &flash.Message{Kind: flash.Error, Text: "Could not load products."}
		h.render(w, r, http.StatusBadGateway, "admin_products", page)
		return
	}

	h.render(w, r, http.StatusOK, "admin_products", h.page(w, r, "Products", shopData{
		Products: listing.Items,
		Page:     listing.Page,
		HasNext:  listing.HasNext,
	}))
}

// AdminProductNew renders the blank product form.
func (h *Handlers) AdminProductNew(w http.ResponseWriter, r *http.Request) {
	data := emptyForm("/admin/products")
	data.Values["inStock"] = "on"
	h.render(w, r, http.StatusOK, "admin_product_form", h.page(w, r, "New product", data))
}

// AdminProductCreate validates and creates a product.
func (h *Handlers) AdminProductCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	data := formData{
		Action: "/admin/products",
		Values: submittedValues(r, forms.Product),
		Errors: forms.Product.Validate(r.PostForm),
	}
	if !data.Errors.Valid() {
		h.render(w, r, http.StatusUnprocessableEntity, "admin_product_form", h.page(w, r, "New product", data))
		return
	}

	if _, err := h.catalog.CreateProduct(r.Context(), h.session(r).Token(), productInputFrom(data.Values)); err != nil {
		h.renderAdminFormFailure(w, r, "admin_product_form", "New product", data, "create product", err)
		return
	}

	h.flashes.Set(w, flash.Success, "Product %q created.", data.Values["name"])
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// AdminProductEdit renders the form pre-filled from the catalog record.
func (h *Handlers) AdminProductEdit(w http.ResponseWriter, r *http.Request) {
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

	data := formData{
		ID:     product.ID,
		Action: "/admin/products/" + product.ID + "/edit",
		Values: map[string]string{
			"name":        product.Name,
			"description": product.Description,
			"price":       strconv.FormatFloat(product.Price, 'f', 2, 64),
			"category":    product.Category,
			"concern":     product.Concern,
			"image":       product.Image,
		},
		Errors: forms.Errors{},
	}
	if product.InStock {
		data.Values["inStock"] = "on"
	}
	if product.Featured {
		data.Values["featured"] = "on"
	}

	h.render(w, r, http.StatusOK, "admin_product_form", h.page(w, r, "Edit product", data))
}

// AdminProductUpdate validates and saves an edit.
func (h *Handlers) AdminProductUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")

	data := formData{
		ID:     id,
		Action: "/admin/products/" + id + "/edit",
		Values: submittedValues(r, forms.Product),
		Errors: forms.Product.Validate(r.PostForm),
	}
	if !data.Errors.Valid() {
		h.render(w, r, http.StatusUnprocessableEntity, "admin_product_form", h.page(w, r, "Edit product", data))
		return
	}

	if _, err := h.catalog.UpdateProduct(r.Context(), h.session(r).Token(), id, productInputFrom(data.Values)); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.renderAdminFormFailure(w, r, "admin_product_form", "Edit product", data, "update product", err)
		return
	}

	h.flashes.Set(w, flash.Success, "Product %q updated.", data.Values["name"])
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// AdminProductDelete removes a product.
func (h *Handlers) AdminProductDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.catalog.DeleteProduct(r.Context(), h.session(r).Token(), id); err != nil && !errors.Is(err, catalog.ErrNotFound) {
		h.logger.Error("delete product failed", zap.String("id", id), zap.Error(err))
		h.flashes.Set(w, flash.Error, "Could not delete the product.")
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	h.flashes.Set(w, flash.Success, "Product deleted.")
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

type bannersData struct {
	Banners []catalog.Banner
	Values  map[string]string
	Errors  forms.Errors
}

// AdminBanners renders the banner table with the inline create form.
func (h *Handlers) AdminBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.catalog.ListBanners(r.Context())
	if err != nil {
		h.logger.Error("list banners failed", zap.Error(err))
		page := h.page(w, r, "Banners", bannersData{Values: map[string]string{}, Errors: forms.Errors{}})
		page.Flash = &flash.Message{Kind: flash.Error, Text: "Could not load banners."}
		h.render(w, r, http.StatusBadGateway, "admin_banners", page)
		return
	}

	h.render(w, r, http.StatusOK, "admin_banners", h.page(w, r, "Banners", bannersData{
		Banners: banners,
		Values:  map[string]string{},
		Errors:  forms.Errors{},
	}))
}

// AdminBannerCreate validates and creates a banner.
func (h *Handlers) AdminBannerCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	values := submittedValues(r, forms.Banner)
	errs := forms.Banner.Validate(r.PostForm)
	if !errs.Valid() {
		banners, _ := h.catalog.ListBanners(r.Context())
		h.render(w, r, http.StatusUnprocessableEntity, "admin_banners", h.page(w, r, "Banners", bannersData{
			Banners: banners,
			Values:  values,
			Errors:  errs,
		}))
		return
	}

	input := catalog.BannerInput{
		Title:  values["title"],
		Image:  values["image"],
		Link:   values["link"],
		Active: checkboxOn(values["active"]),
	}
	if _, err := h.catalog.CreateBanner(r.Context(), h.session(r).Token(), input); err != nil {
		h.logger.Error("create banner failed", zap.Error(err))
		h.flashes.Set(w, flash.Error, "Could not create the banner.")
		http.Redirect(w, r, "/admin/banners", http.StatusSeeOther)
		return
	}

	h.flashes.Set(w, flash.Success, "Banner %q created.", input.Title)
	http.Redirect(w, r, "/admin/banners", http.StatusSeeOther)
}

// AdminBannerToggle flips a banner's active flag.
func (h *Handlers) AdminBannerToggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	banners, err := h.catalog.ListBanners(r.Context())
	if err != nil {
		h.logger.Error("list banners failed", zap.Error(err))
		h.flashes.Set(w, flash.Error, "Could not update the banner.")
		http.Redirect(w, r, "/admin/banners", http.StatusSeeOther)
		return
	}

	var target *catalog.Banner
	for i := range banners {
		if banners[i].ID == id {
			target = &banners[i]
			break
		}
	}
	if target == nil {
		http.NotFound(w, r)
		return
	}

	input := catalog.BannerInput{
		Title:  target.Title,
		Image:  target.Image,
		Link:   target.Link,
		Active: !target.Active,
	}
	if _, err := h.catalog.UpdateBanner(r.Context(), h.session(r).Token(), id, input); err != nil {
		h.logger.Error("update banner failed", zap.String("id", id), zap.Error(err))
		h.flashes.Set(w, flash.Error, "Could not update the banner.")
		http.Redirect(w, r, "/admin/banners", http.StatusSeeOther)
		return
	}

	state := "hidden"
	if input.Active {
		state = "active"
	}
	h.flashes.Set(w, flash.Success, "Banner %q is now %s.", target.Title, state)
	http.Redirect(w, r, "/admin/banners", http.StatusSeeOther)
}

// AdminBannerDelete removes a banner.
func (h *Handlers) AdminBannerDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.catalog.DeleteBanner(r.Context(), h.session(r).Token(), id); err != nil && !errors.Is(err, catalog.ErrNotFound) {
		h.logger.Error("delete banner failed", zap.String("id", id), zap.Error(err))
		h.flashes.Set(w, flash.Error, "Could not delete the banner.")
		http.Redirect(w, r, "/admin/banners", http.StatusSeeOther)
		return
	}

	h.flashes.Set(w, flash.Success, "Banner deleted.")
	http.Redirect(w, r, "/admin/banners", http.StatusSeeOther)
}

// AdminBlogs renders the blog post table.
func (h *Handlers) AdminBlogs(w http.ResponseWriter, r *http.Request) {
	posts, err := h.catalog.ListBlogs(r.Context())
	if err != nil {
		h.logger.Error("list blogs failed", zap.Error(err))
		page := h.page(w, r, "Blog posts", struct{ Posts []catalog.BlogPost }{})
		page.Flash = &flash.Message{Kind: flash.Error, Text: "Could not load blog posts."}
		h.render(w, r, http.StatusBadGateway, "admin_blogs", page)
		return
	}

	h.render(w, r, http.StatusOK, "admin_blogs", h.page(w, r, "Blog posts", struct {
		Posts []catalog.BlogPost
	}{posts}))
}

// AdminBlogNew renders the blank post form.
func (h *Handlers) AdminBlogNew(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "admin_blog_form", h.page(w, r, "New post", emptyForm("/admin/blogs")))
}

// AdminBlogCreate validates and publishes a post.
func (h *Handlers) AdminBlogCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	data := formData{
		Action: "/admin/blogs",
		Values: submittedValues(r, forms.Blog),
		Errors: forms.Blog.Validate(r.PostForm),
	}
	if !data.Errors.Valid() {
		h.render(w, r, http.StatusUnprocessableEntity, "admin_blog_form", h.page(w, r, "New post", data))
		return
	}

	if _, err := h.catalog.CreateBlog(r.Context(), h.session(r).Token(), blogInputFrom(data.Values)); err != nil {
		h.renderAdminFormFailure(w, r, "admin_blog_form", "New post", data, "create blog", err)
		return
	}

	h.flashes.Set(w, flash.Success, "Post %q published.", data.Values["title"])
	http.Redirect(w, r, "/admin/blogs", http.StatusSeeOther)
}

// AdminBlogEdit renders the form pre-filled from the stored post.
func (h *Handlers) AdminBlogEdit(w http.ResponseWriter, r *http.Request) {
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

	data := formData{
		ID:     post.ID,
		Action: "/admin/blogs/" + post.ID + "/edit",
		Values: map[string]string{
			"title":   post.Title,
			"author":  post.Author,
			"image":   post.Image,
			"content": post.Content,
		},
		Errors: forms.Errors{},
	}
	h.render(w, r, http.StatusOK, "admin_blog_form", h.page(w, r, "Edit post", data))
}

// AdminBlogUpdate validates and saves an edit.
func (h *Handlers) AdminBlogUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")

	data := formData{
		ID:     id,
		Action: "/admin/blogs/" + id + "/edit",
		Values: submittedValues(r, forms.Blog),
		Errors: forms.Blog.Validate(r.PostForm),
	}
	if !data.Errors.Valid() {
		h.render(w, r, http.StatusUnprocessableEntity, "admin_blog_form", h.page(w, r, "Edit post", data))
		return
	}

	if _, err := h.catalog.UpdateBlog(r.Context(), h.session(r).Token(), id, blogInputFrom(data.Values)); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.renderAdminFormFailure(w, r, "admin_blog_form", "Edit post", data, "update blog", err)
		return
	}

	h.flashes.Set(w, flash.Success, "Post %q updated.", data.Values["title"])
	http.Redirect(w, r, "/admin/blogs", http.StatusSeeOther)
}

// AdminBlogDelete removes a post.
func (h *Handlers) AdminBlogDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.catalog.DeleteBlog(r.Context(), h.session(r).Token(), id); err != nil && !errors.Is(err, catalog.ErrNotFound) {
		h.logger.Error("delete blog failed", zap.String("id", id), zap.Error(err))
		h.flashes.Set(w, flash.Error, "Could not delete the post.")
		http.Redirect(w, r, "/admin/blogs", http.StatusSeeOther)
		return
	}

	h.flashes.Set(w, flash.Success, "Post deleted.")
	http.Redirect(w, r, "/admin/blogs", http.StatusSeeOther)
}

type contactsData struct {
	Messages []catalog.ContactMessage
	Page     int
	HasNext  bool
}

// AdminContacts renders one page of the contact inbox.
func (h *Handlers) AdminContacts(w http.ResponseWriter, r *http.Request) {
	pageNum := pageParam(r)

	listing, err := h.catalog.ListContacts(r.Context(), h.session(r).Token(), pageNum, catalog.DefaultPageLimit)
	if err != nil {
		h.logger.Error("list contacts failed", zap.Int("page", pageNum), zap.Error(err))
		page := h.page(w, r, "Messages", contactsData{Page: pageNum})
		page.Flash = &flash.Message{Kind: flash.Error, Text: "Could not load messages."}
		h.render(w, r, http.StatusBadGateway, "admin_contacts", page)
		return
	}

	h.render(w, r, http.StatusOK, "admin_contacts", h.page(w, r, "Messages", contactsData{
		Messages: listing.Items,
		Page:     listing.Page,
		HasNext:  listing.HasNext,
	}))
}

// AdminContactDelete removes a message from the inbox.
func (h *Handlers) AdminContactDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.catalog.DeleteContact(r.Context(), h.session(r).Token(), id); err != nil && !errors.Is(err, catalog.ErrNotFound) {
		h.logger.Error("delete contact failed", zap.String("id", id), zap.Error(err))
		h.flashes.Set(w, flash.Error, "Could not delete the message.")
		http.Redirect(w, r, "/admin/contacts", http.StatusSeeOther)
		return
	}

	h.flashes.Set(w, flash.Success, "Message deleted.")
	http.Redirect(w, r, "/admin/contacts", http.StatusSeeOther)
}

// renderAdminFormFailure re-renders a form after a backend failure, keeping
// what the operator typed. Expired credentials go back through the portal.
func (h *Handlers) renderAdminFormFailure(w http.ResponseWriter, r *http.Request, tmpl, title string, data formData, op string, err error) {
	if errors.Is(err, catalog.ErrUnauthorized) {
		h.flashes.Set(w, flash.Error, "Your session has expired. Please sign in again.")
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}
	h.logger.Error(fmt.Sprintf("%s failed", op), zap.Error(err))
	page := h.page(w, r, title, data)
	page.Flash = &flash.Message{Kind: flash.Error, Text: "The catalog backend rejected the request. Please try again."}
	h.render(w, r, http.StatusBadGateway, tmpl, page)
}

func productInputFrom(values map[string]string) catalog.ProductInput {
	price, _ := strconv.ParseFloat(values["price"], 64)
	return catalog.ProductInput{
		Name:        values["name"],
		Description: values["description"],
		Price:       price,
		Image:       values["image"],
		Category:    values["category"],
		Concern:     values["concern"],
		InStock:     checkboxOn(values["inStock"]),
		Featured:    checkboxOn(values["featured"]),
	}
}

func blogInputFrom(values map[string]string) catalog.BlogInput {
	return catalog.BlogInput{
		Title:   values["title"],
		Author:  values["author"],
		Image:   values["image"],
		Content: values["content"],
	}
}
