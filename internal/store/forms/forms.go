// Package forms declares the typed field configuration for each admin and
// storefront form. Fields are enumerated per entity with their validators so
// handlers and templates share one definition instead of an untyped key-bag.
package forms

import (
	"fmt"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
)

// Kind is the input type of a field.
type Kind int

const (
	Text Kind = iota
	Email
	Password
	Number
	TextArea
	URL
	Checkbox
)

// Field describes one form input and its validation rules.
type Field struct {
	Name     string
	Label    string
	Kind     Kind
	Required bool
	MinLen   int
	Positive bool
}

// Form is an enumerated field set for one entity.
type Form struct {
	Name   string
	Fields []Field
}

// Errors maps field names to a single user-facing message each.
type Errors map[string]string

// Valid reports whether no field failed validation.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Validate checks submitted values against the field set. Only form-level
// rules run here; entity validation proper belongs to the backend.
func (f Form) Validate(values url.Values) Errors {
	errs := Errors{}
	for _, field := range f.Fields {
		value := strings.TrimSpace(values.Get(field.Name))

		if value == "" {
			if field.Required {
				errs[field.Name] = fmt.Sprintf("%s is required", field.Label)
			}
			continue
		}

		if field.MinLen > 0 && len(value) < field.MinLen {
			errs[field.Name] = fmt.Sprintf("%s must be at least %d characters", field.Label, field.MinLen)
			continue
		}

		switch field.Kind {
		case Email:
			if _, err := mail.ParseAddress(value); err != nil {
				errs[field.Name] = fmt.Sprintf("%s must be a valid email address", field.Label)
			}
		case Number:
			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				errs[field.Name] = fmt.Sprintf("%s must be a number", field.Label)
			} else if field.Positive && n <= 0 {
				errs[field.Name] = fmt.Sprintf("%s must be greater than zero", field.Label)
			}
		case URL:
			if u, err := url.Parse(value); err != nil || (u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https") {
				errs[field.Name] = fmt.Sprintf("%s must be a valid URL", field.Label)
			}
		}
	}
	return errs
}

// Product mirrors the catalog product form.
var Product = Form{
	Name: "product",
	Fields: []Field{
		{Name: "name", Label: "Product name", Kind: Text, Required: true, MinLen: 2},
		{Name: "description", Label: "Description", Kind: TextArea, Required: true, MinLen: 10},
		{Name: "price", Label: "Price", Kind: Number, Required: true, Positive: true},
		{Name: "category", Label: "Category", Kind: Text, Required: true},
		{Name: "concern", Label: "Concern", Kind: Text},
		{Name: "image", Label: "Image URL", Kind: URL},
		{Name: "inStock", Label: "In stock", Kind: Checkbox},
		{Name: "featured", Label: "Featured", Kind: Checkbox},
	},
}

// Banner mirrors the banner slot form.
var Banner = Form{
	Name: "banner",
	Fields: []Field{
		{Name: "title", Label: "Title", Kind: Text, Required: true},
		{Name: "image", Label: "Image URL", Kind: URL, Required: true},
		{Name: "link", Label: "Link", Kind: URL},
		{Name: "active", Label: "Active", Kind: Checkbox},
	},
}

// Blog mirrors the blog post form.
var Blog = Form{
	Name: "blog",
	Fields: []Field{
		{Name: "title", Label: "Title", Kind: Text, Required: true, MinLen: 2},
		{Name: "content", Label: "Content", Kind: TextArea, Required: true, MinLen: 10},
		{Name: "author", Label: "Author", Kind: Text},
		{Name: "image", Label: "Image URL", Kind: URL},
	},
}

// Contact mirrors the storefront contact form.
var Contact = Form{
	Name: "contact",
	Fields: []Field{
		{Name: "name", Label: "Name", Kind: Text, Required: true},
		{Name: "email", Label: "Email", Kind: Email, Required: true},
		{Name: "subject", Label: "Subject", Kind: Text},
		{Name: "message", Label: "Message", Kind: TextArea, Required: true, MinLen: 10},
	},
}

// Login mirrors both login portals.
var Login = Form{
	Name: "login",
	Fields: []Field{
		{Name: "email", Label: "Email", Kind: Email, Required: true},
		{Name: "password", Label: "Password", Kind: Password, Required: true},
	},
}

// Signup mirrors the account creation form.
var Signup = Form{
	Name: "signup",
	Fields: []Field{
		{Name: "name", Label: "Name", Kind: Text, Required: true, MinLen: 2},
		{Name: "email", Label: "Email", Kind: Email, Required: true},
		{Name: "password", Label: "Password", Kind: Password, Required: true, MinLen: 8},
	},
}
