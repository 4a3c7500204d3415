// Package cms provides the storefront marketing copy and the markdown
// pipeline used for blog post bodies.
package cms

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var contentYAML []byte

// Content is the static marketing copy rendered on the storefront pages.
type Content struct {
	Hero         Hero          `yaml:"hero"`
	Features     []Feature     `yaml:"features"`
	Testimonials []Testimonial `yaml:"testimonials"`
	About        About         `yaml:"about"`
}

// Hero is the home page masthead.
type Hero struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	CTALabel string `yaml:"cta_label"`
	CTALink  string `yaml:"cta_link"`
}

// Feature is one selling point on the home page.
type Feature struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
	Icon  string `yaml:"icon"`
}

// Testimonial is a customer quote.
type Testimonial struct {
	Quote  string `yaml:"quote"`
	Author string `yaml:"author"`
}

// About is the copy for the about page.
type About struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// Load parses the embedded content document, falling back to compiled-in
// defaults when the document is absent or malformed.
func Load() (Content, error) {
	var c Content
	if len(contentYAML) == 0 {
		return Default(), nil
	}
	if err := yaml.Unmarshal(contentYAML, &c); err != nil {
		return Default(), fmt.Errorf("cms: parse content: %w", err)
	}
	if c.Hero.Title == "" {
		c.Hero = Default().Hero
	}
	return c, nil
}

// Default returns the compiled-in marketing copy.
func Default() Content {
	return Content{
		Hero: Hero{
			Title:    "Radiant Beauty, Naturally",
			Subtitle: "Clean hair and skin care crafted from botanicals you can pronounce.",
			CTALabel: "Shop the range",
			CTALink:  "/shop",
		},
		Features: []Feature{
			{Title: "Botanical first", Body: "Formulated around plant actives, never padded with fillers."},
			{Title: "Dermatologist tested", Body: "Every batch is patch-tested and pH balanced."},
			{Title: "Cruelty free", Body: "No animal testing, anywhere in the supply chain."},
		},
		Testimonials: []Testimonial{
			{Quote: "The shampoo transformed my hair in three weeks.", Author: "Ananya R."},
			{Quote: "Finally a moisturiser that doesn't sting.", Author: "Divya K."},
		},
		About: About{
			Title: "Our story",
			Body:  "Meenora began in a home kitchen with one promise: nothing in the bottle we would not use ourselves.",
		},
	}
}

var sanitizer = bluemonday.UGCPolicy()

// RenderMarkdown converts blog post markdown to sanitised HTML safe for
// template injection.
func RenderMarkdown(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("cms: render markdown: %w", err)
	}
	clean := sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(clean), nil
}
