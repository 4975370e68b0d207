// Package selector reads optional values out of parsed HTML. Every lookup
// tolerates a path that matches nothing and reports it as a nil value instead
// of failing, so a missing element only ever blanks the field that needed it.
package selector

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func Parse(body []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}

func ParseString(fragment string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(fragment))
}

// Find returns the first element matching path under root. An empty path
// selects root itself.
func Find(root *goquery.Selection, path string) (*goquery.Selection, bool) {
	if root == nil || root.Length() == 0 {
		return nil, false
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return root.First(), true
	}
	found := root.Find(path).First()
	if found.Length() == 0 {
		return nil, false
	}
	return found, true
}

// Text returns the trimmed text of the first match, or nil.
func Text(root *goquery.Selection, path string) *string {
	found, ok := Find(root, path)
	if !ok {
		return nil
	}
	value := strings.TrimSpace(found.Text())
	return &value
}

// Attr returns the named attribute of the first match, or nil when either
// the element or the attribute is missing.
func Attr(root *goquery.Selection, path string, name string) *string {
	found, ok := Find(root, path)
	if !ok {
		return nil
	}
	value, exists := found.Attr(name)
	if !exists {
		return nil
	}
	value = strings.TrimSpace(value)
	return &value
}

func TextOr(root *goquery.Selection, path string, fallback string) string {
	if value := Text(root, path); value != nil {
		return *value
	}
	return fallback
}

func AttrOr(root *goquery.Selection, path string, name string, fallback string) string {
	if value := Attr(root, path, name); value != nil {
		return *value
	}
	return fallback
}

// Texts collects the trimmed text of every match in document order.
func Texts(root *goquery.Selection, path string) []string {
	values := []string{}
	if root == nil || strings.TrimSpace(path) == "" {
		return values
	}
	root.Find(path).Each(func(_ int, s *goquery.Selection) {
		values = append(values, strings.TrimSpace(s.Text()))
	})
	return values
}

func Exists(root *goquery.Selection, path string) bool {
	_, ok := Find(root, path)
	return ok
}
