// Package collection reads BGG collection exports.
package collection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// UnratedValue is the literal rating BGG reports for games the owner never rated.
const UnratedValue = "N/A"

var (
	ErrNoRoot        = errors.New("collection: root element is missing")
	ErrMultipleRoots = errors.New("collection: multiple root elements")
)

// Parse reads a collection export into a DOM. The body must hold exactly one root element.
func Parse(body []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("collection: parse xml: %w", err)
	}
	switch roots := len(doc.ChildElements()); {
	case roots == 0:
		return nil, ErrNoRoot
	case roots > 1:
		return nil, ErrMultipleRoots
	}
	return doc, nil
}

// ParseUnrated parses body and returns the names of its unrated games.
func ParseUnrated(body []byte) ([]string, error) {
	doc, err := Parse(body)
	if err != nil {
		return nil, err
	}
	return ExtractUnrated(doc), nil
}

// ExtractUnrated returns, in document order, the name of every item whose
// stats/rating value is exactly "N/A". Items with a blank or missing rating are
// skipped too, as are items without a non-blank name.
func ExtractUnrated(doc *etree.Document) []string {
	names := []string{}
	if doc == nil {
		return names
	}
	for _, item := range descendants(&doc.Element, "item") {
		if ratingValue(item) != UnratedValue {
			continue
		}
		name, ok := itemName(item)
		if !ok {
			continue
		}
		names = append(names, name)
	}
	return names
}

func ratingValue(item *etree.Element) string {
	stats := child(item, "stats")
	if stats == nil {
		return ""
	}
	rating := child(stats, "rating")
	if rating == nil {
		return ""
	}
	for _, attr := range rating.Attr {
		if attr.Space == "" && attr.Key == "value" {
			return attr.Value
		}
	}
	return ""
}

func itemName(item *etree.Element) (string, bool) {
	el := child(item, "name")
	if el == nil {
		return "", false
	}
	name := textContent(el)
	if strings.TrimSpace(name) == "" {
		return "", false
	}
	return name, true
}

// child returns the first direct child named tag with no namespace prefix.
// BGG never prefixes these elements, so a prefixed match is not the same element.
func child(el *etree.Element, tag string) *etree.Element {
	for _, c := range el.ChildElements() {
		if c.Space == "" && c.Tag == tag {
			return c
		}
	}
	return nil
}

// descendants walks el depth-first and returns every element named tag, in document order.
func descendants(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.Space == "" && c.Tag == tag {
			out = append(out, c)
		}
		out = append(out, descendants(c, tag)...)
	}
	return out
}

// textContent concatenates all character data below el.
func textContent(el *etree.Element) string {
	var b strings.Builder
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			b.WriteString(textContent(t))
		}
	}
	return b.String()
}
