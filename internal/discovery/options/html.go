package options

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// metaPrefix marks meta tags carrying manifest options:
//
//	<meta name="manifest.open_in_tab" content="true" />
const metaPrefix = "manifest."

// documentMeta is the option-relevant content of an HTML entrypoint's head.
type documentMeta struct {
	// fields maps the manifest field name (without prefix) to its decoded
	// content value.
	fields map[string]any
	title  string
}

// readDocumentMeta parses an HTML entrypoint file and collects its
// manifest.* meta tags and document title. Content values shaped like array
// or object literals are decoded with the safe literal parser; they are
// never evaluated as code.
func readDocumentMeta(path string) (*documentMeta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	root, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("malformed HTML document: %w", err)
	}

	doc := &documentMeta{fields: make(map[string]any)}
	if err := doc.walk(root); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *documentMeta) walk(n *html.Node) error {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "meta":
			if err := d.readMeta(n); err != nil {
				return err
			}
		case "title":
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				d.title = strings.TrimSpace(n.FirstChild.Data)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := d.walk(c); err != nil {
			return err
		}
	}
	return nil
}

func (d *documentMeta) readMeta(n *html.Node) error {
	var name, content string
	for _, attr := range n.Attr {
		switch attr.Key {
		case "name":
			name = attr.Val
		case "content":
			content = attr.Val
		}
	}
	if !strings.HasPrefix(name, metaPrefix) {
		return nil
	}
	field := strings.TrimPrefix(name, metaPrefix)

	value, err := decodeMetaContent(content)
	if err != nil {
		return fmt.Errorf("meta tag %q: %w", name, err)
	}
	d.fields[field] = value
	return nil
}

// decodeMetaContent turns a meta content attribute into a typed value.
// Array/object shaped strings go through the literal parser, bare booleans
// and numbers are typed, anything else stays a string.
func decodeMetaContent(content string) (any, error) {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		return ParseLiteral(trimmed)
	}
	switch trimmed {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return n, nil
	}
	return trimmed, nil
}
