package commands

import (
	"fmt"
	"io"

	"golang.org/x/net/html"

	"github.com/tdewolff-labs/cqpolyfill"
)

// transpileHTML parses an HTML document from r, rewrites every inline
// <style> element's content the same way transpileSource rewrites a
// standalone stylesheet, and renders the result to w. It returns the
// combined descriptor list across every <style> element found, in
// document order.
func transpileHTML(r io.Reader, w io.Writer, baseURL string, opts ...cqpolyfill.Option) ([]*cqpolyfill.Descriptor, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var descriptors []*cqpolyfill.Descriptor
	walkStyleElements(doc, func(styleText *html.Node) {
		result := cqpolyfill.TranspileStyleSheet(styleText.Data, baseURL, opts...)
		styleText.Data = result.Source
		descriptors = append(descriptors, result.Descriptors...)
	})

	if err := html.Render(w, doc); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return descriptors, nil
}

// walkStyleElements calls visit with the text node of every inline <style>
// element's content found in the document, the tree-walk idiom
// golang.org/x/net/html's own examples use for locating elements by tag.
func walkStyleElements(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode && n.Data == "style" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				visit(c)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkStyleElements(c, visit)
	}
}
