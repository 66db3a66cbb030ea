package sandbox

import (
	"fmt"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// scriptEntry is one <script> element in document order.
type scriptEntry struct {
	src  string
	body string
}

// parsedDocument is what the sandbox needs from an HTML document.
type parsedDocument struct {
	blocks     map[string]any
	containers []any
	scripts    []scriptEntry
	baseHref   string
}

func parseDocument(doc string) (*parsedDocument, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("sandbox: parse document: %w", err)
	}

	out := &parsedDocument{blocks: make(map[string]any)}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script:
				out.addScript(n)
			case atom.Div:
				if id := attr(n, "id"); id != "" {
					out.containers = append(out.containers, id)
				}
			case atom.Base:
				out.baseHref = attr(n, "href")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out, nil
}

func (p *parsedDocument) addScript(n *html.Node) {
	body := textContent(n)
	switch strings.ToLower(attr(n, "type")) {
	case "application/json":
		if id := attr(n, "id"); id != "" {
			p.blocks[id] = body
		}
	case "", "text/javascript", "application/javascript":
		if src := attr(n, "src"); src != "" {
			p.scripts = append(p.scripts, scriptEntry{src: src})
			return
		}
		p.scripts = append(p.scripts, scriptEntry{body: body})
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// shimFor maps an external script to the stand-in the sandbox runs instead.
// Unknown scripts are skipped.
func shimFor(src string) string {
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		src = src[:i]
	}
	name := strings.ToLower(path.Base(src))
	switch {
	case strings.Contains(name, "formio"):
		return "js/formio.js"
	case strings.Contains(name, "jquery"):
		return "js/jquery.js"
	default:
		return ""
	}
}
