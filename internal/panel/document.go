package panel

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// ErrMissingElement is returned by Require when the page lacks an element the panel drives.
var ErrMissingElement = errors.New("missing element")

type element struct {
	classes []string
	text    string
	checked bool
}

// Document is the subset of a page the panel reads and writes: elements
// addressed by id, each with a class list, text content and a checked flag.
// Operations on an unknown id are no-ops.
type Document struct {
	mu    sync.RWMutex
	elems map[string]*element
}

// NewDocument returns a document holding empty elements with the given ids.
func NewDocument(ids ...string) *Document {
	d := &Document{elems: make(map[string]*element, len(ids))}
	for _, id := range ids {
		d.elems[id] = &element{}
	}
	return d
}

// ParseDocument reads an HTML page and keeps every element that has an id.
func ParseDocument(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	d := NewDocument()
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id, ok := attr(n, "id"); ok && id != "" {
				if _, dup := d.elems[id]; !dup {
					class, _ := attr(n, "class")
					_, checked := attr(n, "checked")
					d.elems[id] = &element{
						classes: strings.Fields(class),
						text:    textContent(n),
						checked: checked,
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return d, nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// Require fails with ErrMissingElement naming every absent id.
func (d *Document) Require(ids ...string) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var missing []string
	for _, id := range ids {
		if _, ok := d.elems[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingElement, strings.Join(missing, ", "))
	}
	return nil
}

func (d *Document) update(id string, fn func(e *element)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if e, ok := d.elems[id]; ok {
		fn(e)
	}
}

func (d *Document) read(id string, fn func(e *element)) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if e, ok := d.elems[id]; ok {
		fn(e)
	}
}

// ReplaceClass swaps oldClass for newClass in place; it does nothing unless oldClass is present.
func (d *Document) ReplaceClass(id, oldClass, newClass string) bool {
	replaced := false
	d.update(id, func(e *element) {
		i := slices.Index(e.classes, oldClass)
		if i < 0 {
			return
		}
		if slices.Contains(e.classes, newClass) {
			e.classes = slices.Delete(e.classes, i, i+1)
		} else {
			e.classes[i] = newClass
		}
		replaced = true
	})
	return replaced
}

func (d *Document) AddClass(id, class string) {
	d.update(id, func(e *element) {
		if !slices.Contains(e.classes, class) {
			e.classes = append(e.classes, class)
		}
	})
}

func (d *Document) RemoveClass(id, class string) {
	d.update(id, func(e *element) {
		e.classes = slices.DeleteFunc(e.classes, func(c string) bool { return c == class })
	})
}

func (d *Document) HasClass(id, class string) bool {
	var has bool
	d.read(id, func(e *element) { has = slices.Contains(e.classes, class) })
	return has
}

// Classes returns a copy of the element's class list.
func (d *Document) Classes(id string) []string {
	var out []string
	d.read(id, func(e *element) { out = slices.Clone(e.classes) })
	return out
}

func (d *Document) SetText(id, text string) {
	d.update(id, func(e *element) { e.text = text })
}

func (d *Document) Text(id string) string {
	var s string
	d.read(id, func(e *element) { s = e.text })
	return s
}

func (d *Document) SetChecked(id string, checked bool) {
	d.update(id, func(e *element) { e.checked = checked })
}

func (d *Document) Checked(id string) bool {
	var c bool
	d.read(id, func(e *element) { c = e.checked })
	return c
}
