// Package inject provides registry.Injector implementations: an in-process
// XHTML document, a SQLite backed stylesheet store and a fan-out combinator.
package inject

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/beevik/etree"
	"golang.org/x/text/language"
)

// ScopeAttr marks style elements owned by the registry.
const ScopeAttr = "data-scope"

// ErrNoHead is returned when a loaded page has no <head> element.
var ErrNoHead = errors.New("document has no head element")

// Document keeps one <style data-scope="class"> element per class in the
// page head. Replacing rules only swaps the element text so a single
// mutation is ever visible.
type Document struct {
	mu   sync.Mutex
	doc  *etree.Document
	head *etree.Element
}

// NewDocument creates an empty XHTML page.
func NewDocument(title string) *Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	head := html.CreateElement("head")
	head.CreateElement("title").SetText(title)
	html.CreateElement("body")

	return &Document{doc: doc, head: head}
}

// LoadDocument reads an existing XHTML page, styles are managed in its head.
func LoadDocument(r io.Reader) (*Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read document: %w", err)
	}
	head := doc.FindElement("//head")
	if head == nil {
		return nil, ErrNoHead
	}
	return &Document{doc: doc, head: head}, nil
}

// SetLanguage marks page content language.
func (d *Document) SetLanguage(tag language.Tag) {
	d.mu.Lock()
	defer d.mu.Unlock()

	html := d.doc.Root()
	if html == nil {
		return
	}
	html.CreateAttr("lang", tag.String())
	html.CreateAttr("xml:lang", tag.String())
}

func (d *Document) find(className string) *etree.Element {
	for _, el := range d.head.SelectElements("style") {
		if el.SelectAttrValue(ScopeAttr, "") == className {
			return el
		}
	}
	return nil
}

// InjectScoped implements registry.Injector.
func (d *Document) InjectScoped(_ context.Context, css, className string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	el := d.find(className)
	if el == nil {
		el = d.head.CreateElement("style")
		el.CreateAttr(ScopeAttr, className)
	}
	el.SetCData(css)
	return nil
}

// ClearRule implements registry.Injector.
func (d *Document) ClearRule(_ context.Context, className string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el := d.find(className); el != nil {
		d.head.RemoveChild(el)
	}
	return nil
}

// ClearAll implements registry.Injector. Style elements not created by the
// registry are left alone.
func (d *Document) ClearAll(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, el := range d.head.SelectElements("style") {
		if el.SelectAttr(ScopeAttr) != nil {
			d.head.RemoveChild(el)
		}
	}
	return nil
}

// CSS returns rules currently present for className.
func (d *Document) CSS(className string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el := d.find(className); el != nil {
		return el.Text(), true
	}
	return "", false
}

// Scopes returns classes with style elements in document order.
func (d *Document) Scopes() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var names []string
	for _, el := range d.head.SelectElements("style") {
		if a := el.SelectAttr(ScopeAttr); a != nil {
			names = append(names, a.Value)
		}
	}
	return names
}

// WriteTo writes indented page to w, implementing io.WriterTo.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.doc.Indent(2)
	return d.doc.WriteTo(w)
}

// String returns the page text.
func (d *Document) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.doc.Indent(2)
	s, _ := d.doc.WriteToString()
	return s
}
