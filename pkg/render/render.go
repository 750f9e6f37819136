package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/velumpress/cms/pkg/content"
	"github.com/velumpress/cms/pkg/server/store"
)

// Exporter renders content read through a ContentStore
type Exporter struct {
	content store.ContentStore
	md      goldmark.Markdown
}

// NewExporter creates a new Exporter
func NewExporter(cs store.ContentStore) *Exporter {
	return &Exporter{
		content: cs,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// Markdown converts a markdown fragment to HTML
func (e *Exporter) Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := e.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

type page struct {
	Lang        string
	Code        string
	Name        string
	Description descriptionView
	Sections    []sectionView
}

type descriptionView struct {
	Title    string
	Chapters []chapterView
}

type chapterView struct {
	ID     string
	Title  string
	Blocks []blockView
}

type blockView struct {
	Type string
	HTML template.HTML
	URL  string
}

type sectionView struct {
	Name   string
	Header content.Header
	Items  []itemView
}

type itemView struct {
	ID       string
	Title    string
	Date     string
	Summary  string
	Image    string
	Bio      template.HTML
	Body     []blockView
	Children []itemView
}

// Country writes the HTML page of one country in one language
func (e *Exporter) Country(w io.Writer, lang, code string) error {
	if !e.content.CountryExists(lang, code) {
		return content.NotFound("País no encontrado")
	}

	p := page{Lang: lang, Code: code, Name: code}
	countries, err := e.content.ListCountries(lang)
	if err != nil {
		return err
	}
	for _, c := range countries {
		if c.Code == code {
			p.Name = c.Name
		}
	}

	desc, err := e.content.GetDescription(lang, code)
	if err != nil {
		return err
	}
	p.Description.Title = desc.String("title")
	for _, ch := range content.Chapters(desc) {
		blocks, err := e.blocks(ch.Blocks)
		if err != nil {
			return fmt.Errorf("chapter %s: %w", ch.ID, err)
		}
		p.Description.Chapters = append(p.Description.Chapters, chapterView{ID: ch.ID, Title: ch.Title, Blocks: blocks})
	}

	for _, sec := range content.CountrySections {
		view, err := e.section(sec, lang, code)
		if err != nil {
			return fmt.Errorf("section %s: %w", sec.Name, err)
		}
		p.Sections = append(p.Sections, view)
	}

	return pageTemplate.Execute(w, p)
}

func (e *Exporter) section(sec *content.Section, lang, code string) (sectionView, error) {
	view := sectionView{Name: sec.Name}

	header, err := e.content.GetHeader(lang, code, sec.Name)
	if err != nil {
		return view, err
	}
	view.Header = header

	items, err := e.content.ListItems(sec, lang, code)
	if err != nil {
		return view, err
	}

	child := childOf(sec)
	for _, item := range items {
		detail := item
		if !sec.IndexOnly {
			if detail, err = e.content.GetItem(sec, lang, code, item.ID()); err != nil {
				return view, err
			}
		}

		iv, err := e.item(detail)
		if err != nil {
			return view, err
		}
		if child != nil {
			for _, ref := range detail.Records(child.Field) {
				childDetail, err := e.content.GetChild(child, lang, code, item.ID(), ref.ID())
				if err != nil {
					return view, err
				}
				cv, err := e.item(childDetail)
				if err != nil {
					return view, err
				}
				iv.Children = append(iv.Children, cv)
			}
		}
		view.Items = append(view.Items, iv)
	}
	return view, nil
}

func (e *Exporter) item(rec content.Record) (itemView, error) {
	title := rec.String("title")
	if title == "" {
		title = rec.String("name")
	}
	iv := itemView{
		ID:      rec.ID(),
		Title:   title,
		Date:    rec.String("date"),
		Summary: rec.String("summary"),
		Image:   rec.String("image"),
	}
	if iv.Image == "" && rec.String("type") == "image" {
		iv.Image = rec.String("url")
	}

	if bio := rec.String("bio"); bio != "" {
		html, err := e.Markdown(bio)
		if err != nil {
			return iv, err
		}
		iv.Bio = html
	}

	raw, _ := rec["paragraphs"].([]any)
	body, err := e.blocks(content.Blocks(raw))
	if err != nil {
		return iv, err
	}
	iv.Body = body
	return iv, nil
}

func (e *Exporter) blocks(blocks []content.Block) ([]blockView, error) {
	out := make([]blockView, 0, len(blocks))
	for _, b := range blocks {
		bv := blockView{Type: b.Type, URL: b.URL}
		if b.Type == "text" {
			html, err := e.Markdown(b.Content)
			if err != nil {
				return nil, err
			}
			bv.HTML = html
		}
		out = append(out, bv)
	}
	return out, nil
}

func childOf(sec *content.Section) *content.Child {
	for _, c := range content.Children {
		if c.Parent == sec {
			return c
		}
	}
	return nil
}
