package content

// DefaultDescriptionTitle is served when a country has no description yet
const DefaultDescriptionTitle = "Descripción del Conflicto"

// Header is a per-section heading stored in section-headers.json
type Header struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NewDescription normalizes a description document: a missing title takes
// the default and missing chapters become an empty list
func NewDescription(data Record) Record {
	title, _ := data["title"].(string)
	if title == "" {
		title = DefaultDescriptionTitle
	}
	chapters, ok := data["chapters"].([]any)
	if !ok || chapters == nil {
		chapters = []any{}
	}
	return Record{"title": title, "chapters": chapters}
}

// Chapter is a read view over a description chapter
type Chapter struct {
	ID     string
	Title  string
	Blocks []Block
}

// Block is one piece of chapter or paragraph content. Plain strings are
// text blocks.
type Block struct {
	Type    string
	Content string
	URL     string
}

// Chapters decodes the chapters of a description document. Chapters carry
// either contentBlocks or the older paragraphs list.
func Chapters(desc Record) []Chapter {
	var out []Chapter
	for _, ch := range desc.Records("chapters") {
		c := Chapter{ID: ch.String("id"), Title: ch.String("title")}
		if raw, ok := ch["contentBlocks"].([]any); ok && len(raw) > 0 {
			c.Blocks = Blocks(raw)
		} else {
			c.Blocks = Blocks(asSlice(ch["paragraphs"]))
		}
		out = append(out, c)
	}
	return out
}

// Blocks decodes a paragraphs array whose elements are strings or
// {type, content, url} objects
func Blocks(raw []any) []Block {
	out := make([]Block, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case string:
			out = append(out, Block{Type: "text", Content: v})
		case map[string]any:
			b := Block{Type: Record(v).String("type"), Content: Record(v).String("content"), URL: Record(v).String("url")}
			if b.Type == "" {
				b.Type = "text"
			}
			if b.Type != "text" && b.URL == "" {
				b.URL = b.Content
			}
			out = append(out, b)
		}
	}
	return out
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}
