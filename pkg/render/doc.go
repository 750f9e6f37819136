// Package render exports published country content as a standalone HTML
// page. Paragraph text is treated as markdown and rendered with goldmark;
// raw HTML inside content is omitted.
package render
