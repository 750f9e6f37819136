package render

import "html/template"

var pageTemplate = template.Must(template.New("country").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
</head>
<body>
<h1>{{.Name}}</h1>
<section id="description">
<h2>{{.Description.Title}}</h2>
{{- range .Description.Chapters}}
<article id="{{.ID}}">
<h3>{{.Title}}</h3>
{{template "blocks" .Blocks}}
</article>
{{- end}}
</section>
{{- range .Sections}}
{{- if .Items}}
<section id="{{.Name}}">
<h2>{{if .Header.Title}}{{.Header.Title}}{{else}}{{.Name}}{{end}}</h2>
{{- if .Header.Description}}
<p class="section-description">{{.Header.Description}}</p>
{{- end}}
{{- range .Items}}
{{template "item" .}}
{{- end}}
</section>
{{- end}}
{{- end}}
</body>
</html>
{{define "item"}}<article id="{{.ID}}">
<h3>{{.Title}}</h3>
{{- if .Date}}
<time>{{.Date}}</time>
{{- end}}
{{- if .Image}}
<img src="{{.Image}}" alt="{{.Title}}">
{{- end}}
{{- if .Summary}}
<p class="summary">{{.Summary}}</p>
{{- end}}
{{.Bio}}
{{template "blocks" .Body}}
{{- range .Children}}
{{template "item" .}}
{{- end}}
</article>{{end}}
{{define "blocks"}}{{range .}}
{{- if eq .Type "text"}}{{.HTML}}
{{- else if eq .Type "image"}}<figure><img src="{{.URL}}" alt=""></figure>
{{- else if eq .Type "video"}}<video controls src="{{.URL}}"></video>
{{- else}}<p><a href="{{.URL}}">{{.URL}}</a></p>
{{- end}}
{{end}}{{end}}`))
