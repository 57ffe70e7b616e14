package publish

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithRendererOptions(
		// Raw HTML in note content is not passed through.
		html.WithHardWraps(),
	),
)

func renderMarkdownHTML(src string) template.HTML {
	src = strings.TrimSpace(src)
	if src == "" {
		return template.HTML("")
	}
	var b bytes.Buffer
	if err := markdownRenderer.Convert([]byte(src), &b); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(src) + "</pre>")
	}
	return template.HTML(b.String())
}

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 46rem; margin: 2rem auto; padding: 0 1rem; }
section { border-top: 1px solid #ddd; margin-top: 2rem; }
code { font-size: .85em; }
</style>
</head>
<body>
{{range .Sections}}<section>
{{.}}
</section>
{{end}}</body>
</html>
`))

// RenderHTML renders each markdown document as a section of one standalone page.
func RenderHTML(title string, docs ...string) (string, error) {
	sections := make([]template.HTML, 0, len(docs))
	for _, d := range docs {
		sections = append(sections, renderMarkdownHTML(d))
	}
	var b bytes.Buffer
	err := pageTemplate.Execute(&b, struct {
		Title    string
		Sections []template.HTML
	}{Title: title, Sections: sections})
	return b.String(), err
}
