// Package render draws headline states and article details as text,
// either plain or in telegram-flavored markdown.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/Semior001/headlines/app/headlines"
	"github.com/Semior001/headlines/app/news"
	"github.com/Semior001/headlines/app/reader"
	"github.com/Semior001/headlines/app/textfmt"
)

// Renderer renders states and details.
type Renderer struct {
	tmpl *template.Template
	// MaxBody limits the length of the article body in details, 0 means no limit.
	MaxBody int
}

// Plain returns a renderer for terminals.
func Plain() Renderer { return Renderer{tmpl: plainTmpl} }

// Markdown returns a renderer for telegram messages.
func Markdown(maxBody int) Renderer { return Renderer{tmpl: markdownTmpl, MaxBody: maxBody} }

type stateData struct {
	Source   news.Source
	Message  string
	Articles []news.Article
}

// State renders the given headline state.
func (r Renderer) State(w io.Writer, src news.Source, s headlines.State) error {
	data := stateData{Source: src}

	var name string
	switch s := s.(type) {
	case headlines.Loading:
		name = "loading"
	case headlines.Error:
		name, data.Message = "error", s.Message
	case headlines.Success:
		name, data.Articles = "success", s.Articles
	default:
		return fmt.Errorf("unknown state %T", s)
	}

	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("execute %s template: %w", name, err)
	}
	return nil
}

type detailData struct {
	reader.Detail
	Body string
}

// Detail renders the detail view of an article.
func (r Renderer) Detail(w io.Writer, d reader.Detail) error {
	body := d.Text
	if body == "" {
		body = textfmt.CleanContent(news.Value(d.Content))
	}

	if err := r.tmpl.ExecuteTemplate(w, "detail", detailData{Detail: d, Body: truncate(body, r.MaxBody)}); err != nil {
		return fmt.Errorf("execute detail template: %w", err)
	}
	return nil
}

func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "…"
}

// legacy telegram markdown escapes only these
var mdEscaper = strings.NewReplacer(
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	"[", "\\[",
)

// EscapeMarkdown escapes telegram markdown control characters.
func EscapeMarkdown(s string) string { return mdEscaper.Replace(s) }

// link target can't be escaped, so characters that end the link
// or start an entity are percent-encoded
var linkEscaper = strings.NewReplacer(
	"(", "%28",
	")", "%29",
	"_", "%5F",
	"*", "%2A",
	"`", "%60",
	"[", "%5B",
	"]", "%5D",
)

// EscapeLink makes the url safe to use as a markdown link target.
func EscapeLink(u string) string { return linkEscaper.Replace(u) }

func funcs(esc func(string) string) template.FuncMap {
	return template.FuncMap{
		"val":  news.Value,
		"date": func(p *string) string { return textfmt.FormatDate(news.Value(p)) },
		"inc":  func(i int) int { return i + 1 },
		"esc":  esc,
		"link": EscapeLink,
		"title": func(p *string) string {
			if t := strings.TrimSpace(news.Value(p)); t != "" {
				return t
			}
			return "(untitled)"
		},
	}
}

var plainTmpl = template.Must(template.New("plain").
	Funcs(funcs(func(s string) string { return s })).
	Parse(`
{{- define "loading" -}}
Loading {{ .Source.Name }} headlines...
{{ end -}}

{{- define "error" -}}
Failed to load headlines: {{ .Message }}
{{ end -}}

{{- define "success" -}}
{{ .Source.Name }} top headlines
{{ range $i, $a := .Articles }}
{{ inc $i }}. {{ title $a.Title }}
{{- with date $a.PublishedAt }} [{{ . }}]{{ end }}
{{- with val $a.Description }}
   {{ . }}
{{- end }}
{{ else }}
No headlines.
{{ end -}}
{{ end -}}

{{- define "detail" -}}
{{ title .Title }}
{{- with date .PublishedAt }}
{{ . }}
{{- end }}
{{- with val .Description }}

{{ . }}
{{- end }}
{{- with .Body }}

{{ . }}
{{- end }}
{{- with .BulletPoints }}

Summary:
{{ . }}
{{- end }}
{{- with val .ImageURL }}

Image: {{ . }}
{{- end }}
{{- with val .URL }}
Link: {{ . }}
{{- end }}
{{ end -}}
`))

var markdownTmpl = template.Must(template.New("markdown").
	Funcs(funcs(EscapeMarkdown)).
	Parse(`
{{- define "loading" -}}
Loading {{ esc .Source.Name }} headlines...
{{- end -}}

{{- define "error" -}}
Failed to load headlines: {{ esc .Message }}
{{- end -}}

{{- define "success" -}}
*{{ esc .Source.Name }}*
{{ range $i, $a := .Articles }}
{{ inc $i }}. *{{ esc (title $a.Title) }}*
{{- with date $a.PublishedAt }} _{{ . }}_{{ end }}
{{- with val $a.Description }}
{{ esc . }}
{{- end }}
{{ else }}
No headlines.
{{- end -}}
{{- end -}}

{{- define "detail" -}}
*{{ esc (title .Title) }}*
{{- with date .PublishedAt }}
_{{ . }}_
{{- end }}
{{- with val .Description }}

{{ esc . }}
{{- end }}
{{- with .Body }}

{{ esc . }}
{{- end }}
{{- with .BulletPoints }}

*Summary*
{{ esc . }}
{{- end }}
{{- with val .URL }}

[source]({{ link . }})
{{- end }}
{{- end -}}
`))
