package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/itchan-dev/threadsim/shared/domain"
)

const (
	dateLayout      = "2 January 2006"
	timestampLayout = "2 Jan 2006 at 3:04 PM"
)

// markdownEscaper neutralises characters the generated prose never means as markup.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`, `[`, `\[`, `]`, `\]`,
	`<`, `\<`, `>`, `\>`, `#`, `\#`, `|`, `\|`, `~`, `\~`,
)

type TextProcessor struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewTextProcessor() *TextProcessor {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough),
	)

	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("blockquote", "p")
	p.RequireNoFollowOnLinks(false)

	return &TextProcessor{md: md, policy: p}
}

// PostMarkdown lays out a post as Markdown: the optional quote as a blockquote,
// then one block per paragraph with its image on the following line.
func PostMarkdown(post *domain.Post, imageURL func(domain.ImageId) string) string {
	var b strings.Builder
	if q := post.Quote; q != nil {
		fmt.Fprintf(&b, "> **On %s, %s said:**\n>\n", q.Timestamp.Format(timestampLayout), escapeMarkdown(q.Author))
		fmt.Fprintf(&b, "> %s\n\n", paragraphText(q.Paragraph))
	}
	for _, para := range post.Content {
		text := paragraphText(para)
		if para.Image != nil {
			if text != "" {
				text += "\n"
			}
			text += fmt.Sprintf("![](%s)", imageURL(*para.Image))
		}
		if text == "" {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}
	return b.String()
}

func paragraphText(para domain.ParagraphBlock) string {
	escaped := make([]string, len(para.Sentences))
	for i, s := range para.Sentences {
		escaped[i] = escapeMarkdown(s)
	}
	return escapeLeading(strings.Join(escaped, " "))
}

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// escapeLeading stops a paragraph opening with "2021." or "- " from turning into a list or heading.
func escapeLeading(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '-', '+', '=':
		return `\` + s
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')') {
		return s[:i] + `\` + s[i:]
	}
	return s
}

// Render converts Markdown to sanitised HTML.
func (tp *TextProcessor) Render(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tp.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	sanitized := tp.policy.SanitizeBytes(buf.Bytes())
	return template.HTML(strings.TrimSpace(string(sanitized))), nil
}
