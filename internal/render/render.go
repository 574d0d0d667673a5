// Package render turns raw turn content into the HTML fragment shown in the chat view.
package render

import (
	"regexp"
	"strings"

	"llamachat/internal/model"
)

const (
	UserGlyph      = "🧑‍💬"
	AssistantGlyph = "🤖"

	CheckGlyph  = "✅"
	BulletGlyph = "🔹"

	lineBreak = "<br />"
)

var (
	boldPattern   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern = regexp.MustCompile(`\*(.*?)\*`)

	// Quotes and ampersands are left as typed.
	markupEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")
)

// Render formats content for display and prefixes it with the glyph for role.
// It is pure: the same input always yields the same output.
func Render(content string, role model.Role) string {
	text := markupEscaper.Replace(content)

	text = boldPattern.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicPattern.ReplaceAllString(text, "<em>$1</em>")
	text = strings.ReplaceAll(text, "\n", lineBreak)
	text = listItems(text)
	text = strings.ReplaceAll(text, "</li>"+lineBreak, "</li>")
	text = wrapLists(text)

	return glyph(role) + " " + text
}

// listItems turns lines starting with "+ " or "- " into list items. Lines are
// delimited by the line-break markers, or by the ends of the text.
func listItems(text string) string {
	lines := strings.Split(text, lineBreak)
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+ "):
			lines[i] = "<li>" + CheckGlyph + " " + strings.TrimPrefix(line, "+ ") + "</li>"
		case strings.HasPrefix(line, "- "):
			lines[i] = "<li>" + BulletGlyph + " " + strings.TrimPrefix(line, "- ") + "</li>"
		}
	}
	return strings.Join(lines, lineBreak)
}

// wrapLists opens a <ul> before the first item of every contiguous run of list
// items and closes it after the last one.
func wrapLists(text string) string {
	if !strings.Contains(text, "<li>") {
		return text
	}
	text = strings.ReplaceAll(text, "<li>", "<ul><li>")
	text = strings.ReplaceAll(text, "</li>", "</li></ul>")
	return strings.ReplaceAll(text, "</li></ul><ul><li>", "</li><li>")
}

func glyph(role model.Role) string {
	if role == model.RoleUser {
		return UserGlyph
	}
	return AssistantGlyph
}
