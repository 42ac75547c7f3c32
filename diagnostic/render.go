package diagnostic

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// Position is a 1-based line and column (counted in runes).
type Position struct {
	Line   int
	Column int
}

// PositionOf converts a byte offset into source to a Position.
func PositionOf(source string, offset int) Position {
	offset = min(max(offset, 0), len(source))
	before := source[:offset]
	line := strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1

	return Position{Line: line, Column: utf8.RuneCountInString(before[lineStart:]) + 1}
}

// Renderer draws diagnostics with a pointer into the source they refer to.
type Renderer struct {
	name   string
	source string

	errorStyle    lipgloss.Style
	warningStyle  lipgloss.Style
	locationStyle lipgloss.Style
	gutterStyle   lipgloss.Style
	caretStyle    lipgloss.Style
	hintStyle     lipgloss.Style
}

// NewRenderer returns a Renderer whose colors suit w.
func NewRenderer(w io.Writer, name, source string) *Renderer {
	re := lipgloss.NewRenderer(w)

	return &Renderer{
		name:          name,
		source:        source,
		errorStyle:    re.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		warningStyle:  re.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		locationStyle: re.NewStyle().Foreground(lipgloss.Color("6")),
		gutterStyle:   re.NewStyle().Foreground(lipgloss.Color("8")),
		caretStyle:    re.NewStyle().Foreground(lipgloss.Color("1")),
		hintStyle:     re.NewStyle().Foreground(lipgloss.Color("4")),
	}
}

// Render returns the text for a single error.
func (r *Renderer) Render(d Diagnostic) string {
	return r.render(r.errorStyle.Render("error:"), d)
}

// RenderWarning is Render for a warning.
func (r *Renderer) RenderWarning(d Diagnostic) string {
	return r.render(r.warningStyle.Render("warning:"), d)
}

func (r *Renderer) render(label string, d Diagnostic) string {
	span := d.Span()
	pos := PositionOf(r.source, span.Start)
	lineText := r.line(pos.Line)

	gutterWidth := len(strconv.Itoa(pos.Line))
	pad := strings.Repeat(" ", gutterWidth)
	bar := r.gutterStyle.Render(pad + " |")

	width := utf8.RuneCountInString(r.source[min(span.Start, len(r.source)):min(max(span.End, span.Start), len(r.source))])
	if rest := utf8.RuneCountInString(lineText) - pos.Column + 1; width > rest {
		width = rest
	}
	width = max(width, 1)

	var b strings.Builder
	b.WriteString(label)
	b.WriteString(" ")
	b.WriteString(d.Error())
	b.WriteString("\n")
	b.WriteString(pad)
	b.WriteString(r.locationStyle.Render(fmt.Sprintf("--> %s:%d:%d", r.name, pos.Line, pos.Column)))
	b.WriteString("\n")
	b.WriteString(bar)
	b.WriteString("\n")
	b.WriteString(r.gutterStyle.Render(fmt.Sprintf("%*d |", gutterWidth, pos.Line)))
	b.WriteString(" ")
	b.WriteString(lineText)
	b.WriteString("\n")
	b.WriteString(bar)
	b.WriteString(" ")
	b.WriteString(strings.Repeat(" ", pos.Column-1))
	b.WriteString(r.caretStyle.Render(strings.Repeat("^", width)))
	b.WriteString("\n")

	return b.String()
}

// Hint renders a secondary line such as a suggestion.
func (r *Renderer) Hint(msg string) string {
	return r.hintStyle.Render("hint: "+msg) + "\n"
}

// Fprint writes every diagnostic carried by err to w.
// Errors that are not diagnostics are written as plain messages.
func (r *Renderer) Fprint(w io.Writer, err error) error {
	ds := All(err)
	if len(ds) == 0 {
		_, werr := fmt.Fprintf(w, "%s %v\n", r.errorStyle.Render("error:"), err)
		return werr
	}
	for _, d := range ds {
		if _, werr := io.WriteString(w, r.Render(d)); werr != nil {
			return werr
		}
	}
	return nil
}

func (r *Renderer) line(n int) string {
	lines := strings.Split(r.source, "\n")
	if n-1 >= len(lines) {
		return ""
	}
	return strings.TrimRight(lines[n-1], "\r")
}

// Suggest returns up to three candidates that fuzzily match name, best first.
func Suggest(name string, candidates []string) []string {
	matches := fuzzy.Find(name, candidates)
	suggestions := make([]string, 0, 3)
	for _, match := range matches {
		if match.Str == name {
			continue
		}
		suggestions = append(suggestions, match.Str)
		if len(suggestions) == cap(suggestions) {
			break
		}
	}
	return suggestions
}
