package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/lipgloss"

	"github.com/Adda-Baaj/newsq/internal/domain"
)

const (
	colorTitle   = "#7D56F4"
	colorAnswer  = "#04B575"
	colorError   = "#FF0000"
	colorWarning = "#FFB454"
	colorMuted   = "#626262"
)

// Display renders results for a terminal. Styling degrades to plain text when
// the writer is not a terminal.
type Display struct {
	out io.Writer

	header  lipgloss.Style
	title   lipgloss.Style
	url     lipgloss.Style
	answer  lipgloss.Style
	errLbl  lipgloss.Style
	warning lipgloss.Style
}

// NewDisplay returns a Display writing to w.
func NewDisplay(w io.Writer) *Display {
	r := lipgloss.NewRenderer(w)
	return &Display{
		out:     w,
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorTitle)),
		title:   r.NewStyle().Bold(true),
		url:     r.NewStyle().Foreground(lipgloss.Color(colorMuted)),
		answer:  r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAnswer)),
		errLbl:  r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorError)),
		warning: r.NewStyle().Foreground(lipgloss.Color(colorWarning)),
	}
}

// Articles prints a numbered list, or a notice when there is nothing to show.
func (d *Display) Articles(articles []domain.Article) {
	if len(articles) == 0 {
		fmt.Fprintln(d.out, d.warning.Render("No articles found."))
		return
	}

	fmt.Fprintln(d.out, d.header.Render(fmt.Sprintf("Found %d articles:", len(articles))))
	fmt.Fprintln(d.out)
	for i, a := range articles {
		fmt.Fprintf(d.out, "%d. %s\n", i+1, d.title.Render(a.Title))
		if desc := plainText(a.Description); desc != "" {
			fmt.Fprintf(d.out, "   %s\n", desc)
		}
		if a.URL != "" {
			fmt.Fprintf(d.out, "   %s\n", d.url.Render(a.URL))
		}
		fmt.Fprintln(d.out)
	}
}

// Answer prints the analyzer's answer unchanged.
func (d *Display) Answer(answer string) {
	fmt.Fprintf(d.out, "\n%s %s\n", d.answer.Render("Answer:"), answer)
}

// Error prints err labelled with its kind.
func (d *Display) Error(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(d.out, "%s %s\n", d.errLbl.Render(errorLabel(err)+":"), err.Error())
}

// Warning prints a non-fatal notice.
func (d *Display) Warning(msg string) {
	fmt.Fprintln(d.out, d.warning.Render("Warning: "+msg))
}

func errorLabel(err error) string {
	if kind, ok := domain.KindOf(err); ok {
		return kind.String()
	}
	return "Error"
}

// plainText flattens an HTML fragment into a single line of text.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
