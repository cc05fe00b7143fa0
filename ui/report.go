package ui

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gomeans/ports"
)

// RunReportMarkdown renders a persisted run as a markdown document.
func RunReportMarkdown(run *ports.TestRun) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# %s\n\n", run.Result.TestName))
	b.WriteString(fmt.Sprintf("Run `%s`", run.ID))
	if run.SweepID != "" {
		b.WriteString(fmt.Sprintf(" (sweep `%s`)", run.SweepID))
	}
	b.WriteString(fmt.Sprintf(", executed %s.\n\n", run.CreatedAt.Time().Format("2006-01-02 15:04:05 MST")))

	b.WriteString("| Quantity | Value |\n")
	b.WriteString("|---|---|\n")
	b.WriteString(fmt.Sprintf("| Groups | %d |\n", run.GroupCount))
	b.WriteString(fmt.Sprintf("| Observations | %d |\n", run.SampleSize))
	b.WriteString(fmt.Sprintf("| Alpha | %g |\n", run.Options.Alpha))
	b.WriteString(fmt.Sprintf("| Statistic | %.6f |\n", run.Result.Statistic))
	b.WriteString(fmt.Sprintf("| df1 | %g |\n", run.Result.DF1))
	if run.Result.DF2 != nil {
		b.WriteString(fmt.Sprintf("| df2 | %.4f |\n", *run.Result.DF2))
	}
	if run.Result.PValue != nil {
		b.WriteString(fmt.Sprintf("| p-value | %.6f |\n", *run.Result.PValue))
	}
	if run.Result.CriticalValue != nil {
		b.WriteString(fmt.Sprintf("| Critical value | %.6f |\n", *run.Result.CriticalValue))
	}
	b.WriteString(fmt.Sprintf("| Reject H0 | %t |\n", run.Result.Reject))
	b.WriteString("\n")

	if run.Result.Comment != "" {
		b.WriteString(fmt.Sprintf("Variant: %s.\n\n", run.Result.Comment))
	}

	if run.Result.Reject {
		b.WriteString(fmt.Sprintf("At alpha %g the hypothesis of equal group means is **rejected**.\n", run.Options.Alpha))
	} else {
		b.WriteString(fmt.Sprintf("At alpha %g the hypothesis of equal group means is **not rejected**.\n", run.Options.Alpha))
	}
	return b.String()
}

// RenderHTML converts a markdown report to HTML.
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}
