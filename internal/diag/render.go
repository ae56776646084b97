package diag

import (
	"strconv"
	"strings"
)

// Render produces the human-facing rendering of d against the original
// source text, in the exact shape the diagnostic facility's rendering
// contract specifies:
//
//	Error: <kind>: <message>
//	   |
//	 L | <source line L>
//	   |                   ^ Error here
//
//	Affected services: a, b, c
//
//	Suggestion: <suggestion text>
//
// The "Affected services" line only appears when AffectedServices is
// non-empty; the Suggestion line only appears when Suggestion is set.
func Render(source string, d *Diagnostic) string {
	var b strings.Builder

	label := "Error"
	if d.Severity == SeverityWarning {
		label = "Warning"
	}
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(string(d.Kind))
	b.WriteString(": ")
	b.WriteString(d.Message)
	b.WriteByte('\n')

	line := d.Primary.StartLine
	col := d.Primary.StartCol
	if line > 0 {
		lineText := sourceLine(source, line)
		lineNum := strconv.Itoa(line)
		gutter := strings.Repeat(" ", len(lineNum)+2) + "|"

		b.WriteString(gutter)
		b.WriteByte('\n')

		b.WriteByte(' ')
		b.WriteString(lineNum)
		b.WriteString(" | ")
		b.WriteString(lineText)
		b.WriteByte('\n')

		b.WriteString(gutter)
		if col > 0 {
			b.WriteString(strings.Repeat(" ", col))
		}
		b.WriteString("^ Error here")
		b.WriteByte('\n')
	}

	if len(d.AffectedServices) > 0 {
		b.WriteByte('\n')
		b.WriteString("Affected services: ")
		b.WriteString(strings.Join(d.AffectedServices, ", "))
		b.WriteByte('\n')
	}

	if d.Suggestion != "" {
		b.WriteByte('\n')
		b.WriteString("Suggestion: ")
		b.WriteString(d.Suggestion)
		b.WriteByte('\n')
	}

	return b.String()
}

// sourceLine returns the 1-indexed line n of source, or "" if out of range.
func sourceLine(source string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// RenderAll renders every diagnostic in order, separated by blank lines.
func RenderAll(source string, diags []*Diagnostic) string {
	parts := make([]string, 0, len(diags))
	for _, d := range diags {
		parts = append(parts, Render(source, d))
	}
	return strings.Join(parts, "\n")
}
