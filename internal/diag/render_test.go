package diag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const renderSource = "DEPLOYMENT-ID DEMO\nSERVICES SECTION\nSERVICE web\nIMAGE-ID nginx\n"

func TestRenderGutterAndCaret(t *testing.T) {
	d := New(OptionError, Span{StartLine: 3, StartCol: 8}, "bad service declaration")

	out := Render(renderSource, d)

	assert.True(t, strings.HasPrefix(out, "Error: OptionError: bad service declaration\n"))
	assert.Contains(t, out, " 3 | SERVICE web\n")
	assert.Contains(t, out, "^ Error here")
}

func TestRenderWarningUsesWarningLabel(t *testing.T) {
	d := Warn(ShapeError, Span{StartLine: 1, StartCol: 0}, "suspicious value")
	out := Render(renderSource, d)
	assert.True(t, strings.HasPrefix(out, "Warning: ShapeError: suspicious value\n"))
}

func TestRenderOmitsAffectedServicesWhenEmpty(t *testing.T) {
	d := New(ParseError, Span{}, "syntax error")
	out := Render(renderSource, d)
	assert.NotContains(t, out, "Affected services")
}

func TestRenderIncludesAffectedServicesWhenPresent(t *testing.T) {
	d := New(PortConflict, Span{StartLine: 4, StartCol: 1}, "duplicate host port 8080").
		WithAffected("svc1", "svc2")
	out := Render(renderSource, d)
	assert.Contains(t, out, "Affected services: svc1, svc2\n")
}

func TestRenderOmitsSuggestionWhenAbsent(t *testing.T) {
	d := New(ReferenceError, Span{}, "unknown service")
	out := Render(renderSource, d)
	assert.NotContains(t, out, "Suggestion")
}

func TestRenderIncludesSuggestionWhenPresent(t *testing.T) {
	d := New(ReferenceError, Span{StartLine: 4, StartCol: 1}, "unknown service 'backend2'").
		WithSuggestion("Did you mean 'backend'?")
	out := Render(renderSource, d)
	assert.Contains(t, out, "Suggestion: Did you mean 'backend'?\n")
}

func TestRenderSkipsSourceFrameWhenNoLineInfo(t *testing.T) {
	d := InternalError("emit", nil)
	out := Render(renderSource, d)
	assert.NotContains(t, out, "|")
}
