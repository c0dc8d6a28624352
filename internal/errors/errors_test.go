package errors

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-es5/internal/lexer"
)

func TestFormatIncludesCaretAtColumn(t *testing.T) {
	src := "var x = ;\n"
	e := NewCompilerError("SyntaxError", lexer.Position{Line: 1, Column: 9}, "unexpected ';'", src, "main.js")
	out := e.Format(false)

	if !strings.Contains(out, "main.js:1: SyntaxError: unexpected ';'") {
		t.Errorf("missing header line, got:\n%s", out)
	}
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected a source line and caret line, got %d lines", len(lines))
	}
	caretLine := lines[2]
	if !strings.HasSuffix(caretLine, "^") {
		t.Errorf("caret line should end with ^, got %q", caretLine)
	}
}

func TestFormatWithoutSourceOmitsSnippet(t *testing.T) {
	e := NewCompilerError("TypeError", lexer.Position{Line: 1, Column: 1}, "x is not a function", "", "")
	out := e.Format(false)
	if strings.Count(out, "\n") != 0 {
		t.Errorf("expected a single header line with no source, got:\n%s", out)
	}
	if !strings.Contains(out, "<anonymous>") {
		t.Error("missing file, should fall back to <anonymous>")
	}
}

func TestFormatErrorsSingleVsMultiple(t *testing.T) {
	e1 := NewCompilerError("SyntaxError", lexer.Position{Line: 1, Column: 1}, "a", "", "f.js")
	single := FormatErrors([]*CompilerError{e1}, false)
	if strings.Contains(single, "errors:") {
		t.Error("a single error should not get the batch header")
	}

	e2 := NewCompilerError("SyntaxError", lexer.Position{Line: 2, Column: 1}, "b", "", "f.js")
	multi := FormatErrors([]*CompilerError{e1, e2}, false)
	if !strings.Contains(multi, "2 errors:") {
		t.Errorf("expected batch header for multiple errors, got:\n%s", multi)
	}
}
