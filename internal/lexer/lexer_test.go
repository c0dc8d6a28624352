package lexer

import "testing"

func allTokens(t *testing.T, input string, strict bool) []Token {
	t.Helper()
	l := New(input)
	var toks []Token
	for {
		tok := l.Next(strict, IdentifyReserved)
		toks = append(toks, tok)
		if tok.Type == EOF {
			break
		}
	}
	if err := l.Err(); err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	return toks
}

func TestPunctuators(t *testing.T) {
	toks := allTokens(t, "=== !== >>> <<= ?", false)
	want := []TokenType{SEQ, SNE, USHR, SHL_EQ, QUESTION, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Type, tt)
		}
	}
}

func TestNumericLiteralTyping(t *testing.T) {
	cases := []struct {
		src  string
		want NumericType
	}{
		{"123", Decimal},
		{"1.5e10", Decimal},
		{"0xFF", Hex},
		{"010", Octal},
	}
	for _, c := range cases {
		toks := allTokens(t, c.src, false)
		if toks[0].Type != NUMBER {
			t.Fatalf("%q: expected NUMBER, got %v", c.src, toks[0].Type)
		}
		if toks[0].NumType != c.want {
			t.Errorf("%q: got NumType %v, want %v", c.src, toks[0].NumType, c.want)
		}
	}
}

func TestStringEscapeTyping(t *testing.T) {
	cases := []struct {
		src  string
		want StringEscapeType
	}{
		{`"hello"`, NoEscape},
		{`"hel\nlo"`, SimpleEscape},
		{`"\101"`, OctalEscape},
	}
	for _, c := range cases {
		toks := allTokens(t, c.src, false)
		if toks[0].StrEscape != c.want {
			t.Errorf("%q: got %v, want %v", c.src, toks[0].StrEscape, c.want)
		}
	}
}

func TestLineTerminatorBeforeNext(t *testing.T) {
	toks := allTokens(t, "a\nb", false)
	if toks[0].HasLineTerminatorBefore {
		t.Error("first token should not have a preceding line terminator")
	}
	if !toks[1].HasLineTerminatorBefore {
		t.Error("second token should have a preceding line terminator")
	}
}

func TestStrictModeReservedWords(t *testing.T) {
	toks := allTokens(t, "let", true)
	if toks[0].Type != LET {
		t.Errorf("in strict mode, 'let' should lex as LET, got %v", toks[0].Type)
	}
	toks = allTokens(t, "let", false)
	if toks[0].Type != IDENT {
		t.Errorf("outside strict mode, 'let' should lex as IDENT, got %v", toks[0].Type)
	}
}

func TestIgnoreReservedPolicy(t *testing.T) {
	l := New("if")
	tok := l.Next(false, IgnoreReserved)
	if tok.Type != IDENT {
		t.Errorf("IgnoreReserved should classify 'if' as IDENT, got %v", tok.Type)
	}
}

func TestRegexRescan(t *testing.T) {
	l := New("/abc\\/d[x/]/gi")
	tok := l.ScanRegex(Position{Line: 1, Column: 1}, false)
	if tok.Type != REGEX {
		t.Fatalf("expected REGEX token, got %v", tok.Type)
	}
	if err := l.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"abc`)
	l.Next(false, IdentifyReserved)
	if l.Err() == nil {
		t.Fatal("expected an unterminated-string error")
	}
}

func TestWhitespaceSkipKeepsLineTracking(t *testing.T) {
	// Skipping spaces and blank lines must not desynchronize the line
	// tracking used by ASI.
	toks := allTokens(t, "  \n\n  x", false)
	if toks[0].Literal != "x" {
		t.Fatalf("expected to land on 'x', got %q", toks[0].Literal)
	}
	if toks[0].Pos.Line != 3 {
		t.Errorf("expected line 3, got %d", toks[0].Pos.Line)
	}
}
