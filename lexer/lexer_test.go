package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"miniscript/diag"
)

func scan(t *testing.T, src string) ([]Token, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	lex := New(src, "<test>", sink)
	return lex.ScanTokens(), sink
}

func TestScanTokens_PunctuationAndOperators(t *testing.T) {
	tokens, sink := scan(t, "( ) { } [ ] , . ; + - * / ! != = == < <= > >= && ||")
	assert.False(t, sink.HadError())
	var types []TokenType
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	want := []TokenType{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE, LEFT_BRACK, RIGHT_BRACK,
		COMMA, DOT, SEMICOLON, PLUS, MINUS, STAR, SLASH,
		BANG, BANG_EQUAL, EQUAL, EQUAL_EQUAL, LESS, LESS_EQUAL, GREATER, GREATER_EQUAL,
		AND, OR, EOF,
	}
	assert.Equal(t, want, types)
}

func TestScanTokens_EOFAlwaysLastAndUnique(t *testing.T) {
	tokens, _ := scan(t, "var x = 1;")
	count := 0
	for i, tok := range tokens {
		if tok.Type == EOF {
			count++
			assert.Equal(t, len(tokens)-1, i, "EOF must be last")
		}
	}
	assert.Equal(t, 1, count)
}

func TestScanTokens_Numbers(t *testing.T) {
	tokens, sink := scan(t, "42 3.14 7.")
	assert.False(t, sink.HadError())
	assert.Equal(t, NUMBER_INT, tokens[0].Type)
	assert.Equal(t, int64(42), tokens[0].Literal)
	assert.Equal(t, NUMBER_FLT, tokens[1].Type)
	assert.Equal(t, 3.14, tokens[1].Literal)
	// "7." with no trailing digit: a NUMBER_INT token then a DOT token.
	assert.Equal(t, NUMBER_INT, tokens[2].Type)
	assert.Equal(t, int64(7), tokens[2].Literal)
	assert.Equal(t, DOT, tokens[3].Type)
}

func TestScanTokens_StringSpanningNewline(t *testing.T) {
	tokens, sink := scan(t, "\"line one\nline two\"\nvar x;")
	assert.False(t, sink.HadError())
	assert.Equal(t, STRING, tokens[0].Type)
	assert.Equal(t, "line one\nline two", tokens[0].Literal)
	// the VAR token after the embedded newline plus the real newline
	// should be on line 3.
	for _, tok := range tokens {
		if tok.Type == VAR {
			assert.Equal(t, 3, tok.Line)
		}
	}
}

func TestScanTokens_UnterminatedString(t *testing.T) {
	_, sink := scan(t, "\"unterminated")
	assert.True(t, sink.HadError())
}

func TestScanTokens_CharLiteral(t *testing.T) {
	tokens, sink := scan(t, "'a'")
	assert.False(t, sink.HadError())
	assert.Equal(t, CHAR, tokens[0].Type)
	assert.Equal(t, 'a', tokens[0].Literal)
}

func TestScanTokens_CharLiteralMultipleCharsIsError(t *testing.T) {
	_, sink := scan(t, "'ab'")
	assert.True(t, sink.HadError())
}

func TestScanTokens_LoneAmpersandOrPipeIsError(t *testing.T) {
	_, sink := scan(t, "&")
	assert.True(t, sink.HadError())
	_, sink2 := scan(t, "|")
	assert.True(t, sink2.HadError())
}

func TestScanTokens_KeywordsAndIdentifiers(t *testing.T) {
	tokens, sink := scan(t, "if else while for function return true false import from assert var nil print myVar")
	assert.False(t, sink.HadError())
	want := []TokenType{IF, ELSE, WHILE, FOR, FUNCTION, RETURN, TRUE, FALSE, IMPORT, FROM, ASSERT, VAR, NIL, PRINT, IDENTIFIER, EOF}
	var got []TokenType
	for _, tok := range tokens {
		got = append(got, tok.Type)
	}
	assert.Equal(t, want, got)
	assert.Equal(t, true, tokens[6].Literal)
	assert.Equal(t, false, tokens[7].Literal)
}

func TestScanTokens_LineComment(t *testing.T) {
	tokens, sink := scan(t, "var x = 1; // a trailing comment\nvar y = 2;")
	assert.False(t, sink.HadError())
	count := 0
	for _, tok := range tokens {
		if tok.Type == VAR {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

// For every token, the lexeme is text that occurs in the source.
func TestScanTokens_LexemeMatchesSource(t *testing.T) {
	src := "function add(a, b) { return a + b; }"
	tokens, sink := scan(t, src)
	assert.False(t, sink.HadError())
	for _, tok := range tokens {
		if tok.Type == EOF {
			continue
		}
		assert.Contains(t, src, tok.Lexeme)
	}
}
