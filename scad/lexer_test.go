package scad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerBasicTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"+ - * /", []TokenKind{TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenEOF}},
		{"( ) { }", []TokenKind{TokenLeftParen, TokenRightParen, TokenLeftBrace, TokenRightBrace, TokenEOF}},
		{"[ ] , .", []TokenKind{TokenLeftBracket, TokenRightBracket, TokenComma, TokenDot, TokenEOF}},
		{"== != <= >= && ||", []TokenKind{TokenEqualEqual, TokenBangEqual, TokenLessEqual, TokenGreaterEqual, TokenAmpAmp, TokenPipePipe, TokenEOF}},
	}

	for _, tt := range tests {
		lexer := NewLexer(tt.input)
		tokens, err := lexer.Tokenize()
		require.NoError(t, err)
		require.Len(t, tokens, len(tt.expected))
		for i, tok := range tokens {
			assert.Equal(t, tt.expected[i], tok.Kind, "token %d of %q", i, tt.input)
		}
	}
}

func TestLexerSpecialVariable(t *testing.T) {
	lexer := NewLexer("$fn = 64;")
	tokens, err := lexer.Tokenize()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(tokens), 2)
	assert.Equal(t, TokenSpecialVar, tokens[0].Kind)
	assert.Equal(t, "$fn", tokens[0].Lexeme)
}

func TestLexerNumbers(t *testing.T) {
	lexer := NewLexer("1 2.5 1e3 1.5e-2")
	tokens, err := lexer.Tokenize()
	require.NoError(t, err)
	var nums []TokenKind
	for _, tok := range tokens {
		if tok.Kind == TokenIntLiteral || tok.Kind == TokenFloatLiteral {
			nums = append(nums, tok.Kind)
		}
	}
	assert.Len(t, nums, 4)
}

func TestLexerStringEscapes(t *testing.T) {
	lexer := NewLexer(`"hello\nworld"`)
	tokens, err := lexer.Tokenize()
	require.NoError(t, err)
	require.NotEmpty(t, tokens)
	assert.Equal(t, TokenStringLiteral, tokens[0].Kind)
}

func TestLexerComments(t *testing.T) {
	lexer := NewLexer("1 // a comment\n2 /* block */ 3")
	tokens, err := lexer.Tokenize()
	require.NoError(t, err)
	var nums int
	for _, tok := range tokens {
		if tok.Kind == TokenIntLiteral || tok.Kind == TokenFloatLiteral {
			nums++
		}
	}
	assert.Equal(t, 3, nums)
}

func TestLexerUnterminatedStringRecovers(t *testing.T) {
	lexer := NewLexer(`"unterminated`)
	_, err := lexer.Tokenize()
	assert.Error(t, err)
}
