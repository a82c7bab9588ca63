package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		if tok.String() == "" {
			t.Errorf("missing string representation of token %d", tok)
		}
	}
}

func TestLookupIdent(t *testing.T) {
	for tok := kwStart; tok <= kwEnd; tok++ {
		require.Equal(t, tok, LookupIdent(tok.String()))
	}
	require.Equal(t, IDENT, LookupIdent("notAKeyword"))
	require.Equal(t, IDENT, LookupIdent("printer")) // prefix of a keyword, not the keyword
}

func TestGoString(t *testing.T) {
	require.Equal(t, "';'", SEMICOLON.GoString())
	require.Equal(t, "identifier", IDENT.GoString())
	require.Equal(t, "class", CLASS.GoString())
}

func TestLiteral(t *testing.T) {
	val := Value{Raw: "abc", Number: 42}

	require.Equal(t, "abc", IDENT.Literal(val))
	require.Equal(t, "abc", STRING.Literal(val))
	require.Equal(t, "abc", NUMBER.Literal(val))
	require.Equal(t, "", SEMICOLON.Literal(val))
}
