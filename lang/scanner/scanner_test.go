package scanner

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mna/lox/internal/filetest"
	"github.com/mna/lox/lang/token"
	"github.com/stretchr/testify/require"
)

var updateGolden = false

func render(toks []TokenAndValue) string {
	var sb strings.Builder
	for _, tv := range toks {
		fmt.Fprintf(&sb, "%s %s", token.FormatPos(token.PosShort, nil, tv.Value.Pos, true), tv.Token)
		if lit := tv.Token.Literal(tv.Value); lit != "" {
			fmt.Fprintf(&sb, " (%s)", lit)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestScanGolden(t *testing.T) {
	dir := "testdata"
	for _, fi := range filetest.SourceFiles(t, dir, ".lox") {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			_, toksByFile, err := ScanFiles(context.Background(), filepath.Join(dir, fi.Name()))
			require.NoError(t, err)
			filetest.DiffOutput(t, fi, render(toksByFile[0]), dir, &updateGolden)
		})
	}
}

func kinds(toks []TokenAndValue) []token.Token {
	ks := make([]token.Token, len(toks))
	for i, tv := range toks {
		ks[i] = tv.Token
	}
	return ks
}

func TestScanOperatorsAndKeywords(t *testing.T) {
	_, toks, err := ScanSource("t", []byte(`!a != b == c <= d >= e and or class fun`))
	require.NoError(t, err)
	require.Equal(t, []token.Token{
		token.BANG, token.IDENT, token.BANG_EQ, token.IDENT, token.EQ_EQ, token.IDENT,
		token.LE, token.IDENT, token.GE, token.IDENT, token.AND, token.OR, token.CLASS,
		token.FUN, token.EOF,
	}, kinds(toks))
}

func TestScanNumber(t *testing.T) {
	_, toks, err := ScanSource("t", []byte(`123 1.5`))
	require.NoError(t, err)
	require.Len(t, toks, 3)
	require.Equal(t, token.NUMBER, toks[0].Token)
	require.Equal(t, float64(123), toks[0].Value.Number)
	require.Equal(t, token.NUMBER, toks[1].Token)
	require.Equal(t, 1.5, toks[1].Value.Number)
}

func TestScanString(t *testing.T) {
	_, toks, err := ScanSource("t", []byte("\"hello\\nworld\""))
	require.NoError(t, err)
	require.Equal(t, token.STRING, toks[0].Token)
	require.Equal(t, `hello\nworld`, toks[0].Value.Raw) // no escape processing in Lox strings
}

func TestScanMultilineString(t *testing.T) {
	_, toks, err := ScanSource("t", []byte("\"a\nb\""))
	require.NoError(t, err)
	require.Equal(t, token.STRING, toks[0].Token)
	require.Equal(t, "a\nb", toks[0].Value.Raw)
}

func TestScanUnterminatedString(t *testing.T) {
	_, _, err := ScanSource("t", []byte(`"oops`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unterminated string")
}

func TestScanIllegalCharacter(t *testing.T) {
	_, _, err := ScanSource("t", []byte(`var x = @;`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected character")
}

func TestScanLineComment(t *testing.T) {
	_, toks, err := ScanSource("t", []byte("1 // a comment\n2"))
	require.NoError(t, err)
	require.Equal(t, []token.Token{token.NUMBER, token.NUMBER, token.EOF}, kinds(toks))
}
