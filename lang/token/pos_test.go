package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakePosLineCol(t *testing.T) {
	p := MakePos(12, 34)
	line, col := p.LineCol()
	require.Equal(t, 12, line)
	require.Equal(t, 34, col)
	require.False(t, p.Unknown())
}

func TestPosUnknown(t *testing.T) {
	require.True(t, Pos(0).Unknown())
	require.True(t, MakePos(0, 1).Unknown())
	require.True(t, MakePos(1, 0).Unknown())
	require.False(t, MakePos(1, 1).Unknown())
}

func TestFormatPos(t *testing.T) {
	fs := NewFileSet()
	f := fs.AddFile("script.lox", 10)
	pos := MakePos(3, 7)

	require.Equal(t, "", FormatPos(PosNone, f, pos, true))
	require.Equal(t, "3:7", FormatPos(PosShort, f, pos, true))
	require.Equal(t, "script.lox:3:7", FormatPos(PosLong, f, pos, true))
	require.Equal(t, "?", FormatPos(PosLong, f, Pos(0), true))
	require.Equal(t, "3:7", FormatPos(PosLong, nil, pos, true))
}
