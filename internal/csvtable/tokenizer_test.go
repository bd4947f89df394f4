package csvtable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("quoted comma", func(t *testing.T) {
		require.Equal(t, [][]string{
			{"a", "b,c", "d"},
			{"1", "2", "3"},
		}, Parse("a,\"b,c\",d\n1,2,3"))
	})

	t.Run("escaped quotes", func(t *testing.T) {
		require.Equal(t, [][]string{
			{`say "hi"`, "x"},
		}, Parse(`"say ""hi""",x`))
	})

	t.Run("crlf and trailing newline", func(t *testing.T) {
		require.Equal(t, [][]string{
			{"name", "qty"},
			{"apple", "3"},
		}, Parse("name,qty\r\napple,3\r\n"))
	})

	t.Run("newline inside quotes", func(t *testing.T) {
		require.Equal(t, [][]string{
			{"line one\nline two", "b"},
		}, Parse("\"line one\nline two\",b\n"))
	})

	t.Run("blank rows dropped", func(t *testing.T) {
		require.Equal(t, [][]string{
			{"a", "b"},
			{"c", "d"},
		}, Parse("a,b\n\n , \n,,\nc,d\n"))
	})

	t.Run("empty fields kept in non blank rows", func(t *testing.T) {
		require.Equal(t, [][]string{
			{"a", "", "c"},
			{"", "x", ""},
		}, Parse("a,,c\n,x,"))
	})

	t.Run("unterminated quote eats the rest", func(t *testing.T) {
		require.Equal(t, [][]string{
			{"a", "b"},
			{"c", "d\ne,f\n"},
		}, Parse("a,b\nc,\"d\ne,f\n"))
	})

	t.Run("empty input", func(t *testing.T) {
		require.Empty(t, Parse(""))
	})
}

func TestFormat(t *testing.T) {
	require.Equal(t,
		"\"h1\",\"h2\"\n\"a \"\"q\"\"\",\"1,2\"\n",
		Format([]string{"h1", "h2"}, [][]string{{`a "q"`, "1,2"}}),
	)
	require.Equal(t, "\"x\"\n", Format(nil, [][]string{{"x"}}))
}

func TestRoundTrip(t *testing.T) {
	headers := []string{"ticker", "note, with comma", `quoted "header"`}
	rows := [][]string{
		{"VTI", "total\nmarket", `the "core"`},
		{"BND", "", "bonds\r\nand more"},
		{"GLD", "a,b,c", `""`},
	}

	parsed := Parse(Format(headers, rows))
	require.Equal(t, append([][]string{headers}, rows...), parsed)
}
