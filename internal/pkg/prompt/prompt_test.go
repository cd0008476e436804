package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrompter(input string) (*Prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return New(strings.NewReader(input), out), out
}

func TestIntReprompts(t *testing.T) {
	p, out := newPrompter("abc\n\n42\n")

	n, err := p.Int("Id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.Contains(t, out.String(), `"abc" is not a whole number`)
}

func TestOptionalValues(t *testing.T) {
	p, _ := newPrompter("\n  Ana  \n\n7\n")

	s, err := p.Optional("Name")
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = p.Optional("Name")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "Ana", *s)

	n, err := p.OptionalInt("Semester")
	require.NoError(t, err)
	assert.Nil(t, n)

	n, err = p.OptionalInt("Semester")
	require.NoError(t, err)
	assert.Equal(t, 7, *n)
}

func TestDate(t *testing.T) {
	p, out := newPrompter("2025-13-01\n2025-03-01\n")

	d, err := p.Date("Start")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), d)
	assert.Contains(t, out.String(), "not a valid date")
}

func TestClearableDate(t *testing.T) {
	p, out := newPrompter("soon\n-\n2025-06-30\n\n")

	d, cleared, err := p.ClearableDate("End", "-")
	require.NoError(t, err)
	assert.True(t, cleared)
	assert.Nil(t, d)
	assert.Contains(t, out.String(), `"soon" is not a valid date`)

	d, cleared, err = p.ClearableDate("End", "-")
	require.NoError(t, err)
	assert.False(t, cleared)
	require.NotNil(t, d)
	assert.Equal(t, time.June, d.Month())

	d, cleared, err = p.ClearableDate("End", "-")
	require.NoError(t, err)
	assert.False(t, cleared)
	assert.Nil(t, d)
}

func TestEOF(t *testing.T) {
	p, _ := newPrompter("last line without newline")

	line, err := p.Line("x")
	require.NoError(t, err)
	assert.Equal(t, "last line without newline", line)

	_, err = p.Required("x")
	assert.ErrorIs(t, err, io.EOF)
}

func TestConfirm(t *testing.T) {
	p, _ := newPrompter("YES\nno\n")

	ok, err := p.Confirm("Sure?")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Confirm("Sure?")
	require.NoError(t, err)
	assert.False(t, ok)
}
