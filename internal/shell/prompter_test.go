package shell

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEchoPrompter(t *testing.T) {
	var out bytes.Buffer
	inner := &script{lines: []string{"first", ""}}
	p := NewEchoPrompter(inner, &out)

	p.SetPrompt("> ")
	line, err := p.Readline()
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	p.SetPrompt("Name: ")
	line, err = p.Readline()
	require.NoError(t, err)
	assert.Equal(t, "", line)

	_, err = p.Readline()
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "> Name: Name: ", out.String())
	assert.Equal(t, []string{"> ", "Name: "}, inner.prompts)
	assert.NoError(t, p.Close())
}

func TestReadline_PipedInput(t *testing.T) {
	var out bytes.Buffer
	rl, err := NewReadline(ReadlineConfig{
		Stdin:  io.NopCloser(strings.NewReader("1\nb\nAlice\n")),
		Stdout: &out,
		Stderr: &out,
	})
	require.NoError(t, err)
	p := NewEchoPrompter(rl, &out)
	t.Cleanup(func() { _ = p.Close() })

	var got []string
	for {
		p.SetPrompt("> ")
		line, err := p.Readline()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, line)
	}

	assert.Equal(t, []string{"1", "b", "Alice"}, got)
	assert.Equal(t, 4, strings.Count(out.String(), "> "))
}
