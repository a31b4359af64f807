package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleArgumentIsThePath(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	config, err := Parse([]string{"/tmp/report.pdf"}, out)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/report.pdf", config.Path)
	assert.Empty(t, config.MIMEType, "one argument means auto-detection")
	assert.Empty(t, out.String())
}

func TestParse_TypeHintComesFirst(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	config, err := Parse([]string{"application/pdf", "/tmp/report.pdf"}, out)

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", config.MIMEType)
	assert.Equal(t, "/tmp/report.pdf", config.Path)
}

func TestParse_WrongArgumentCounts(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{},
		{"a", "b", "c"},
		{"a", "b", "c", "d"},
	} {
		out := &bytes.Buffer{}
		config, err := Parse(args, out)

		require.Nil(t, config)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr, "args=%v", args)
		assert.Equal(t, 2, exitErr.Code)
		assert.True(t, strings.Contains(out.String(), "Usage:"), "usage text should be printed for args=%v", args)
	}
}

func TestParse_EmptyPathRejected(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	config, err := Parse([]string{""}, out)

	require.Nil(t, config)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestExitError_Error(t *testing.T) {
	t.Parallel()

	err := &ExitError{Code: 2, Message: "expected 1 or 2 arguments"}

	assert.Equal(t, "expected 1 or 2 arguments", err.Error())
	assert.True(t, errors.As(error(err), new(*ExitError)))
}
