package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndentJSON(t *testing.T) {
	out, err := IndentJSON([]byte(`{"eventName":"RebootInstances"}`))
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"eventName\": \"RebootInstances\"\n}", out)
}

func TestIndentJSONInvalid(t *testing.T) {
	_, err := IndentJSON([]byte(`{`))
	assert.Error(t, err)
}
