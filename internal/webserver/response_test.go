package webserver

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteHead(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHead(&buf, 200, "OK", "", 42))
	assert.Equal(t,
		"HTTP/1.0 200 OK\r\n"+
			"content-length: 42\r\n"+
			"connection: close\r\n"+
			"\r\n",
		buf.String())
}

func TestWriteHeadExtraHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHead(&buf, 301, "Moved Permanently", "Location: /test_file", 0))
	assert.Equal(t,
		"HTTP/1.0 301 Moved Permanently\r\n"+
			"content-length: 0\r\n"+
			"connection: close\r\n"+
			"Location: /test_file\r\n"+
			"\r\n",
		buf.String())
}
