package proxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "http", HTTP.String())
	assert.Equal(t, "http", HTTPWithAuth.String())
	assert.Equal(t, "socks4", SOCKS4.String())
	assert.Equal(t, "socks5", SOCKS5.String())
	assert.Equal(t, "socks5", SOCKS5WithAuth.String())
}

func TestCommand(t *testing.T) {
	cmd := command(8912, SOCKS5)
	assert.Contains(t, cmd, "delegated -P8912")
	assert.Contains(t, cmd, "SERVER=socks5")
	assert.NotContains(t, cmd, "AUTHORIZER")

	cmd = command(8913, SOCKS5WithAuth)
	assert.Contains(t, cmd, "SERVER=socks5 AUTHORIZER=-list{testuser:testpass}")

	cmd = command(8914, HTTPWithAuth)
	assert.Contains(t, cmd, "SERVER=http AUTHORIZER=")
}
