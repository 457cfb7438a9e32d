// Package proxy starts and stops an external delegate proxy process, used
// when a transfer client needs to be exercised through SOCKS or HTTP
// proxying. The delegated binary must be on PATH.
package proxy

import (
	"fmt"
	"os/exec"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Kind selects the protocol the proxy speaks and whether it demands
// credentials.
type Kind int

const (
	HTTP Kind = iota
	HTTPWithAuth
	SOCKS4
	SOCKS5
	SOCKS5WithAuth
)

const (
	authUser = "testuser"
	authPass = "testpass"
)

func (k Kind) String() string {
	switch k {
	case HTTP, HTTPWithAuth:
		return "http"
	case SOCKS4:
		return "socks4"
	case SOCKS5, SOCKS5WithAuth:
		return "socks5"
	}
	return "unknown"
}

func (k Kind) needsAuth() bool {
	return k == HTTPWithAuth || k == SOCKS5WithAuth
}

// command builds the shell command line that launches the proxy. The
// leading "echo n" answers the configuration prompt delegated raises on
// first run.
func command(port int, kind Kind) string {
	auth := ""
	if kind.needsAuth() {
		auth = fmt.Sprintf(" AUTHORIZER=-list{%s:%s}", authUser, authPass)
	}
	return fmt.Sprintf("echo n | delegated -P%d ADMIN=test@test.com "+
		`PERMIT="*:*:localhost" REMITTABLE=+,https RELAY=proxy,delegate `+
		"SERVER=%s%s", port, kind, auth)
}

// Start launches the proxy on port, killing any previous instance bound to
// it first, and gives the process a moment to come up.
func Start(port int, kind Kind) error {
	Stop(port)

	cmdline := command(port, kind)
	log.Infof("starting %s proxy on port %d", kind, port)
	if out, err := exec.Command("sh", "-c", cmdline).CombinedOutput(); err != nil {
		return errors.Wrapf(err, "starting proxy: %s", out)
	}
	time.Sleep(time.Second)
	return nil
}

// Stop kills the proxy instance bound to port, if any. Failures are logged
// only; a proxy that was never started is not an error.
func Stop(port int) {
	if err := exec.Command("delegated", fmt.Sprintf("-P%d", port), "-Fkill").Run(); err != nil {
		log.Debugf("stopping proxy on port %d: %v", port, err)
	}
}
