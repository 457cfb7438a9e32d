// Package webserver implements the single-connection HTTP/1.0 test server
// used to exercise transfer clients: it serves files (whole or by byte
// range) from a directory and provides redirect fixtures, one request per
// connection, strictly in accept order.
package webserver

import (
	"fmt"
	"net"

	"github.com/AmirulAndalib/libtorrent/internal/config"
	"github.com/AmirulAndalib/libtorrent/internal/recorder"
	log "github.com/sirupsen/logrus"
)

// Options configures a test server instance.
type Options struct {
	Port int
	// Secure is accepted for interface parity but not implemented;
	// requests arrive in plaintext regardless.
	Secure bool
	// Root is the directory files are served from. Empty means the
	// current working directory.
	Root string
	// Recorder, when set, receives one entry per response written.
	Recorder *recorder.Recorder
}

// Server is a handle to a running test server. Start returns it and Stop
// requires it; there is no process-wide instance state.
type Server struct {
	ln       net.Listener
	root     string
	recorder *recorder.Recorder
	done     chan struct{}
}

// Start binds the listening socket and spawns the accept loop. The loop
// owns the socket's accept side and serves one connection at a time.
func Start(opts Options) (*Server, error) {
	if opts.Secure {
		log.Warn("secure flag is not implemented, serving plaintext")
	}
	// Listeners carry reuse-address, so a stop-then-start sequence on the
	// same port must not fail with address-in-use.
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", opts.Port))
	if err != nil {
		log.Errorf("listening on port %d: %v", opts.Port, err)
		return nil, err
	}
	s := &Server{
		ln:       ln,
		root:     opts.Root,
		recorder: opts.Recorder,
		done:     make(chan struct{}),
	}
	log.Infof("test server listening on %s", ln.Addr())
	go s.acceptLoop()
	return s, nil
}

// Stop closes the listening socket from the control side, which unblocks a
// pending accept, and waits for the accept loop to exit. A request already
// being served runs to completion first. Once Stop returns the port is
// fully released and can be bound again.
func (s *Server) Stop() {
	s.ln.Close()
	<-s.done
}

// Addr returns the bound address, useful when Start was given port 0.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

func (s *Server) acceptLoop() {
	defer close(s.done)
	buf := make([]byte, config.ReadChunkSize)
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			// Closing the listener is the shutdown signal.
			log.Infof("accept: %v, loop exiting", err)
			return
		}
		s.serveConn(conn, buf)
	}
}

// serveConn drives one connection: read, feed the parser until the head is
// complete, dispatch. The connection is closed unconditionally before the
// next accept. Read failures and malformed requests abandon the connection
// without a response.
func (s *Server) serveConn(conn net.Conn, buf []byte) {
	defer conn.Close()

	p := newParser()
	for {
		n, err := conn.Read(buf)
		if err != nil || n == 0 {
			log.Warnf("read from %s: %v", conn.RemoteAddr(), err)
			return
		}
		done, perr := p.Feed(buf[:n])
		if perr != nil {
			log.Warnf("malformed request from %s: %v", conn.RemoteAddr(), perr)
			return
		}
		if done {
			break
		}
	}

	s.dispatch(conn, p.Request())
}
