package webserver

import (
	"errors"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/AmirulAndalib/libtorrent/internal/config"
	"github.com/AmirulAndalib/libtorrent/internal/recorder"
	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
)

type routeKind int

const (
	routeRedirect routeKind = iota
	routeInfiniteRedirect
	routeRelativeRedirect
	routeFile
)

// resolveRoute maps a request path onto one of the fixture behaviors.
func resolveRoute(path string) routeKind {
	switch path {
	case config.RedirectPath:
		return routeRedirect
	case config.InfiniteRedirectPath:
		return routeInfiniteRedirect
	case config.RelativeRedirectPath:
		return routeRelativeRedirect
	default:
		return routeFile
	}
}

// dispatch writes the response for a completed request. Unsupported
// methods abandon the connection without writing a single byte, so the
// remote side sees a bare close.
func (s *Server) dispatch(conn net.Conn, req *Request) {
	if req.Method != "get" && req.Method != "post" {
		log.Warnf("unsupported method %q from %s, dropping connection", req.Method, conn.RemoteAddr())
		return
	}

	switch resolveRoute(req.Path) {
	case routeRedirect:
		s.respond(conn, req, 301, "Moved Permanently", "Location: "+config.RedirectTarget, nil)
	case routeInfiniteRedirect:
		// Points back at itself. The client's loop detector has to give up,
		// the server never will.
		s.respond(conn, req, 301, "Moved Permanently", "Location: "+config.InfiniteRedirectPath, nil)
	case routeRelativeRedirect:
		s.respond(conn, req, 301, "Moved Permanently", "Location: "+config.RelativeRedirectTarget, nil)
	case routeFile:
		s.serveFile(conn, req)
	}
}

func (s *Server) serveFile(conn net.Conn, req *Request) {
	name := strings.TrimPrefix(req.Path, "/")
	body, err := loadFile(filepath.Join(s.root, name))
	if errors.Is(err, fs.ErrNotExist) {
		s.respond(conn, req, 404, "Not Found", "", nil)
		return
	}
	if err != nil {
		log.Errorf("loading %s: %v", name, err)
		s.respond(conn, req, 503, "Internal Error", "", nil)
		return
	}

	extra := ""
	if filepath.Ext(name) == ".gz" {
		extra = "Content-Encoding: gzip"
	}

	if rv := req.Header("range"); rv != "" {
		br, err := parseRange(rv, int64(len(body)))
		if err != nil {
			log.Warnf("range %q on %s (%d bytes): %v", rv, name, len(body), err)
			s.respond(conn, req, 400, "Bad Request", "", nil)
			return
		}
		log.Infof("serving %s [%d-%d] (%s)", name, br.Start, br.End, humanize.Bytes(uint64(br.Length())))
		s.respond(conn, req, 206, "Partial", extra, body[br.Start:br.End+1])
		return
	}

	log.Infof("serving %s (%s)", name, humanize.Bytes(uint64(len(body))))
	s.respond(conn, req, 200, "OK", extra, body)
}

// respond writes head and body and, when a recorder is configured, logs
// what was served. Write failures abandon the connection without retry.
func (s *Server) respond(conn net.Conn, req *Request, code int, reason, extra string, body []byte) {
	if err := writeHead(conn, code, reason, extra, len(body)); err != nil {
		log.Errorf("writing response head to %s: %v", conn.RemoteAddr(), err)
		return
	}
	if len(body) > 0 {
		if _, err := conn.Write(body); err != nil {
			log.Errorf("writing response body to %s: %v", conn.RemoteAddr(), err)
			return
		}
	}
	if s.recorder != nil {
		entry := recorder.Entry{
			Method:       req.Method,
			Path:         req.Path,
			RangeHeader:  req.Header("range"),
			Status:       code,
			BytesWritten: len(body),
		}
		if err := s.recorder.Record(entry); err != nil {
			log.Warnf("recording request: %v", err)
		}
	}
}

var errFileTooLarge = errors.New("file exceeds serve size cap")

// loadFile reads a served file fully into memory, fresh on every request.
// Files over the size cap are refused so a stray huge file can't wedge the
// harness.
func loadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > config.MaxServeSize {
		return nil, errFileTooLarge
	}
	return os.ReadFile(path)
}
