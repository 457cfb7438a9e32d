package webserver

import (
	"bytes"
	"fmt"
	"strings"
)

// Request is a fully parsed HTTP request head. It is immutable once the
// parser reports completion.
type Request struct {
	Method  string            // lower-cased
	Path    string            // always prefixed with /
	Headers map[string]string // lower-cased names, last value wins
}

// Header returns the value of the named header, or "" when absent. The
// lookup is case-insensitive.
func (r *Request) Header(name string) string {
	return r.Headers[strings.ToLower(name)]
}

type parseState int

const (
	stateRequestLine parseState = iota
	stateHeaders
	stateDone
	stateFailed
)

// parser recognizes a complete HTTP request head from data arriving in
// fragments. Feed never blocks; reading from the connection happens in the
// accept loop between calls.
type parser struct {
	buf   []byte
	state parseState
	req   Request
}

func newParser() *parser {
	return &parser{req: Request{Headers: map[string]string{}}}
}

// Feed appends a chunk to the accumulation buffer and consumes every
// complete line in it. It reports true once the request line and all
// headers, terminated by an empty line, have been seen. A malformed
// request line puts the parser in a terminal failed state.
func (p *parser) Feed(chunk []byte) (bool, error) {
	switch p.state {
	case stateDone:
		return true, nil
	case stateFailed:
		return false, fmt.Errorf("parser already failed")
	}

	p.buf = append(p.buf, chunk...)
	for {
		idx := bytes.IndexByte(p.buf, '\n')
		if idx < 0 {
			// Partial line, wait for more data.
			return false, nil
		}
		line := strings.TrimRight(string(p.buf[:idx]), "\r")
		p.buf = p.buf[idx+1:]

		if err := p.consumeLine(line); err != nil {
			p.state = stateFailed
			return false, err
		}
		if p.state == stateDone {
			return true, nil
		}
	}
}

func (p *parser) consumeLine(line string) error {
	switch p.state {
	case stateRequestLine:
		parts := strings.Fields(line)
		if len(parts) < 3 {
			return fmt.Errorf("request line %q: want method, target and version", line)
		}
		p.req.Method = strings.ToLower(parts[0])
		p.req.Path = parts[1]
		if !strings.HasPrefix(p.req.Path, "/") {
			p.req.Path = "/" + p.req.Path
		}
		p.state = stateHeaders
	case stateHeaders:
		if line == "" {
			p.state = stateDone
			return nil
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			// Not a header line; skipped rather than failing the head.
			return nil
		}
		p.req.Headers[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(value)
	}
	return nil
}

// Request returns the parsed head. Only valid after Feed reported true.
func (p *parser) Request() *Request {
	return &p.req
}
