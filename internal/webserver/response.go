package webserver

import (
	"fmt"
	"io"
)

// writeHead frames and writes a response head: status line, content-length,
// connection: close, an optional extra header line (caller-supplied
// verbatim, without its trailing CRLF) and the blank line. The body, if
// any, is written separately by the caller. A nil error means the head was
// flushed in full; anything else fails the connection.
func writeHead(w io.Writer, code int, reason, extraHeader string, contentLength int) error {
	head := fmt.Sprintf("HTTP/1.0 %d %s\r\n"+
		"content-length: %d\r\n"+
		"connection: close\r\n",
		code, reason, contentLength)
	if extraHeader != "" {
		head += extraHeader + "\r\n"
	}
	head += "\r\n"
	_, err := io.WriteString(w, head)
	return err
}
