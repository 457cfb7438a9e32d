// Package fetch is a small transfer client for exercising the test
// server: it follows redirects itself, resolving relative Location values
// and detecting loops, so both behaviors can be asserted end to end.
package fetch

import (
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrRedirectLoop is returned when the client is about to request a URL it
// has already visited during the same fetch.
var ErrRedirectLoop = errors.New("redirect loop detected")

// Result is the final response of a fetch, after redirects.
type Result struct {
	Status        int
	Headers       http.Header
	Body          []byte
	ContentLength int64
	Redirects     int
}

// Client issues GET requests with redirect handling done by hand so the
// hop count and resolution behavior stay observable.
type Client struct {
	// MaxRedirects bounds the number of hops before giving up, independent
	// of loop detection.
	MaxRedirects int

	httpc *http.Client
}

func New() *Client {
	return &Client{
		MaxRedirects: 10,
		httpc: &http.Client{
			// Redirects are followed manually in Get.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Get fetches rawURL, optionally with a Range header (empty for none). A
// 301 is followed by resolving the Location reference, absolute or
// relative, against the current URL.
func (c *Client) Get(rawURL, rangeHeader string) (*Result, error) {
	current, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %q", rawURL)
	}

	seen := map[string]bool{}
	for hops := 0; ; hops++ {
		if seen[current.String()] {
			return nil, errors.Wrapf(ErrRedirectLoop, "at %s", current)
		}
		seen[current.String()] = true
		if hops > c.MaxRedirects {
			return nil, errors.Errorf("more than %d redirects", c.MaxRedirects)
		}

		req, err := http.NewRequest(http.MethodGet, current.String(), nil)
		if err != nil {
			return nil, err
		}
		if rangeHeader != "" {
			req.Header.Set("Range", rangeHeader)
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, errors.Wrapf(err, "fetching %s", current)
		}

		if resp.StatusCode == http.StatusMovedPermanently {
			loc := resp.Header.Get("Location")
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			ref, err := url.Parse(loc)
			if err != nil {
				return nil, errors.Wrapf(err, "bad Location %q", loc)
			}
			next := current.ResolveReference(ref)
			log.Infof("redirected %s -> %s", current, next)
			current = next
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "reading body from %s", current)
		}

		var contentLength int64
		if cl := resp.Header.Get("Content-Length"); cl != "" {
			contentLength, err = strconv.ParseInt(cl, 10, 64)
			if err != nil {
				log.Warnf("bad Content-Length %q from %s", cl, current)
				contentLength = 0
			}
		}

		log.Infof("fetched %s: %d (%s)", current, resp.StatusCode, humanize.Bytes(uint64(len(body))))
		return &Result{
			Status:        resp.StatusCode,
			Headers:       resp.Header,
			Body:          body,
			ContentLength: contentLength,
			Redirects:     hops,
		}, nil
	}
}
