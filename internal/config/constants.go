package config

const (
	// Marker paths the router special-cases.
	RedirectPath         = "/redirect"
	InfiniteRedirectPath = "/infinite_redirect"
	RelativeRedirectPath = "/relative/redirect"

	// RedirectTarget is where /redirect points.
	RedirectTarget = "/test_file"
	// RelativeRedirectTarget is a relative reference; the client has to
	// resolve it against the request path.
	RelativeRedirectTarget = "../test_file"
	// RelativeDir must exist under the serve root before the server starts
	// so that "relative/../test_file" can resolve.
	RelativeDir = "relative"

	// MaxServeSize caps files loaded into memory per request. Anything
	// larger is answered with 503.
	MaxServeSize = 8 << 20

	// ReadChunkSize is the size of the buffer each connection read fills
	// before the chunk is handed to the request parser.
	ReadChunkSize = 10000
)
