package wallpaper

import "time"

// File naming
const (
	FittedSuffix  = "_fitted"
	FittedExtBMP  = ".bmp"
	FittedExtJPEG = ".jpg"
	JPEGQuality   = 95
)

// NetworkTimeouts defines the standard durations for various network operations.
const (
	// HTTPClientRequestTimeout is the total time limit for a single HTTP request,
	// including connection, redirects, and reading the response body.
	HTTPClientRequestTimeout = 60 * time.Second

	// HTTPClientDialerTimeout is the timeout for establishing a TCP connection.
	HTTPClientDialerTimeout = 15 * time.Second

	// HTTPClientTLSHandshakeTimeout is the time limit for the TLS handshake for HTTPS.
	HTTPClientTLSHandshakeTimeout = 10 * time.Second

	// HTTPClientResponseHeaderTimeout is the time limit for receiving response headers
	// after the request has been sent.
	HTTPClientResponseHeaderTimeout = 15 * time.Second

	// HTTPClientKeepAlive is the duration for TCP keep-alive messages.
	HTTPClientKeepAlive = 30 * time.Second
)

// maxServiceResponse caps the JSON body read from the image-URL service.
const maxServiceResponse = 1 << 20
