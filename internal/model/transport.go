package model

// RequestTransport is the closed set of shapes an inbound request may take
// when it reaches the session resolver. A transport adapter fills whichever
// fields its framework can provide; the resolver tries them in a fixed
// precedence order. Centralizing the shapes here keeps shape-sniffing out of
// call sites.
type RequestTransport struct {
	// Cookies is a pre-parsed cookie jar (name -> value).
	Cookies map[string]string
	// RawCookieHeader is the unparsed Cookie header line.
	RawCookieHeader string
	// HeaderGet is a header accessor, used when direct field access is
	// unavailable. May be nil.
	HeaderGet func(name string) string
}
