package backends

import "fmt"

// The error split matters to callers: transport failures are retryable,
// parse failures mean the site changed layout and the backend needs
// maintenance, content failures mean the page was structurally fine but
// semantically empty.

// TransportError wraps a network or HTTP failure reaching a source.
type TransportError struct {
	Site string
	URL  string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: fetching %s: %v", e.Site, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError reports an expected structural element missing from a page.
type ParseError struct {
	Site string
	URL  string
	What string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parsing %s: %s (site layout may have changed)", e.Site, e.URL, e.What)
}

// ContentError reports a structurally valid page whose extracted content
// is empty or unusable after sanitization.
type ContentError struct {
	Site string
	URL  string
	What string
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("%s: content of %s: %s", e.Site, e.URL, e.What)
}

// UnsupportedSourceError means no registered backend matches a URL.
type UnsupportedSourceError struct {
	URL string
}

func (e *UnsupportedSourceError) Error() string {
	return fmt.Sprintf("no backend supports %s", e.URL)
}
