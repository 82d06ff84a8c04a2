package finnhub

import "fmt"

// Kind classifies how a provider call failed. Callers decide control flow
// without distinguishing kinds; the kind exists for diagnostics.
type Kind int

const (
	KindTransport Kind = iota
	KindUnauthorized
	KindRateLimited
	KindHTTPStatus
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUnauthorized:
		return "unauthorized"
	case KindRateLimited:
		return "rate_limited"
	case KindHTTPStatus:
		return "http_status"
	case KindMalformed:
		return "malformed"
	}
	return "unknown"
}

type Error struct {
	Kind   Kind
	Status int
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("finnhub: transport error: %v", e.Err)
	case KindUnauthorized:
		return "finnhub: api key is invalid or expired"
	case KindRateLimited:
		return "finnhub: rate limit exceeded"
	case KindHTTPStatus:
		return fmt.Sprintf("finnhub: unexpected status %d", e.Status)
	case KindMalformed:
		return fmt.Sprintf("finnhub: malformed response body: %v", e.Err)
	}
	return "finnhub: unknown error"
}

func (e *Error) Unwrap() error {
	return e.Err
}
