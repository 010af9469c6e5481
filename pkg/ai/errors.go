package ai

import "fmt"

// ErrorKind classifies provider failures for the retry policy.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindTimeout
	KindRateLimit
	KindServer
	KindAuth
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindRateLimit:
		return "rate_limit"
	case KindServer:
		return "server"
	case KindAuth:
		return "auth"
	case KindMalformed:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// ProviderError is any failure returned by an AI provider call.
type ProviderError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider error (%s, status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider error (%s): %s", e.Kind, e.Message)
}

// Retryable reports whether the failure is transient. Authentication
// failures and malformed responses never are; retrying them wastes the
// budget and hides the real problem.
func (e *ProviderError) Retryable() bool {
	switch e.Kind {
	case KindNetwork, KindTimeout, KindRateLimit, KindServer:
		return true
	default:
		return false
	}
}
