package monday

import "fmt"

// AuthError means the API token was rejected. The credential needs
// re-entry; callers must not retry with the same token.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("APIトークンが無効です。再入力してください。(HTTP %d)", e.Status)
}

// RateLimitError means the API asked us to back off. No retry happens at
// this layer; the poll interval is the only backoff.
type RateLimitError struct {
	Status int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("APIレート制限に達しました。しばらく待ってから再試行してください。(HTTP %d)", e.Status)
}

// QueryError is an application-level error reported in an otherwise
// successful GraphQL response. Message is the first reported message.
type QueryError struct {
	Message string
}

func (e *QueryError) Error() string {
	return "GraphQL error: " + e.Message
}

// TransportError covers everything else: network unreachable, malformed
// responses, unexpected status codes.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "ネットワークエラーが発生しました: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }
