package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/souhail747/luxe/pkg/errors"
)

// ResponseError is a non-2xx answer from an upstream. Message is whatever
// human-readable text the upstream supplied, possibly empty.
type ResponseError struct {
	Status  int
	Code    string
	Message string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream returned status %d", e.Status)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Message)
}

// upstreamBody accepts both {"message": ".."} and the {"error":{..}} envelope.
type upstreamBody struct {
	Message string `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError drains and closes resp.Body and extracts the upstream's
// message when the body is JSON.
func ParseResponseError(resp *http.Response) *ResponseError {
	defer func() { _ = resp.Body.Close() }()

	out := &ResponseError{Status: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return out
	}

	var body upstreamBody
	if json.Unmarshal(raw, &body) != nil {
		return out
	}
	if body.Error != nil {
		out.Code = body.Error.Code
		out.Message = body.Error.Message
	}
	if out.Message == "" {
		out.Message = body.Message
	}
	return out
}

// AppError converts e to the local error vocabulary, using fallback when
// the upstream gave no message.
func (e *ResponseError) AppError(fallback string) *apperrors.AppError {
	msg := e.Message
	if msg == "" {
		msg = fallback
	}

	switch {
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return apperrors.Unauthorized(msg)
	case e.Status == http.StatusConflict:
		return apperrors.Conflict(msg)
	case e.Status >= http.StatusInternalServerError:
		return apperrors.Unavailable(msg, e)
	default:
		return apperrors.InvalidInput(msg)
	}
}
