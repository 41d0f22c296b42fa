package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/knightempire/e-commerce-frontend/pkg/errors"
)

// downstreamError accepts both the envelope this service writes
// ({"error":{"code","message"}}) and the flat {"message": "..."} body the
// order API answers with.
type downstreamError struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

func (d downstreamError) parts() (code, message string, ok bool) {
	if d.Error != nil {
		return d.Error.Code, d.Error.Message, true
	}
	if d.Message != "" {
		return "", d.Message, true
	}
	return "", "", false
}

// ParseResponseError consumes and closes the body of a non-2xx response and
// converts it into an AppError whose kind follows the status code.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", serviceName, resp.StatusCode, err)
	}

	message := string(bodyBytes)
	code := ""
	var body downstreamError
	if json.Unmarshal(bodyBytes, &body) == nil {
		if c, m, ok := body.parts(); ok {
			code, message = c, m
		}
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return mapDownstreamError(resp.StatusCode, code, message, serviceName)
}

func mapDownstreamError(status int, code, message, serviceName string) error {
	qualified := fmt.Sprintf("%s: %s", serviceName, message)

	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(serviceName, message)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case status == http.StatusConflict:
		return apperrors.Conflict(qualified)
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return apperrors.Unauthorized(qualified)
	case status == http.StatusUnprocessableEntity:
		return apperrors.PaymentFailed(qualified)
	case status >= 500:
		return &apperrors.AppError{
			Code:    "SERVICE_UNAVAILABLE",
			Message: qualified,
			Status:  http.StatusServiceUnavailable,
			Err:     fmt.Errorf("%w: upstream status %d %s", apperrors.ErrServiceUnavail, status, code),
		}
	default:
		if code == "" {
			code = "UPSTREAM_ERROR"
		}
		return &apperrors.AppError{Code: code, Message: qualified, Status: status}
	}
}
