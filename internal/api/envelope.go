package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is bumped when the wire shape of the envelope changes.
const envelopeVersion = 1

// successEnvelope wraps every 2xx response body.
type successEnvelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// errorEnvelope wraps every error response body. Error carries the
// human-readable message; Code and Details are present when the error
// originated as a domain error.
type errorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps all response bodies in a versioned envelope
// so clients can dispatch on success before looking at the payload.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return &errorEnvelope{
			V:       envelopeVersion,
			Success: false,
			Error:   apiErr.Message,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	// huma's own error model (schema validation failures and the like).
	if statusErr, ok := v.(huma.StatusError); ok {
		return &errorEnvelope{
			V:       envelopeVersion,
			Success: false,
			Error:   statusErr.Error(),
			Code:    statusToCode(statusErr.GetStatus()),
			Message: statusErr.Error(),
		}, nil
	}

	if len(status) > 0 && status[0] != '2' {
		return &errorEnvelope{
			V:       envelopeVersion,
			Success: false,
			Error:   "request failed",
		}, nil
	}

	return &successEnvelope{
		V:       envelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
