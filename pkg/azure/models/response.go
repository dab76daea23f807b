// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package models

import "net/http"

// Response is an envelope, which pairs a payload with the HTTP-level metadata
// of the response it was decoded from.
type Response[T any] struct {
	// Request is the request which produced the response.
	Request *http.Request

	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Header contains the response headers.
	Header http.Header

	// Value is the decoded payload. A nil Value means the response did not
	// carry a payload.
	Value *T
}

// MapResponse returns a new [Response] with the same request, status code and
// headers as resp, and a payload produced by calling f on the payload of resp.
//
// A nil resp yields a nil result. A nil payload is not passed to f and yields
// an envelope with a nil payload.
func MapResponse[In, Out any](resp *Response[In], f func(*In) *Out) *Response[Out] {
	if resp == nil {
		return nil
	}

	out := &Response[Out]{
		Request:    resp.Request,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}
	if resp.Value != nil {
		out.Value = f(resp.Value)
	}

	return out
}
