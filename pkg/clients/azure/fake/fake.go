// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package fake provides an in-memory transport for Azure Resource Manager API
// clients, which is meant to be used in tests.
package fake

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

// Endpoint is the Azure Resource Manager endpoint used by clients created with
// [NewClientOptions].
const Endpoint = "https://management.example.com"

// HandlerFunc returns the response for the given request.
type HandlerFunc func(req *http.Request) *http.Response

// Transport is an implementation of [policy.Transporter], which dispatches
// requests to a [HandlerFunc] and records them.
type Transport struct {
	mu       sync.Mutex
	handler  HandlerFunc
	requests []*http.Request
	bodies   []string
}

var _ policy.Transporter = &Transport{}

// NewTransport creates a new [Transport] using the given handler.
func NewTransport(handler HandlerFunc) *Transport {
	return &Transport{handler: handler}
}

// Do implements the [policy.Transporter] interface.
func (t *Transport) Do(req *http.Request) (*http.Response, error) {
	body := ""
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		body = string(data)
	}

	t.mu.Lock()
	t.requests = append(t.requests, req)
	t.bodies = append(t.bodies, body)
	t.mu.Unlock()

	resp := t.handler(req)
	if resp == nil {
		return nil, fmt.Errorf("no fake response for %s %s", req.Method, req.URL.Path)
	}
	resp.Request = req

	return resp, nil
}

// Requests returns the requests received so far.
func (t *Transport) Requests() []*http.Request {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]*http.Request(nil), t.requests...)
}

// Bodies returns the bodies of the requests received so far.
func (t *Transport) Bodies() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]string(nil), t.bodies...)
}

// NewClientOptions returns [arm.ClientOptions] which route all requests
// through the given transport, with retries and resource provider
// registration disabled.
func NewClientOptions(transport policy.Transporter) *arm.ClientOptions {
	opts := &arm.ClientOptions{
		ClientOptions: policy.ClientOptions{
			Cloud: cloud.Configuration{
				ActiveDirectoryAuthorityHost: "https://login.example.com/",
				Services: map[cloud.ServiceName]cloud.ServiceConfiguration{
					cloud.ResourceManager: {
						Audience: Endpoint,
						Endpoint: Endpoint,
					},
				},
			},
			Retry: policy.RetryOptions{
				MaxRetries: -1,
			},
			Transport: transport,
		},
		DisableRPRegistration: true,
	}

	return opts
}

// NewResponse returns a new [http.Response] with the given status code, JSON
// body and extra headers.
func NewResponse(statusCode int, body string, header http.Header) *http.Response {
	h := http.Header{}
	for k, values := range header {
		for _, v := range values {
			h.Add(k, v)
		}
	}
	if body != "" {
		h.Set("Content-Type", "application/json")
	}

	resp := &http.Response{
		StatusCode: statusCode,
		Status:     fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(body)),
	}

	return resp
}

// NewErrorResponse returns a new [http.Response] carrying an Azure Resource
// Manager error with the given code and message.
func NewErrorResponse(statusCode int, code, message string) *http.Response {
	body := fmt.Sprintf(`{"error":{"code":%q,"message":%q}}`, code, message)

	return NewResponse(statusCode, body, http.Header{"x-ms-error-code": []string{code}})
}
