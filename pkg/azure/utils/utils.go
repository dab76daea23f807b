// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/gardener/armsingleton/pkg/utils/ptr"
)

// ErrInvalidTag is returned when a tag is not in KEY=VALUE form.
var ErrInvalidTag = errors.New("invalid tag")

// StatusCode returns the HTTP status code of the given Azure API error, or 0 if
// err is not an [azcore.ResponseError].
func StatusCode(err error) int {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode
	}

	return 0
}

// ErrorCode returns the Azure error code of the given Azure API error, or an
// empty string if err is not an [azcore.ResponseError].
func ErrorCode(err error) string {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.ErrorCode
	}

	return ""
}

// IsNotFound returns true, if err is an Azure API error with status code 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IgnoreNotFound returns nil, if err is an Azure API error with status code
// 404, otherwise it returns err unchanged.
func IgnoreNotFound(err error) error {
	if IsNotFound(err) {
		return nil
	}

	return err
}

// ParseTags parses the given KEY=VALUE items into Azure resource tags.
func ParseTags(items []string) (map[string]*string, error) {
	if len(items) == 0 {
		return nil, nil
	}

	tags := make(map[string]*string, len(items))
	for _, item := range items {
		key, value, ok := strings.Cut(item, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTag, item)
		}
		tags[key] = ptr.To(value)
	}

	return tags, nil
}
