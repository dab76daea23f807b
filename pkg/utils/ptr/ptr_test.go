// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package ptr_test

import (
	"testing"

	"github.com/gardener/armsingleton/pkg/utils/ptr"
)

func TestValue(t *testing.T) {
	testStringValue := "value"

	testCases := []struct {
		desc   string
		input  *string
		def    string
		wanted string
	}{
		{
			desc:   "nil input with empty default",
			input:  nil,
			def:    "",
			wanted: "",
		},
		{
			desc:   "nil input with different default",
			input:  nil,
			def:    "def",
			wanted: "def",
		},
		{
			desc:   "normal value, empty default",
			input:  &testStringValue,
			def:    "",
			wanted: testStringValue,
		},
		{
			desc:   "normal value with default",
			input:  &testStringValue,
			def:    "def",
			wanted: testStringValue,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			output := ptr.Value(tc.input, tc.def)
			if output != tc.wanted {
				t.Fatalf("want %s got %s", tc.wanted, output)
			}
		})
	}
}

func TestTo(t *testing.T) {
	value := "eastus"
	p := ptr.To(value)
	if p == nil || *p != value {
		t.Fatalf("want pointer to %q got %v", value, p)
	}

	value = "westeurope"
	if *p != "eastus" {
		t.Fatalf("pointer does not reference a copy")
	}
}

func TestValues(t *testing.T) {
	if out := ptr.Values[string, string](nil, ""); out != nil {
		t.Fatalf("want nil got %v", out)
	}

	out := ptr.Values(map[string]*string{"a": ptr.To("x"), "b": nil}, "def")
	if len(out) != 2 || out["a"] != "x" || out["b"] != "def" {
		t.Fatalf("unexpected result %v", out)
	}
}
