// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"

	"github.com/gardener/armsingleton/pkg/azure/models"
	"github.com/gardener/armsingleton/pkg/azure/resources"
	"github.com/gardener/armsingleton/pkg/core/config"
	"github.com/gardener/armsingleton/pkg/utils/ptr"
)

func newTestConfig() *config.Config {
	conf := &config.Config{
		Version: config.ConfigFormatVersion,
		Azure: config.AzureConfig{
			Credentials: map[string]config.AzureCredentialsConfig{
				"default": {Authentication: config.AzureAuthenticationMethodDefault},
			},
			Subscriptions: []config.AzureSubscriptionConfig{
				{ID: "sub-1", UseCredentials: "default", ResourceGroups: []string{"rg-1"}},
			},
		},
	}

	return conf
}

func TestValidateAzureConfig(t *testing.T) {
	testCases := []struct {
		desc   string
		mutate func(c *config.Config)
		want   error
	}{
		{
			desc:   "valid config",
			mutate: func(c *config.Config) {},
			want:   nil,
		},
		{
			desc:   "no subscriptions",
			mutate: func(c *config.Config) { c.Azure.Subscriptions = nil },
			want:   errAzureNoSubscriptions,
		},
		{
			desc:   "no credentials",
			mutate: func(c *config.Config) { c.Azure.Subscriptions[0].UseCredentials = "" },
			want:   errNoServiceCredentials,
		},
		{
			desc:   "unknown credentials",
			mutate: func(c *config.Config) { c.Azure.Subscriptions[0].UseCredentials = "other" },
			want:   errUnknownNamedCredentials,
		},
		{
			desc: "no authentication method",
			mutate: func(c *config.Config) {
				c.Azure.Credentials["default"] = config.AzureCredentialsConfig{}
			},
			want: errNoAuthenticationMethod,
		},
		{
			desc: "unknown authentication method",
			mutate: func(c *config.Config) {
				c.Azure.Credentials["default"] = config.AzureCredentialsConfig{Authentication: "password"}
			},
			want: errUnknownAuthenticationMethod,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			conf := newTestConfig()
			tc.mutate(conf)
			err := validateAzureConfig(conf)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got error %v, want %v", err, tc.want)
			}
		})
	}
}

func TestGetAzureTokenProviderWorkloadIdentity(t *testing.T) {
	conf := newTestConfig()
	conf.Azure.Credentials["wi"] = config.AzureCredentialsConfig{
		Authentication: config.AzureAuthenticationMethodWorkloadIdentity,
		WorkloadIdentity: config.AzureWorkloadIdentityConfig{
			ClientID: "client-id",
		},
	}

	if _, err := getAzureTokenProvider(conf, "wi"); !errors.Is(err, errAzureNoTenantID) {
		t.Fatalf("got error %v, want %v", err, errAzureNoTenantID)
	}

	if _, err := getAzureTokenProvider(conf, "missing"); !errors.Is(err, errUnknownNamedCredentials) {
		t.Fatalf("got error %v, want %v", err, errUnknownNamedCredentials)
	}
}

func TestNewAzureClientOptions(t *testing.T) {
	conf := newTestConfig()
	conf.Azure.APIVersion = "2024-01-01"
	conf.Azure.Endpoint = "https://management.example.com"

	opts := newAzureClientOptions(conf)
	if opts.ServiceVersion != "2024-01-01" {
		t.Fatalf("got service version %q", opts.ServiceVersion)
	}
	if got := opts.Cloud.Services[cloud.ResourceManager].Endpoint; got != conf.Azure.Endpoint {
		t.Fatalf("got endpoint %q", got)
	}
	if len(opts.PerRetryPolicies) != 1 {
		t.Fatalf("got %d per-retry policies, want 1", len(opts.PerRetryPolicies))
	}
}

func TestFormatTags(t *testing.T) {
	got := formatTags(map[string]string{"b": "2", "a": "1"})
	if got != "a=1,b=2" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintResources(t *testing.T) {
	manager := resources.NewManagerFromClient("sub-1", nil)
	item := manager.SingletonTrackedResources().FromInnerModel(&models.SingletonTrackedResourceInner{
		Name:     ptr.To("default"),
		Location: ptr.To("eastus"),
	})

	testCases := []struct {
		format string
		want   string
	}{
		{format: outputJSON, want: `"location": "eastus"`},
		{format: outputYAML, want: "location: eastus"},
		{format: outputTable, want: "eastus"},
	}

	for _, tc := range testCases {
		var buf bytes.Buffer
		if err := printResources(&buf, tc.format, []*resources.SingletonTrackedResource{item}); err != nil {
			t.Fatalf("%s: unexpected error: %s", tc.format, err)
		}
		if !strings.Contains(buf.String(), tc.want) {
			t.Fatalf("%s: output %q does not contain %q", tc.format, buf.String(), tc.want)
		}
	}

	var buf bytes.Buffer
	if err := printResources(&buf, "xml", nil); !errors.Is(err, errUnknownOutputFormat) {
		t.Fatalf("got error %v, want %v", err, errUnknownOutputFormat)
	}
}

func TestPrintResponse(t *testing.T) {
	manager := resources.NewManagerFromClient("sub-1", nil)
	inner := &models.Response[models.SingletonTrackedResourceInner]{
		StatusCode: http.StatusOK,
		Header:     http.Header{"X-Ms-Request-Id": []string{"req-1"}},
		Value:      &models.SingletonTrackedResourceInner{Location: ptr.To("eastus")},
	}
	resp := models.MapResponse(inner, manager.SingletonTrackedResources().FromInnerModel)

	testCases := []struct {
		desc string
		resp *models.Response[resources.SingletonTrackedResource]
		want []string
	}{
		{
			desc: "nil envelope",
			resp: nil,
			want: []string{"no response returned"},
		},
		{
			desc: "envelope with resource",
			resp: resp,
			want: []string{"status: 200", "request-id: req-1", `"location": "eastus"`},
		},
		{
			desc: "envelope without resource",
			resp: &models.Response[resources.SingletonTrackedResource]{StatusCode: http.StatusOK},
			want: []string{"status: 200", "request-id: " + na, "no resource returned"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			var buf bytes.Buffer
			if err := printResponse(&buf, outputJSON, tc.resp); err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			for _, want := range tc.want {
				if !strings.Contains(buf.String(), want) {
					t.Fatalf("output %q does not contain %q", buf.String(), want)
				}
			}
		})
	}
}
