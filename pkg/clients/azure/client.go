// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package azure

// Client wraps an Azure API client together with the configuration it was
// created from.
type Client[T any] struct {
	// NamedCredentials is the name of the configured credentials used by
	// the client.
	NamedCredentials string

	// SubscriptionID is the subscription the client operates on.
	SubscriptionID string

	// ResourceGroups are the configured resource groups of the
	// subscription. Commands which operate on multiple resource groups
	// default to these.
	ResourceGroups []string

	// Client is the wrapped API client.
	Client T
}
