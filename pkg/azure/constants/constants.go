// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package constants

const (
	// ProviderNamespace is the resource provider namespace of singleton
	// tracked resources.
	ProviderNamespace = "Azure.ResourceManager.Models.Resources"

	// SingletonTrackedResourcesType is the resource type name of singleton
	// tracked resources within the [ProviderNamespace].
	SingletonTrackedResourcesType = "singletonTrackedResources"

	// SingletonResourceName is the fixed name of a singleton tracked
	// resource within a resource group.
	SingletonResourceName = "default"

	// DefaultAPIVersion is the api-version used when none has been
	// configured.
	DefaultAPIVersion = "2023-12-01-preview"

	// CorrelationRequestIDHeader is the header used by Azure Resource
	// Manager to correlate requests belonging to the same operation.
	CorrelationRequestIDHeader = "x-ms-correlation-request-id"
)
