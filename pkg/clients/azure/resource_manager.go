// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package azure

import (
	"github.com/gardener/armsingleton/pkg/core/registry"
)

// SingletonTrackedResourcesClientset provides the registry of Azure API
// clients for interfacing with singleton tracked resources, keyed by
// subscription id.
var SingletonTrackedResourcesClientset = registry.New[string, *Client[*SingletonTrackedResourcesClient]]()
