// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package resources

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	azureclients "github.com/gardener/armsingleton/pkg/clients/azure"
)

// Manager is the entry point to the singleton tracked resources service of a
// single Azure subscription.
//
// Resources obtained through the manager keep a reference to it, but the
// manager never references individual resources. A Manager is immutable and
// safe for concurrent use.
type Manager struct {
	subscriptionID string
	serviceClient  InnerClient
	singletons     *SingletonTrackedResources
}

// NewManager creates a new [Manager] for the given subscription, which talks to
// the Azure Resource Manager API using the given credential.
func NewManager(subscriptionID string, credential azcore.TokenCredential, options *azureclients.SingletonTrackedResourcesClientOptions) (*Manager, error) {
	client, err := azureclients.NewSingletonTrackedResourcesClient(subscriptionID, credential, options)
	if err != nil {
		return nil, err
	}

	return NewManagerFromClient(subscriptionID, client), nil
}

// NewManagerFromClient creates a new [Manager] for the given subscription,
// which uses the specified [InnerClient].
func NewManagerFromClient(subscriptionID string, client InnerClient) *Manager {
	m := &Manager{
		subscriptionID: subscriptionID,
		serviceClient:  client,
	}
	m.singletons = NewSingletonTrackedResources(client, m)

	return m
}

// SubscriptionID returns the id of the subscription managed by m.
func (m *Manager) SubscriptionID() string {
	return m.subscriptionID
}

// ServiceClient returns the [InnerClient] used by m.
func (m *Manager) ServiceClient() InnerClient {
	return m.serviceClient
}

// SingletonTrackedResources returns the façade for singleton tracked
// resources. The same façade is returned on each call.
func (m *Manager) SingletonTrackedResources() *SingletonTrackedResources {
	return m.singletons
}
