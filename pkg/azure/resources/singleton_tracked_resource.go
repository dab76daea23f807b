// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package resources

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"

	"github.com/gardener/armsingleton/pkg/azure/models"
	"github.com/gardener/armsingleton/pkg/utils/ptr"
)

// SingletonTrackedResource is the user-facing view of a singleton tracked
// resource. It wraps the record returned by the API and keeps a reference to
// the [Manager] it has been obtained from.
//
// Values are never modified after construction.
type SingletonTrackedResource struct {
	inner   *models.SingletonTrackedResourceInner
	manager *Manager
}

// newSingletonTrackedResource wraps the given record.
func newSingletonTrackedResource(inner *models.SingletonTrackedResourceInner, manager *Manager) *SingletonTrackedResource {
	return &SingletonTrackedResource{
		inner:   inner,
		manager: manager,
	}
}

// ID returns the fully qualified resource id.
func (r *SingletonTrackedResource) ID() string {
	return ptr.Value(r.inner.ID, "")
}

// Name returns the name of the resource.
func (r *SingletonTrackedResource) Name() string {
	return ptr.Value(r.inner.Name, "")
}

// Type returns the resource type.
func (r *SingletonTrackedResource) Type() string {
	return ptr.Value(r.inner.Type, "")
}

// Location returns the location of the resource.
func (r *SingletonTrackedResource) Location() string {
	return ptr.Value(r.inner.Location, "")
}

// Tags returns a copy of the resource tags. Tags with nil values are returned
// as empty strings.
func (r *SingletonTrackedResource) Tags() map[string]string {
	return ptr.Values(r.inner.Tags, "")
}

// Properties returns the resource-specific properties, if any.
func (r *SingletonTrackedResource) Properties() *models.SingletonTrackedResourceProperties {
	return r.inner.Properties
}

// ProvisioningState returns the provisioning state of the resource, or an
// empty string if it is not known.
func (r *SingletonTrackedResource) ProvisioningState() models.ProvisioningState {
	if r.inner.Properties == nil {
		return ""
	}

	return ptr.Value(r.inner.Properties.ProvisioningState, "")
}

// SystemData returns the creation and modification metadata, if any.
func (r *SingletonTrackedResource) SystemData() *models.SystemData {
	return r.inner.SystemData
}

// ResourceGroupName returns the name of the resource group, as encoded in the
// resource id. An empty string is returned for missing or malformed ids.
func (r *SingletonTrackedResource) ResourceGroupName() string {
	id, err := arm.ParseResourceID(r.ID())
	if err != nil {
		return ""
	}

	return id.ResourceGroupName
}

// InnerModel returns the wrapped record.
func (r *SingletonTrackedResource) InnerModel() *models.SingletonTrackedResourceInner {
	return r.inner
}

// Manager returns the [Manager] the resource has been obtained from.
func (r *SingletonTrackedResource) Manager() *Manager {
	return r.manager
}

// Refresh fetches the latest state of the resource through its [Manager] and
// returns it as a new value. The receiver is left unchanged.
func (r *SingletonTrackedResource) Refresh(ctx context.Context) (*SingletonTrackedResource, error) {
	return r.manager.SingletonTrackedResources().GetByResourceGroup(ctx, r.ResourceGroupName(), nil)
}
