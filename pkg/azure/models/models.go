// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package models

import "time"

// ProvisioningState represents the provisioning state of a singleton tracked
// resource.
type ProvisioningState string

const (
	ProvisioningStateSucceeded    ProvisioningState = "Succeeded"
	ProvisioningStateFailed       ProvisioningState = "Failed"
	ProvisioningStateCanceled     ProvisioningState = "Canceled"
	ProvisioningStateProvisioning ProvisioningState = "Provisioning"
	ProvisioningStateUpdating     ProvisioningState = "Updating"
	ProvisioningStateDeleting     ProvisioningState = "Deleting"
	ProvisioningStateAccepted     ProvisioningState = "Accepted"
)

// PossibleProvisioningStateValues returns the known values for
// [ProvisioningState].
func PossibleProvisioningStateValues() []ProvisioningState {
	return []ProvisioningState{
		ProvisioningStateSucceeded,
		ProvisioningStateFailed,
		ProvisioningStateCanceled,
		ProvisioningStateProvisioning,
		ProvisioningStateUpdating,
		ProvisioningStateDeleting,
		ProvisioningStateAccepted,
	}
}

// CreatedByType is the type of identity that created or modified a resource.
type CreatedByType string

const (
	CreatedByTypeApplication     CreatedByType = "Application"
	CreatedByTypeKey             CreatedByType = "Key"
	CreatedByTypeManagedIdentity CreatedByType = "ManagedIdentity"
	CreatedByTypeUser            CreatedByType = "User"
)

// SingletonTrackedResourceInner is the wire representation of a singleton
// tracked resource, as sent to and returned by the Azure Resource Manager API.
type SingletonTrackedResourceInner struct {
	// ID is the fully qualified resource id.
	ID *string `json:"id,omitempty" yaml:"id,omitempty"`

	// Name is the name of the resource. Singleton resources are always
	// named "default".
	Name *string `json:"name,omitempty" yaml:"name,omitempty"`

	// Type is the resource type, e.g.
	// "Azure.ResourceManager.Models.Resources/singletonTrackedResources".
	Type *string `json:"type,omitempty" yaml:"type,omitempty"`

	// Location is the geo-location where the resource lives.
	Location *string `json:"location,omitempty" yaml:"location,omitempty"`

	// Tags are the resource tags.
	Tags map[string]*string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Properties are the resource-specific properties.
	Properties *SingletonTrackedResourceProperties `json:"properties,omitempty" yaml:"properties,omitempty"`

	// SystemData contains the creation and modification metadata.
	SystemData *SystemData `json:"systemData,omitempty" yaml:"system_data,omitempty"`
}

// SingletonTrackedResourceProperties are the resource-specific properties of a
// singleton tracked resource.
type SingletonTrackedResourceProperties struct {
	// ProvisioningState is the status of the last operation. Read-only.
	ProvisioningState *ProvisioningState `json:"provisioningState,omitempty" yaml:"provisioning_state,omitempty"`

	// Description is a free-form description of the resource.
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
}

// SystemData provides metadata about the creation and last modification of a
// resource.
type SystemData struct {
	CreatedBy          *string        `json:"createdBy,omitempty" yaml:"created_by,omitempty"`
	CreatedByType      *CreatedByType `json:"createdByType,omitempty" yaml:"created_by_type,omitempty"`
	CreatedAt          *time.Time     `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
	LastModifiedBy     *string        `json:"lastModifiedBy,omitempty" yaml:"last_modified_by,omitempty"`
	LastModifiedByType *CreatedByType `json:"lastModifiedByType,omitempty" yaml:"last_modified_by_type,omitempty"`
	LastModifiedAt     *time.Time     `json:"lastModifiedAt,omitempty" yaml:"last_modified_at,omitempty"`
}

// SingletonTrackedResourceListResult is a single page of singleton tracked
// resources returned by a list operation.
type SingletonTrackedResourceListResult struct {
	// Value contains the items on this page.
	Value []*SingletonTrackedResourceInner `json:"value" yaml:"value"`

	// NextLink is the link to the next page, if any.
	NextLink *string `json:"nextLink,omitempty" yaml:"next_link,omitempty"`
}
