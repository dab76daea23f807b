// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package resources

import (
	"context"
	"iter"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"

	"github.com/gardener/armsingleton/pkg/azure/models"
	azureclients "github.com/gardener/armsingleton/pkg/clients/azure"
	"github.com/gardener/armsingleton/pkg/utils/pager"
)

// InnerClient is the low-level API client for singleton tracked resources,
// which operates on wire records.
type InnerClient interface {
	GetByResourceGroup(ctx context.Context, resourceGroupName string, options *azureclients.SingletonTrackedResourcesGetOptions) (*models.SingletonTrackedResourceInner, error)
	GetByResourceGroupWithResponse(ctx context.Context, resourceGroupName string, options *azureclients.SingletonTrackedResourcesGetOptions) (*models.Response[models.SingletonTrackedResourceInner], error)
	CreateOrUpdate(ctx context.Context, resourceGroupName string, resource *models.SingletonTrackedResourceInner, options *azureclients.SingletonTrackedResourcesCreateOrUpdateOptions) (*models.SingletonTrackedResourceInner, error)
	Update(ctx context.Context, resourceGroupName string, properties *models.SingletonTrackedResourceInner, options *azureclients.SingletonTrackedResourcesUpdateOptions) (*models.SingletonTrackedResourceInner, error)
	UpdateWithResponse(ctx context.Context, resourceGroupName string, properties *models.SingletonTrackedResourceInner, options *azureclients.SingletonTrackedResourcesUpdateOptions) (*models.Response[models.SingletonTrackedResourceInner], error)
	NewListByResourceGroupPager(resourceGroupName string, options *azureclients.SingletonTrackedResourcesListByResourceGroupOptions) *runtime.Pager[azureclients.SingletonTrackedResourcesListByResourceGroupResponse]
}

var _ InnerClient = (*azureclients.SingletonTrackedResourcesClient)(nil)

// ListByResourceGroupPage is a single page of singleton tracked resources.
type ListByResourceGroupPage struct {
	// Value contains the resources on this page.
	Value []*SingletonTrackedResource

	// NextLink is the link to the next page, as reported by the service.
	NextLink *string
}

// SingletonTrackedResources provides the operations on singleton tracked
// resources, which are addressed by the name of their resource group.
//
// It is stateless beyond the inner client and manager it has been created
// with, and it is safe for concurrent use.
type SingletonTrackedResources struct {
	innerClient    InnerClient
	serviceManager *Manager
}

// NewSingletonTrackedResources creates a new [SingletonTrackedResources]
// façade. Each resource returned by the façade references manager.
func NewSingletonTrackedResources(innerClient InnerClient, manager *Manager) *SingletonTrackedResources {
	return &SingletonTrackedResources{
		innerClient:    innerClient,
		serviceManager: manager,
	}
}

// GetByResourceGroup returns the singleton tracked resource of the given
// resource group. A nil resource is returned, if the inner client returned no
// record.
func (s *SingletonTrackedResources) GetByResourceGroup(ctx context.Context, resourceGroupName string, options *azureclients.SingletonTrackedResourcesGetOptions) (*SingletonTrackedResource, error) {
	inner, err := s.innerClient.GetByResourceGroup(ctx, resourceGroupName, options)
	if err != nil {
		return nil, err
	}

	return s.wrap(inner), nil
}

// GetByResourceGroupWithResponse is like [SingletonTrackedResources.GetByResourceGroup],
// but also returns the HTTP response metadata.
func (s *SingletonTrackedResources) GetByResourceGroupWithResponse(ctx context.Context, resourceGroupName string, options *azureclients.SingletonTrackedResourcesGetOptions) (*models.Response[SingletonTrackedResource], error) {
	inner, err := s.innerClient.GetByResourceGroupWithResponse(ctx, resourceGroupName, options)
	if err != nil {
		return nil, err
	}

	return models.MapResponse(inner, s.wrap), nil
}

// CreateOrUpdate creates or replaces the singleton tracked resource of the
// given resource group. The resource is handed to the inner client as is.
func (s *SingletonTrackedResources) CreateOrUpdate(ctx context.Context, resourceGroupName string, resource *models.SingletonTrackedResourceInner, options *azureclients.SingletonTrackedResourcesCreateOrUpdateOptions) (*SingletonTrackedResource, error) {
	inner, err := s.innerClient.CreateOrUpdate(ctx, resourceGroupName, resource, options)
	if err != nil {
		return nil, err
	}

	return s.wrap(inner), nil
}

// Update patches the singleton tracked resource of the given resource group.
// The properties are handed to the inner client as is.
func (s *SingletonTrackedResources) Update(ctx context.Context, resourceGroupName string, properties *models.SingletonTrackedResourceInner, options *azureclients.SingletonTrackedResourcesUpdateOptions) (*SingletonTrackedResource, error) {
	inner, err := s.innerClient.Update(ctx, resourceGroupName, properties, options)
	if err != nil {
		return nil, err
	}

	return s.wrap(inner), nil
}

// UpdateWithResponse is like [SingletonTrackedResources.Update], but also
// returns the HTTP response metadata.
func (s *SingletonTrackedResources) UpdateWithResponse(ctx context.Context, resourceGroupName string, properties *models.SingletonTrackedResourceInner, options *azureclients.SingletonTrackedResourcesUpdateOptions) (*models.Response[SingletonTrackedResource], error) {
	inner, err := s.innerClient.UpdateWithResponse(ctx, resourceGroupName, properties, options)
	if err != nil {
		return nil, err
	}

	return models.MapResponse(inner, s.wrap), nil
}

// NewListByResourceGroupPager returns a [runtime.Pager] over the singleton
// tracked resources of the given resource group. Each page of the returned
// pager corresponds to exactly one page of the inner client.
func (s *SingletonTrackedResources) NewListByResourceGroupPager(resourceGroupName string, options *azureclients.SingletonTrackedResourcesListByResourceGroupOptions) *runtime.Pager[ListByResourceGroupPage] {
	inner := s.innerClient.NewListByResourceGroupPager(resourceGroupName, options)

	return pager.Map(inner, func(page azureclients.SingletonTrackedResourcesListByResourceGroupResponse) ListByResourceGroupPage {
		return ListByResourceGroupPage{
			Value:    pager.MapSlice(page.Value, s.wrap),
			NextLink: page.NextLink,
		}
	})
}

// ListByResourceGroup returns an iterator over the singleton tracked resources
// of the given resource group. Pages are fetched from the inner client as the
// iteration advances, and each record is wrapped right before it is yielded.
func (s *SingletonTrackedResources) ListByResourceGroup(ctx context.Context, resourceGroupName string, options *azureclients.SingletonTrackedResourcesListByResourceGroupOptions) iter.Seq2[*SingletonTrackedResource, error] {
	inner := s.innerClient.NewListByResourceGroupPager(resourceGroupName, options)
	items := func(page azureclients.SingletonTrackedResourcesListByResourceGroupResponse) []*models.SingletonTrackedResourceInner {
		return page.Value
	}

	return pager.Items(ctx, inner, items, s.wrap)
}

// wrap converts the given record into a [SingletonTrackedResource], which
// references the façade's manager. A nil record yields nil.
func (s *SingletonTrackedResources) wrap(inner *models.SingletonTrackedResourceInner) *SingletonTrackedResource {
	if inner == nil {
		return nil
	}

	return newSingletonTrackedResource(inner, s.serviceManager)
}

// FromInnerModel wraps a record, which was obtained directly from the inner
// client, e.g. as the result of a resumed long-running operation. A nil record
// yields nil.
func (s *SingletonTrackedResources) FromInnerModel(inner *models.SingletonTrackedResourceInner) *SingletonTrackedResource {
	return s.wrap(inner)
}
