// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package azure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"

	"github.com/gardener/armsingleton/pkg/azure/constants"
	"github.com/gardener/armsingleton/pkg/azure/models"
	"github.com/gardener/armsingleton/pkg/version"
)

// moduleName is reported as part of the User-Agent of each request.
const moduleName = "armsingleton"

// DefaultPollFrequency is the frequency at which long-running operations are
// polled, unless configured otherwise.
const DefaultPollFrequency = 30 * time.Second

// ErrEmptySubscriptionID is returned when creating a client without a
// subscription id.
var ErrEmptySubscriptionID = errors.New("parameter subscriptionID cannot be empty")

// ErrEmptyResourceGroup is returned when an operation is invoked without a
// resource group name.
var ErrEmptyResourceGroup = errors.New("parameter resourceGroupName cannot be empty")

// ErrNilResource is returned when an operation which sends a resource is
// invoked with a nil resource.
var ErrNilResource = errors.New("parameter resource cannot be nil")

// SingletonTrackedResourcesGetOptions contains the optional parameters for
// [SingletonTrackedResourcesClient.GetByResourceGroup].
type SingletonTrackedResourcesGetOptions struct {
	// placeholder for future optional parameters
}

// SingletonTrackedResourcesBeginCreateOrUpdateOptions contains the optional
// parameters for [SingletonTrackedResourcesClient.BeginCreateOrUpdate].
type SingletonTrackedResourcesBeginCreateOrUpdateOptions struct {
	// ResumeToken resumes the long-running operation from the provided
	// token, instead of starting a new one.
	ResumeToken string
}

// SingletonTrackedResourcesCreateOrUpdateOptions contains the optional
// parameters for [SingletonTrackedResourcesClient.CreateOrUpdate].
type SingletonTrackedResourcesCreateOrUpdateOptions struct {
	// PollFrequency is the time to wait between polls of the long-running
	// operation. Defaults to [DefaultPollFrequency].
	PollFrequency time.Duration
}

// SingletonTrackedResourcesUpdateOptions contains the optional parameters for
// [SingletonTrackedResourcesClient.Update].
type SingletonTrackedResourcesUpdateOptions struct {
	// placeholder for future optional parameters
}

// SingletonTrackedResourcesListByResourceGroupOptions contains the optional
// parameters for [SingletonTrackedResourcesClient.NewListByResourceGroupPager].
type SingletonTrackedResourcesListByResourceGroupOptions struct {
	// placeholder for future optional parameters
}

// SingletonTrackedResourcesCreateOrUpdateResponse is the final result of the
// create-or-update long-running operation. The embedded record is nil, if the
// operation completed without a payload.
type SingletonTrackedResourcesCreateOrUpdateResponse struct {
	*models.SingletonTrackedResourceInner
}

// UnmarshalJSON implements the [json.Unmarshaler] interface. Any payload,
// including an empty object, yields a non-nil record.
func (r *SingletonTrackedResourcesCreateOrUpdateResponse) UnmarshalJSON(data []byte) error {
	var value models.SingletonTrackedResourceInner
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	r.SingletonTrackedResourceInner = &value

	return nil
}

// SingletonTrackedResourcesListByResourceGroupResponse is a single page of a
// list operation.
type SingletonTrackedResourcesListByResourceGroupResponse struct {
	models.SingletonTrackedResourceListResult
}

// SingletonTrackedResourcesClientOptions contains the optional parameters for
// [NewSingletonTrackedResourcesClient].
type SingletonTrackedResourcesClientOptions struct {
	arm.ClientOptions

	// ServiceVersion overrides [constants.DefaultAPIVersion], if set.
	ServiceVersion string
}

// SingletonTrackedResourcesClient is an Azure Resource Manager API client for
// singleton tracked resources. A resource group contains at most one such
// resource, which is always named [constants.SingletonResourceName].
//
// The client is safe for concurrent use.
type SingletonTrackedResourcesClient struct {
	internal       *arm.Client
	subscriptionID string
	apiVersion     string
}

// NewSingletonTrackedResourcesClient creates a new client for the given
// subscription. A nil options value uses the defaults of [arm.ClientOptions]
// and [constants.DefaultAPIVersion].
func NewSingletonTrackedResourcesClient(subscriptionID string, credential azcore.TokenCredential, options *SingletonTrackedResourcesClientOptions) (*SingletonTrackedResourcesClient, error) {
	if subscriptionID == "" {
		return nil, ErrEmptySubscriptionID
	}

	var armOpts *arm.ClientOptions
	apiVersion := constants.DefaultAPIVersion
	if options != nil {
		armOpts = &options.ClientOptions
		if options.ServiceVersion != "" {
			apiVersion = options.ServiceVersion
		}
	}

	cl, err := arm.NewClient(moduleName, version.Version, credential, armOpts)
	if err != nil {
		return nil, err
	}

	client := &SingletonTrackedResourcesClient{
		internal:       cl,
		subscriptionID: subscriptionID,
		apiVersion:     apiVersion,
	}

	return client, nil
}

// SubscriptionID returns the id of the subscription the client operates on.
func (c *SingletonTrackedResourcesClient) SubscriptionID() string {
	return c.subscriptionID
}

// GetByResourceGroup returns the singleton tracked resource of the given
// resource group. The result is nil, if the service responded without a
// payload.
func (c *SingletonTrackedResourcesClient) GetByResourceGroup(ctx context.Context, resourceGroupName string, options *SingletonTrackedResourcesGetOptions) (*models.SingletonTrackedResourceInner, error) {
	resp, err := c.GetByResourceGroupWithResponse(ctx, resourceGroupName, options)
	if err != nil {
		return nil, err
	}

	return resp.Value, nil
}

// GetByResourceGroupWithResponse returns the singleton tracked resource of the
// given resource group, along with the HTTP response metadata.
func (c *SingletonTrackedResourcesClient) GetByResourceGroupWithResponse(ctx context.Context, resourceGroupName string, _ *SingletonTrackedResourcesGetOptions) (*models.Response[models.SingletonTrackedResourceInner], error) {
	endpoint, err := c.resourceEndpoint(resourceGroupName)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodGet, endpoint)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.internal.Pipeline().Do(req)
	if err != nil {
		return nil, err
	}

	if !runtime.HasStatusCode(httpResp, http.StatusOK) {
		return nil, runtime.NewResponseError(httpResp)
	}

	return newResourceResponse(httpResp)
}

// BeginCreateOrUpdate starts creating or replacing the singleton tracked
// resource of the given resource group. The resource is sent as is.
func (c *SingletonTrackedResourcesClient) BeginCreateOrUpdate(ctx context.Context, resourceGroupName string, resource *models.SingletonTrackedResourceInner, options *SingletonTrackedResourcesBeginCreateOrUpdateOptions) (*runtime.Poller[SingletonTrackedResourcesCreateOrUpdateResponse], error) {
	if options != nil && options.ResumeToken != "" {
		return runtime.NewPollerFromResumeToken[SingletonTrackedResourcesCreateOrUpdateResponse](
			options.ResumeToken,
			c.internal.Pipeline(),
			nil,
		)
	}

	endpoint, err := c.resourceEndpoint(resourceGroupName)
	if err != nil {
		return nil, err
	}

	if resource == nil {
		return nil, ErrNilResource
	}

	req, err := c.newRequest(ctx, http.MethodPut, endpoint)
	if err != nil {
		return nil, err
	}

	if err := runtime.MarshalAsJSON(req, resource); err != nil {
		return nil, err
	}

	httpResp, err := c.internal.Pipeline().Do(req)
	if err != nil {
		return nil, err
	}

	if !runtime.HasStatusCode(httpResp, http.StatusOK, http.StatusCreated) {
		return nil, runtime.NewResponseError(httpResp)
	}

	pollerOpts := &runtime.NewPollerOptions[SingletonTrackedResourcesCreateOrUpdateResponse]{
		FinalStateVia: runtime.FinalStateViaAzureAsyncOp,
	}

	return runtime.NewPoller(httpResp, c.internal.Pipeline(), pollerOpts)
}

// CreateOrUpdate creates or replaces the singleton tracked resource of the
// given resource group and waits for the long-running operation to complete.
// The result is nil, if the operation completed without a payload.
func (c *SingletonTrackedResourcesClient) CreateOrUpdate(ctx context.Context, resourceGroupName string, resource *models.SingletonTrackedResourceInner, options *SingletonTrackedResourcesCreateOrUpdateOptions) (*models.SingletonTrackedResourceInner, error) {
	frequency := DefaultPollFrequency
	if options != nil && options.PollFrequency > 0 {
		frequency = options.PollFrequency
	}

	poller, err := c.BeginCreateOrUpdate(ctx, resourceGroupName, resource, nil)
	if err != nil {
		return nil, err
	}

	resp, err := poller.PollUntilDone(ctx, &runtime.PollUntilDoneOptions{Frequency: frequency})
	if err != nil {
		return nil, err
	}

	return resp.SingletonTrackedResourceInner, nil
}

// Update patches the singleton tracked resource of the given resource group
// with the given properties. The result is nil, if the service responded
// without a payload.
func (c *SingletonTrackedResourcesClient) Update(ctx context.Context, resourceGroupName string, properties *models.SingletonTrackedResourceInner, options *SingletonTrackedResourcesUpdateOptions) (*models.SingletonTrackedResourceInner, error) {
	resp, err := c.UpdateWithResponse(ctx, resourceGroupName, properties, options)
	if err != nil {
		return nil, err
	}

	return resp.Value, nil
}

// UpdateWithResponse patches the singleton tracked resource of the given
// resource group, and returns the result along with the HTTP response
// metadata.
func (c *SingletonTrackedResourcesClient) UpdateWithResponse(ctx context.Context, resourceGroupName string, properties *models.SingletonTrackedResourceInner, _ *SingletonTrackedResourcesUpdateOptions) (*models.Response[models.SingletonTrackedResourceInner], error) {
	endpoint, err := c.resourceEndpoint(resourceGroupName)
	if err != nil {
		return nil, err
	}

	if properties == nil {
		return nil, ErrNilResource
	}

	req, err := c.newRequest(ctx, http.MethodPatch, endpoint)
	if err != nil {
		return nil, err
	}

	if err := runtime.MarshalAsJSON(req, properties); err != nil {
		return nil, err
	}

	httpResp, err := c.internal.Pipeline().Do(req)
	if err != nil {
		return nil, err
	}

	if !runtime.HasStatusCode(httpResp, http.StatusOK) {
		return nil, runtime.NewResponseError(httpResp)
	}

	return newResourceResponse(httpResp)
}

// NewListByResourceGroupPager returns a [runtime.Pager] over the singleton
// tracked resources of the given resource group. No request is made until the
// first page is requested.
func (c *SingletonTrackedResourcesClient) NewListByResourceGroupPager(resourceGroupName string, _ *SingletonTrackedResourcesListByResourceGroupOptions) *runtime.Pager[SingletonTrackedResourcesListByResourceGroupResponse] {
	handler := runtime.PagingHandler[SingletonTrackedResourcesListByResourceGroupResponse]{
		More: func(page SingletonTrackedResourcesListByResourceGroupResponse) bool {
			return page.NextLink != nil && len(*page.NextLink) > 0
		},
		Fetcher: func(ctx context.Context, page *SingletonTrackedResourcesListByResourceGroupResponse) (SingletonTrackedResourcesListByResourceGroupResponse, error) {
			var result SingletonTrackedResourcesListByResourceGroupResponse
			var req *policy.Request
			var err error

			if page == nil {
				var endpoint string
				endpoint, err = c.collectionEndpoint(resourceGroupName)
				if err != nil {
					return result, err
				}
				req, err = c.newRequest(ctx, http.MethodGet, endpoint)
			} else {
				// The next link already carries the api-version
				req, err = runtime.NewRequest(ctx, http.MethodGet, *page.NextLink)
				if err == nil {
					req.Raw().Header["Accept"] = []string{"application/json"}
				}
			}
			if err != nil {
				return result, err
			}

			httpResp, err := c.internal.Pipeline().Do(req)
			if err != nil {
				return result, err
			}

			if !runtime.HasStatusCode(httpResp, http.StatusOK) {
				return result, runtime.NewResponseError(httpResp)
			}

			if err := runtime.UnmarshalAsJSON(httpResp, &result.SingletonTrackedResourceListResult); err != nil {
				return result, err
			}

			return result, nil
		},
	}

	return runtime.NewPager(handler)
}

// collectionEndpoint returns the URL of the singleton tracked resources
// collection within the given resource group.
func (c *SingletonTrackedResourcesClient) collectionEndpoint(resourceGroupName string) (string, error) {
	if resourceGroupName == "" {
		return "", ErrEmptyResourceGroup
	}

	urlPath := fmt.Sprintf(
		"/subscriptions/%s/resourceGroups/%s/providers/%s/%s",
		url.PathEscape(c.subscriptionID),
		url.PathEscape(resourceGroupName),
		constants.ProviderNamespace,
		constants.SingletonTrackedResourcesType,
	)

	return runtime.JoinPaths(c.internal.Endpoint(), urlPath), nil
}

// resourceEndpoint returns the URL of the singleton tracked resource within the
// given resource group.
func (c *SingletonTrackedResourcesClient) resourceEndpoint(resourceGroupName string) (string, error) {
	collection, err := c.collectionEndpoint(resourceGroupName)
	if err != nil {
		return "", err
	}

	return runtime.JoinPaths(collection, constants.SingletonResourceName), nil
}

// newRequest creates a new request with the api-version and JSON accept header
// applied.
func (c *SingletonTrackedResourcesClient) newRequest(ctx context.Context, method string, endpoint string) (*policy.Request, error) {
	req, err := runtime.NewRequest(ctx, method, endpoint)
	if err != nil {
		return nil, err
	}

	reqQP := req.Raw().URL.Query()
	reqQP.Set("api-version", c.apiVersion)
	req.Raw().URL.RawQuery = reqQP.Encode()
	req.Raw().Header["Accept"] = []string{"application/json"}

	return req, nil
}

// newResourceResponse decodes the given HTTP response into a [models.Response].
// An empty body results in a nil payload.
func newResourceResponse(resp *http.Response) (*models.Response[models.SingletonTrackedResourceInner], error) {
	payload, err := runtime.Payload(resp)
	if err != nil {
		return nil, err
	}

	result := &models.Response[models.SingletonTrackedResourceInner]{
		Request:    resp.Request,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}

	if len(payload) == 0 {
		return result, nil
	}

	var value models.SingletonTrackedResourceInner
	if err := runtime.UnmarshalAsJSON(resp, &value); err != nil {
		return nil, err
	}
	result.Value = &value

	return result, nil
}
