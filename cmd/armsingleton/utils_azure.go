// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/gardener/armsingleton/pkg/azure/resources"
	azureclients "github.com/gardener/armsingleton/pkg/clients/azure"
	"github.com/gardener/armsingleton/pkg/core/config"
	"github.com/gardener/armsingleton/pkg/metrics"
)

// errAzureNoClientID is an error, which is returned when Azure Workload
// Identity Federation is configured without a client id.
var errAzureNoClientID = errors.New("no client id specified")

// errAzureNoTenantID is an error, which is returned when Azure Workload
// Identity Federation is configured without a tenant id.
var errAzureNoTenantID = errors.New("no tenant id specified")

// errAzureNoTokenFile is an error, which is returned when Azure Workload
// Identity Federation is configured without a token file path.
var errAzureNoTokenFile = errors.New("no token file specified")

// errAzureNoSubscriptions is an error, which is returned when no
// subscriptions are configured.
var errAzureNoSubscriptions = errors.New("no subscriptions configured")

// errAzureUnknownSubscription is an error, which is returned when referring
// to a subscription, which is not configured.
var errAzureUnknownSubscription = errors.New("unknown subscription")

// errAzureAmbiguousSubscription is an error, which is returned when multiple
// subscriptions are configured and none was selected.
var errAzureAmbiguousSubscription = errors.New("multiple subscriptions configured, please specify one")

// validateAzureConfig validates the Azure configuration settings.
func validateAzureConfig(conf *config.Config) error {
	if len(conf.Azure.Subscriptions) == 0 {
		return fmt.Errorf("azure: %w", errAzureNoSubscriptions)
	}

	// Make sure that the subscriptions have named credentials configured.
	for _, sub := range conf.Azure.Subscriptions {
		if sub.UseCredentials == "" {
			return fmt.Errorf("azure: %w: %s", errNoServiceCredentials, sub.ID)
		}

		// Validate that the named credentials are actually defined.
		if _, ok := conf.Azure.Credentials[sub.UseCredentials]; !ok {
			return fmt.Errorf("azure: %w: subscription %s refers to %s", errUnknownNamedCredentials, sub.ID, sub.UseCredentials)
		}
	}

	// Validate the named credentials for using valid authentication
	// methods.
	supportedAuthnMethods := []string{
		config.AzureAuthenticationMethodDefault,
		config.AzureAuthenticationMethodWorkloadIdentity,
	}

	for name, creds := range conf.Azure.Credentials {
		if creds.Authentication == "" {
			return fmt.Errorf("azure: %w: credentials %s", errNoAuthenticationMethod, name)
		}
		if !slices.Contains(supportedAuthnMethods, creds.Authentication) {
			return fmt.Errorf("azure: %w: %s uses %s", errUnknownAuthenticationMethod, name, creds.Authentication)
		}
	}

	return nil
}

// getAzureTokenProvider returns an [azcore.TokenCredential] for the given named
// credentials.
func getAzureTokenProvider(conf *config.Config, namedCredentials string) (azcore.TokenCredential, error) {
	creds, ok := conf.Azure.Credentials[namedCredentials]
	if !ok {
		return nil, fmt.Errorf("azure: %w: %s", errUnknownNamedCredentials, namedCredentials)
	}

	switch creds.Authentication {
	case config.AzureAuthenticationMethodDefault:
		return azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{})
	case config.AzureAuthenticationMethodWorkloadIdentity:
		if creds.WorkloadIdentity.ClientID == "" {
			return nil, fmt.Errorf("%w for %s", errAzureNoClientID, namedCredentials)
		}
		if creds.WorkloadIdentity.TenantID == "" {
			return nil, fmt.Errorf("%w for %s", errAzureNoTenantID, namedCredentials)
		}
		if creds.WorkloadIdentity.TokenFile == "" {
			return nil, fmt.Errorf("%w for %s", errAzureNoTokenFile, namedCredentials)
		}

		opts := &azidentity.WorkloadIdentityCredentialOptions{
			ClientID:      creds.WorkloadIdentity.ClientID,
			TenantID:      creds.WorkloadIdentity.TenantID,
			TokenFilePath: creds.WorkloadIdentity.TokenFile,
		}
		return azidentity.NewWorkloadIdentityCredential(opts)
	default:
		return nil, fmt.Errorf("azure: %w: %s", errUnknownAuthenticationMethod, creds.Authentication)
	}
}

// newAzureClientOptions returns the client options derived from the given
// configuration. Each client records request metrics.
func newAzureClientOptions(conf *config.Config) *azureclients.SingletonTrackedResourcesClientOptions {
	opts := &azureclients.SingletonTrackedResourcesClientOptions{
		ClientOptions: arm.ClientOptions{
			ClientOptions: policy.ClientOptions{
				PerRetryPolicies: []policy.Policy{metrics.NewRequestPolicy()},
			},
		},
		ServiceVersion: conf.Azure.APIVersion,
	}

	if conf.Azure.Endpoint != "" {
		rm := cloud.AzurePublic.Services[cloud.ResourceManager]
		opts.Cloud = cloud.Configuration{
			ActiveDirectoryAuthorityHost: cloud.AzurePublic.ActiveDirectoryAuthorityHost,
			Services: map[cloud.ServiceName]cloud.ServiceConfiguration{
				cloud.ResourceManager: {
					Audience: rm.Audience,
					Endpoint: conf.Azure.Endpoint,
				},
			},
		}
	}

	return opts
}

// configureAzureClients creates an API client for each configured
// subscription and registers it with
// [azureclients.SingletonTrackedResourcesClientset].
func configureAzureClients(conf *config.Config) error {
	slog.Info("configuring Azure clients")
	opts := newAzureClientOptions(conf)

	for _, sub := range conf.Azure.Subscriptions {
		tokenProvider, err := getAzureTokenProvider(conf, sub.UseCredentials)
		if err != nil {
			return err
		}

		client, err := azureclients.NewSingletonTrackedResourcesClient(sub.ID, tokenProvider, opts)
		if err != nil {
			return fmt.Errorf("unable to create client for subscription %s: %w", sub.ID, err)
		}

		azureclients.SingletonTrackedResourcesClientset.Overwrite(
			sub.ID,
			&azureclients.Client[*azureclients.SingletonTrackedResourcesClient]{
				NamedCredentials: sub.UseCredentials,
				SubscriptionID:   sub.ID,
				ResourceGroups:   sub.ResourceGroups,
				Client:           client,
			},
		)
		slog.Info(
			"configured Azure client",
			"service", "resource_manager",
			"credentials", sub.UseCredentials,
			"subscription_id", sub.ID,
		)
	}

	return nil
}

// getAzureClient returns the registered client for the given subscription. An
// empty subscription id selects the only configured subscription.
func getAzureClient(subscriptionID string) (*azureclients.Client[*azureclients.SingletonTrackedResourcesClient], error) {
	if subscriptionID == "" {
		keys := azureclients.SingletonTrackedResourcesClientset.Keys()
		switch len(keys) {
		case 0:
			return nil, fmt.Errorf("azure: %w", errAzureNoSubscriptions)
		case 1:
			subscriptionID = keys[0]
		default:
			return nil, fmt.Errorf("azure: %w", errAzureAmbiguousSubscription)
		}
	}

	client, ok := azureclients.SingletonTrackedResourcesClientset.Get(subscriptionID)
	if !ok {
		return nil, fmt.Errorf("azure: %w: %s", errAzureUnknownSubscription, subscriptionID)
	}

	return client, nil
}

// newManager returns a [resources.Manager] for the given registered client.
func newManager(client *azureclients.Client[*azureclients.SingletonTrackedResourcesClient]) *resources.Manager {
	return resources.NewManagerFromClient(client.SubscriptionID, client.Client)
}
