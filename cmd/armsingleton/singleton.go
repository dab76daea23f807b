// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/gardener/armsingleton/pkg/azure/constants"
	"github.com/gardener/armsingleton/pkg/azure/models"
	"github.com/gardener/armsingleton/pkg/azure/resources"
	azureutils "github.com/gardener/armsingleton/pkg/azure/utils"
	azureclients "github.com/gardener/armsingleton/pkg/clients/azure"
	"github.com/gardener/armsingleton/pkg/utils/ptr"
)

// errNoResourceGroups is an error, which is returned when listing resources
// without any resource group specified or configured.
var errNoResourceGroups = errors.New("no resource groups specified")

// NewSingletonCommand returns a new command for interfacing with singleton
// tracked resources.
func NewSingletonCommand() *cli.Command {
	resourceGroupFlag := &cli.StringFlag{
		Name:     "resource-group",
		Usage:    "name of the resource group",
		Aliases:  []string{"g"},
		Required: true,
	}

	cmd := &cli.Command{
		Name:    "singleton",
		Usage:   "singleton tracked resource operations",
		Aliases: []string{"s"},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "subscription",
				Usage:   "subscription to operate on",
				Aliases: []string{"sub"},
				EnvVars: []string{"AZURE_SUBSCRIPTION_ID"},
			},
		},
		Before: func(ctx *cli.Context) error {
			conf := getConfig(ctx)
			if err := validateAzureConfig(conf); err != nil {
				return err
			}

			return configureAzureClients(conf)
		},
		Subcommands: []*cli.Command{
			{
				Name:    "get",
				Usage:   "get the singleton tracked resource of a resource group",
				Aliases: []string{"g"},
				Flags: []cli.Flag{
					resourceGroupFlag,
					newOutputFlag(),
					&cli.BoolFlag{
						Name:  "with-response",
						Usage: "print the response metadata, if set",
					},
				},
				Action: func(ctx *cli.Context) error {
					manager, err := newManagerFromFlags(ctx)
					if err != nil {
						return err
					}

					reqCtx := withCorrelationID(ctx.Context)
					singletons := manager.SingletonTrackedResources()
					rg := ctx.String("resource-group")
					if !ctx.Bool("with-response") {
						item, err := singletons.GetByResourceGroup(reqCtx, rg, nil)
						if err != nil {
							return err
						}

						return printResource(os.Stdout, ctx.String("output"), item)
					}

					resp, err := singletons.GetByResourceGroupWithResponse(reqCtx, rg, nil)
					if err != nil {
						return err
					}
					return printResponse(os.Stdout, ctx.String("output"), resp)
				},
			},
			{
				Name:    "create-or-update",
				Usage:   "create or replace the singleton tracked resource of a resource group",
				Aliases: []string{"apply"},
				Flags: []cli.Flag{
					resourceGroupFlag,
					newOutputFlag(),
					&cli.StringFlag{
						Name:  "location",
						Usage: "location of the resource",
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "description of the resource",
					},
					&cli.StringSliceFlag{
						Name:  "tag",
						Usage: "tag in key=value form, may be repeated",
					},
					&cli.BoolFlag{
						Name:  "no-wait",
						Usage: "print a resume token instead of waiting for the operation, if set",
					},
					&cli.StringFlag{
						Name:  "resume-token",
						Usage: "resume waiting for a previously started operation",
					},
				},
				Action: func(ctx *cli.Context) error {
					conf := getConfig(ctx)
					client, err := getAzureClient(ctx.String("subscription"))
					if err != nil {
						return err
					}

					manager := newManager(client)
					reqCtx := withCorrelationID(ctx.Context)
					rg := ctx.String("resource-group")
					output := ctx.String("output")

					if token := ctx.String("resume-token"); token != "" {
						item, err := resumeCreateOrUpdate(reqCtx, client.Client, token, conf.Azure.PollFrequency)
						if err != nil {
							return err
						}

						return printResource(os.Stdout, output, manager.SingletonTrackedResources().FromInnerModel(item))
					}

					if !ctx.IsSet("location") {
						return errors.New("flag --location is required")
					}
					resource, err := newResourceFromFlags(ctx)
					if err != nil {
						return err
					}
					resource.Location = ptr.To(ctx.String("location"))

					if ctx.Bool("no-wait") {
						token, item, err := startCreateOrUpdate(reqCtx, client.Client, rg, resource)
						if err != nil {
							return err
						}
						if token == "" {
							return printResource(os.Stdout, output, manager.SingletonTrackedResources().FromInnerModel(item))
						}
						_, err = fmt.Fprintln(os.Stdout, token)

						return err
					}

					opts := &azureclients.SingletonTrackedResourcesCreateOrUpdateOptions{
						PollFrequency: conf.Azure.PollFrequency,
					}
					item, err := manager.SingletonTrackedResources().CreateOrUpdate(reqCtx, rg, resource, opts)
					if err != nil {
						return err
					}

					return printResource(os.Stdout, output, item)
				},
			},
			{
				Name:    "update",
				Usage:   "update the singleton tracked resource of a resource group",
				Aliases: []string{"u"},
				Flags: []cli.Flag{
					resourceGroupFlag,
					newOutputFlag(),
					&cli.StringFlag{
						Name:  "description",
						Usage: "description of the resource",
					},
					&cli.StringSliceFlag{
						Name:  "tag",
						Usage: "tag in key=value form, may be repeated",
					},
					&cli.BoolFlag{
						Name:  "with-response",
						Usage: "print the response metadata, if set",
					},
				},
				Action: func(ctx *cli.Context) error {
					manager, err := newManagerFromFlags(ctx)
					if err != nil {
						return err
					}

					properties, err := newResourceFromFlags(ctx)
					if err != nil {
						return err
					}

					reqCtx := withCorrelationID(ctx.Context)
					singletons := manager.SingletonTrackedResources()
					rg := ctx.String("resource-group")
					if !ctx.Bool("with-response") {
						item, err := singletons.Update(reqCtx, rg, properties, nil)
						if err != nil {
							return err
						}

						return printResource(os.Stdout, ctx.String("output"), item)
					}

					resp, err := singletons.UpdateWithResponse(reqCtx, rg, properties, nil)
					if err != nil {
						return err
					}
					return printResponse(os.Stdout, ctx.String("output"), resp)
				},
			},
			{
				Name:    "list",
				Usage:   "list the singleton tracked resources of resource groups",
				Aliases: []string{"ls"},
				Flags: []cli.Flag{
					newOutputFlag(),
					&cli.StringSliceFlag{
						Name:    "resource-group",
						Usage:   "name of a resource group, defaults to the configured resource groups",
						Aliases: []string{"g"},
					},
				},
				Action: func(ctx *cli.Context) error {
					client, err := getAzureClient(ctx.String("subscription"))
					if err != nil {
						return err
					}

					groups := ctx.StringSlice("resource-group")
					if len(groups) == 0 {
						groups = client.ResourceGroups
					}
					if len(groups) == 0 {
						return errNoResourceGroups
					}

					manager := newManager(client)
					reqCtx := withCorrelationID(ctx.Context)
					items, err := collectResources(reqCtx, manager, groups)
					if err != nil {
						return err
					}

					return printResources(os.Stdout, ctx.String("output"), items)
				},
			},
		},
	}

	return cmd
}

// newManagerFromFlags returns a [resources.Manager] for the subscription
// selected by the flags.
func newManagerFromFlags(ctx *cli.Context) (*resources.Manager, error) {
	client, err := getAzureClient(ctx.String("subscription"))
	if err != nil {
		return nil, err
	}

	return newManager(client), nil
}

// newResourceFromFlags returns a resource, which carries the description and
// tags specified by the flags.
func newResourceFromFlags(ctx *cli.Context) (*models.SingletonTrackedResourceInner, error) {
	resource := &models.SingletonTrackedResourceInner{}

	if ctx.IsSet("tag") {
		tags, err := azureutils.ParseTags(ctx.StringSlice("tag"))
		if err != nil {
			return nil, err
		}
		resource.Tags = tags
	}

	if ctx.IsSet("description") {
		resource.Properties = &models.SingletonTrackedResourceProperties{
			Description: ptr.To(ctx.String("description")),
		}
	}

	return resource, nil
}

// withCorrelationID returns a context, which makes each request carry a newly
// generated correlation id.
func withCorrelationID(ctx context.Context) context.Context {
	id := uuid.New().String()
	slog.Debug("using correlation id", "correlation_id", id)
	header := http.Header{}
	header.Set(constants.CorrelationRequestIDHeader, id)

	return policy.WithHTTPHeader(ctx, header)
}

// startCreateOrUpdate starts the create-or-update operation and returns the
// token for resuming it. An operation which completed right away yields its
// result and an empty token instead.
func startCreateOrUpdate(ctx context.Context, client *azureclients.SingletonTrackedResourcesClient, rg string, resource *models.SingletonTrackedResourceInner) (string, *models.SingletonTrackedResourceInner, error) {
	poller, err := client.BeginCreateOrUpdate(ctx, rg, resource, nil)
	if err != nil {
		return "", nil, err
	}

	if poller.Done() {
		result, err := poller.Result(ctx)
		if err != nil {
			return "", nil, err
		}

		return "", result.SingletonTrackedResourceInner, nil
	}

	token, err := poller.ResumeToken()
	if err != nil {
		return "", nil, err
	}

	return token, nil, nil
}

// resumeCreateOrUpdate resumes waiting for a create-or-update operation.
func resumeCreateOrUpdate(ctx context.Context, client *azureclients.SingletonTrackedResourcesClient, token string, frequency time.Duration) (*models.SingletonTrackedResourceInner, error) {
	opts := &azureclients.SingletonTrackedResourcesBeginCreateOrUpdateOptions{ResumeToken: token}
	poller, err := client.BeginCreateOrUpdate(ctx, "", nil, opts)
	if err != nil {
		return nil, err
	}

	result, err := poller.PollUntilDone(ctx, &runtime.PollUntilDoneOptions{Frequency: frequency})
	if err != nil {
		return nil, err
	}

	return result.SingletonTrackedResourceInner, nil
}

// collectResources returns the singleton tracked resources of the given
// resource groups. Resource groups without a resource are skipped.
func collectResources(ctx context.Context, manager *resources.Manager, groups []string) ([]*resources.SingletonTrackedResource, error) {
	result := make([]*resources.SingletonTrackedResource, 0)
	for _, rg := range slices.Compact(slices.Sorted(slices.Values(groups))) {
		for item, err := range manager.SingletonTrackedResources().ListByResourceGroup(ctx, rg, nil) {
			if err != nil {
				return nil, fmt.Errorf("unable to list resource group %s: %w", rg, err)
			}
			if item != nil {
				result = append(result, item)
			}
		}
	}

	return result, nil
}
