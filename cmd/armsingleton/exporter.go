// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/gardener/armsingleton/pkg/azure/resources"
	azureclients "github.com/gardener/armsingleton/pkg/clients/azure"
	"github.com/gardener/armsingleton/pkg/metrics"
)

// NewExporterCommand returns a new command for interfacing with the metrics
// exporter.
func NewExporterCommand() *cli.Command {
	cmd := &cli.Command{
		Name:    "exporter",
		Usage:   "metrics exporter operations",
		Aliases: []string{"e"},
		Before: func(ctx *cli.Context) error {
			conf := getConfig(ctx)
			if err := validateAzureConfig(conf); err != nil {
				return err
			}

			return configureAzureClients(conf)
		},
		Subcommands: []*cli.Command{
			{
				Name:    "start",
				Usage:   "start the metrics exporter",
				Aliases: []string{"s"},
				Action: func(ctx *cli.Context) error {
					conf := getConfig(ctx)
					runCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
					defer stop()

					srv := metrics.NewServer(conf.Metrics.Address, conf.Metrics.Path)
					go func() {
						slog.Info("starting metrics server", "address", conf.Metrics.Address, "path", conf.Metrics.Path)
						if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
							slog.Error("metrics server failed", "reason", err)
							stop()
						}
					}()

					runExporter(runCtx, conf.Exporter.Interval)

					slog.Info("shutting down metrics server")
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
					defer cancel()

					return srv.Shutdown(shutdownCtx)
				},
			},
		},
	}

	return cmd
}

// runExporter collects metrics for each registered client at the given
// interval, until the context is done.
func runExporter(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		exportMetrics(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// exportMetrics replaces the metrics of each registered subscription with the
// result of a fresh collection. Subscriptions which fail to collect keep their
// previous metrics.
func exportMetrics(ctx context.Context) {
	for subscriptionID, client := range azureclients.SingletonTrackedResourcesClientset.All() {
		logger := slog.With("subscription_id", subscriptionID)
		items, err := collectMetrics(withCorrelationID(ctx), newManager(client), client.ResourceGroups)
		if err != nil {
			logger.Error("failed to collect metrics", "reason", err)
			continue
		}

		metrics.DefaultCollector.SetGroup(metrics.Key(subscriptionID), items...)
		logger.Info("collected metrics", "count", len(items))
	}
}

// collectMetrics returns a metric for each singleton tracked resource found
// in the given resource groups.
func collectMetrics(ctx context.Context, manager *resources.Manager, groups []string) ([]prometheus.Metric, error) {
	result := make([]prometheus.Metric, 0, len(groups))
	seen := make(map[string]struct{})
	for _, rg := range groups {
		items, err := collectResources(ctx, manager, []string{rg})
		if err != nil {
			return nil, err
		}

		for _, item := range items {
			labels := []string{
				manager.SubscriptionID(),
				rg,
				item.Location(),
				string(item.ProvisioningState()),
			}

			key := metrics.Key(labels[0], labels[1:]...)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			metric := prometheus.MustNewConstMetric(
				metrics.SingletonTrackedResourceDesc,
				prometheus.GaugeValue,
				1.0,
				labels...,
			)
			result = append(result, metric)
		}
	}

	return result, nil
}
