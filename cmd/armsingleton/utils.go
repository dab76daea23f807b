// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/gardener/armsingleton/pkg/azure/models"
	"github.com/gardener/armsingleton/pkg/azure/resources"
	"github.com/gardener/armsingleton/pkg/core/config"
)

// na is the placeholder for values which are not available.
const na = "N/A"

// errNoServiceCredentials is an error, which is returned when a subscription
// does not specify which named credentials to use.
var errNoServiceCredentials = errors.New("no credentials specified for subscription")

// errUnknownNamedCredentials is an error, which is returned when a
// subscription refers to named credentials, which are not defined.
var errUnknownNamedCredentials = errors.New("unknown named credentials")

// errNoAuthenticationMethod is an error, which is returned when named
// credentials do not specify an authentication method.
var errNoAuthenticationMethod = errors.New("no authentication method specified")

// errUnknownAuthenticationMethod is an error, which is returned when named
// credentials use an unsupported authentication method.
var errUnknownAuthenticationMethod = errors.New("unknown authentication method specified")

// errUnknownOutputFormat is an error, which is returned when an unsupported
// output format is requested.
var errUnknownOutputFormat = errors.New("unknown output format")

// configKey is the key used to store the parsed configuration in the context.
type configKey struct{}

// getConfig extracts and returns the [config.Config] from app context.
func getConfig(ctx *cli.Context) *config.Config {
	conf, ok := ctx.Context.Value(configKey{}).(*config.Config)
	if !ok {
		panic("cannot get config from context")
	}

	return conf
}

// Supported output formats
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// newOutputFlag returns a flag, which specifies the output format of a
// command.
func newOutputFlag() cli.Flag {
	flag := &cli.StringFlag{
		Name:    "output",
		Usage:   "output format, one of: table, json, yaml",
		Aliases: []string{"o"},
		Value:   outputTable,
	}

	return flag
}

// newTableWriter creates a new [tablewriter.Table] with the given headers.
func newTableWriter(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	items := make([]any, 0, len(headers))
	for _, h := range headers {
		items = append(items, h)
	}
	table.Header(items...)

	return table
}

// tabulateResources adds the given resources to a table and returns it. The
// returned table can be further customized, if needed, and rendered.
func tabulateResources(w io.Writer, items []*resources.SingletonTrackedResource) *tablewriter.Table {
	headers := []string{
		"NAME",
		"RESOURCE-GROUP",
		"LOCATION",
		"STATE",
		"TAGS",
	}
	table := newTableWriter(w, headers)

	for _, item := range items {
		row := []string{
			valueOrNA(item.Name()),
			valueOrNA(item.ResourceGroupName()),
			valueOrNA(item.Location()),
			valueOrNA(string(item.ProvisioningState())),
			valueOrNA(formatTags(item.Tags())),
		}
		_ = table.Append(row)
	}

	return table
}

// printResources prints the given resources in the specified format.
func printResources(w io.Writer, format string, items []*resources.SingletonTrackedResource) error {
	switch format {
	case outputTable:
		return tabulateResources(w, items).Render()
	case outputJSON, outputYAML:
		inner := make([]any, 0, len(items))
		for _, item := range items {
			inner = append(inner, item.InnerModel())
		}

		return encode(w, format, inner)
	default:
		return fmt.Errorf("%w: %s", errUnknownOutputFormat, format)
	}
}

// printResource prints a single resource in the specified format.
func printResource(w io.Writer, format string, item *resources.SingletonTrackedResource) error {
	if item == nil {
		_, err := fmt.Fprintln(w, "no resource returned")
		return err
	}

	if format == outputTable {
		return printResources(w, format, []*resources.SingletonTrackedResource{item})
	}

	return encode(w, format, item.InnerModel())
}

// printResponse prints the status code and request id of the given response,
// followed by its resource.
func printResponse(w io.Writer, format string, resp *models.Response[resources.SingletonTrackedResource]) error {
	if resp == nil {
		_, err := fmt.Fprintln(w, "no response returned")
		return err
	}

	requestID := valueOrNA(resp.Header.Get("x-ms-request-id"))
	if _, err := fmt.Fprintf(w, "status: %d\nrequest-id: %s\n", resp.StatusCode, requestID); err != nil {
		return err
	}

	return printResource(w, format, resp.Value)
}

// encode writes the JSON or YAML representation of v.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("%w: %s", errUnknownOutputFormat, format)
	}
}

// formatTags returns the tags in key=value form, sorted by key.
func formatTags(tags map[string]string) string {
	items := make([]string, 0, len(tags))
	for k, v := range tags {
		items = append(items, k+"="+v)
	}
	slices.Sort(items)

	return strings.Join(items, ",")
}

func valueOrNA(s string) string {
	if s == "" {
		return na
	}

	return s
}
