// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gardener/armsingleton/pkg/core/registry"
)

// DefaultCollector is the default [Collector] for metrics.
var DefaultCollector = NewCollector()

// Collector is an implementation of the [prometheus.Collector] interface,
// which reports the latest value of metrics produced by periodic collections.
//
// The upstream [prometheus.GaugeVec] "remembers" any previously emitted label
// values. If a resource group no longer contains a singleton tracked resource,
// or is removed from the configuration, a [prometheus.GaugeVec] would keep
// reporting the last-known value for it.
//
// Metrics are therefore added in groups, e.g. one group per subscription.
// Setting the metrics of a group replaces all metrics previously set for that
// group, so that only the metrics of the most recent collection are exposed.
type Collector struct {
	mu sync.Mutex

	// descriptors provides the [prometheus.Desc] descriptors of the metrics
	// provided by the collector.
	descriptors []*prometheus.Desc

	// reg maps a group to the metrics of its latest collection.
	reg *registry.Registry[string, []prometheus.Metric]
}

var _ prometheus.Collector = &Collector{}

// NewCollector creates a new [Collector]
func NewCollector() *Collector {
	c := &Collector{
		descriptors: make([]*prometheus.Desc, 0),
		reg:         registry.New[string, []prometheus.Metric](),
	}

	return c
}

// AddDesc adds the given [prometheus.Desc] to the [Collector].
func (c *Collector) AddDesc(items ...*prometheus.Desc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.descriptors = append(c.descriptors, items...)
}

// SetGroup replaces the metrics of the given group.
func (c *Collector) SetGroup(group string, items ...prometheus.Metric) {
	c.reg.Overwrite(group, items)
}

// DeleteGroup removes the metrics of the given group.
func (c *Collector) DeleteGroup(group string) {
	c.reg.Unregister(group)
}

// Describe implements the [prometheus.Collector] interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, desc := range c.descriptors {
		ch <- desc
	}
}

// Collect implements the [prometheus.Collector] interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, items := range c.reg.All() {
		for _, metric := range items {
			ch <- metric
		}
	}
}

// Key is a utility function, which derives a group key from the given items.
func Key(item string, rest ...string) string {
	items := []string{item}
	items = append(items, rest...)

	return strings.Join(items, "/")
}
