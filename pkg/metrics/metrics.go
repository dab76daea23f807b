// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace is the namespace component of the fully qualified metric name
const Namespace = "armsingleton"

// DefaultRegistry is the default [prometheus.Registry] for metrics.
var DefaultRegistry = prometheus.NewPedanticRegistry()

var (
	// APIRequestsTotal is a metric, which gets incremented each time a
	// request to the Azure Resource Manager API completes. Requests which
	// failed without a response are reported with status code "none".
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "api_requests_total",
			Help:      "Total number of requests sent to the Azure Resource Manager API",
		},
		[]string{"method", "status_code"},
	)

	// APIRequestDuration is a metric, which tracks the duration of
	// requests to the Azure Resource Manager API.
	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Duration of requests sent to the Azure Resource Manager API",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// SingletonTrackedResourceDesc is the descriptor for a metric, which reports
// the singleton tracked resources found during the latest collection.
var SingletonTrackedResourceDesc = prometheus.NewDesc(
	prometheus.BuildFQName(Namespace, "", "singleton_tracked_resource_info"),
	"A gauge which is set to 1 for each collected singleton tracked resource",
	[]string{"subscription_id", "resource_group", "location", "provisioning_state"},
	nil,
)

// requestPolicy is a [policy.Policy], which records [APIRequestsTotal] and
// [APIRequestDuration].
type requestPolicy struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRequestPolicy returns a [policy.Policy], which records metrics for each
// request sent through an Azure SDK pipeline. Add the policy as a per-retry
// policy in order to record each attempt.
func NewRequestPolicy() policy.Policy {
	p := &requestPolicy{
		total:    APIRequestsTotal,
		duration: APIRequestDuration,
	}

	return p
}

// Do implements the [policy.Policy] interface.
func (p *requestPolicy) Do(req *policy.Request) (*http.Response, error) {
	method := req.Raw().Method
	start := time.Now()
	resp, err := req.Next()
	p.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	statusCode := "none"
	if resp != nil {
		statusCode = strconv.Itoa(resp.StatusCode)
	}
	p.total.WithLabelValues(method, statusCode).Inc()

	return resp, err
}

// NewServer returns a new [http.Server] which can serve the metrics from
// [DefaultRegistry] on the specified network address and HTTP path. Callers
// are responsible for starting up and shutting down the HTTP server.
func NewServer(addr, path string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(
		path,
		promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{}),
	)

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: time.Second * 30,
		Handler:           mux,
	}

	return server
}

// init registers collectors with the [DefaultRegistry].
func init() {
	DefaultCollector.AddDesc(SingletonTrackedResourceDesc)

	DefaultRegistry.MustRegister(
		APIRequestsTotal,
		APIRequestDuration,
		DefaultCollector,

		// Standard Go metrics
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}
