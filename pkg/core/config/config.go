// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNoConfigVersion error is returned when the configuration does not specify
// config format version.
var ErrNoConfigVersion = errors.New("config format version not specified")

// ErrUnsupportedVersion is an error, which is returned when the config file
// uses an incompatible version format.
var ErrUnsupportedVersion = errors.New("unsupported config format version")

// ErrInvalidDuration is an error, which is returned when a configured interval
// or frequency is not positive.
var ErrInvalidDuration = errors.New("duration must be positive")

// ConfigFormatVersion represents the supported config format version.
const ConfigFormatVersion = "v1alpha1"

const (
	// AzureAuthenticationMethodDefault specifies that the default
	// credentials chain will be used when authenticating against the
	// Azure APIs.
	AzureAuthenticationMethodDefault = "default"

	// AzureAuthenticationMethodWorkloadIdentity specifies that Workload
	// Identity Federation will be used when authenticating against the
	// Azure APIs.
	AzureAuthenticationMethodWorkloadIdentity = "workload_identity"
)

// Default settings, which are applied by [Parse] when unset.
const (
	DefaultMetricsAddress   = ":6080"
	DefaultMetricsPath      = "/metrics"
	DefaultExporterInterval = 5 * time.Minute
	DefaultPollFrequency    = 10 * time.Second
)

// Config represents the module configuration.
type Config struct {
	// Version is the version of the config file.
	Version string `yaml:"version"`

	// Debug configures debug mode, if set to true.
	Debug bool `yaml:"debug"`

	// Logging provides the logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Azure provides the Azure specific configuration.
	Azure AzureConfig `yaml:"azure"`

	// Metrics provides the metrics server configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Exporter provides the configuration for the exporter command.
	Exporter ExporterConfig `yaml:"exporter"`
}

// LoggingConfig provides the logging specific configuration.
type LoggingConfig struct {
	// Level specifies the log level. One of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format specifies the log format. One of text or json.
	Format string `yaml:"format"`

	// AddSource adds source code position to log events, if set.
	AddSource bool `yaml:"add_source"`

	// Attributes are added to each log event.
	Attributes map[string]string `yaml:"attributes"`
}

// AzureConfig provides Azure specific configuration settings.
type AzureConfig struct {
	// Credentials maps named credentials to their settings.
	Credentials map[string]AzureCredentialsConfig `yaml:"credentials"`

	// Subscriptions specifies the subscriptions to operate on.
	Subscriptions []AzureSubscriptionConfig `yaml:"subscriptions"`

	// Endpoint overrides the Azure Resource Manager endpoint of the
	// public cloud, e.g. for sovereign clouds.
	Endpoint string `yaml:"endpoint"`

	// APIVersion overrides the default api-version.
	APIVersion string `yaml:"api_version"`

	// PollFrequency is the frequency at which long-running operations
	// are polled.
	PollFrequency time.Duration `yaml:"poll_frequency"`
}

// AzureCredentialsConfig provides the settings of named Azure credentials.
type AzureCredentialsConfig struct {
	// Authentication is the authentication method. One of
	// [AzureAuthenticationMethodDefault] or
	// [AzureAuthenticationMethodWorkloadIdentity].
	Authentication string `yaml:"authentication"`

	// WorkloadIdentity provides the Workload Identity Federation settings.
	WorkloadIdentity AzureWorkloadIdentityConfig `yaml:"workload_identity"`
}

// AzureWorkloadIdentityConfig provides the settings for Azure Workload Identity
// Federation.
type AzureWorkloadIdentityConfig struct {
	// ClientID is the client id of the application.
	ClientID string `yaml:"client_id"`

	// TenantID is the tenant id of the application.
	TenantID string `yaml:"tenant_id"`

	// TokenFile is the path to the file containing the token.
	TokenFile string `yaml:"token_file"`
}

// AzureSubscriptionConfig specifies a subscription and the named credentials
// used to access it.
type AzureSubscriptionConfig struct {
	// ID is the subscription id.
	ID string `yaml:"id"`

	// UseCredentials is the name of the credentials to use.
	UseCredentials string `yaml:"use_credentials"`

	// ResourceGroups specifies the resource groups, from which the
	// exporter collects singleton tracked resources.
	ResourceGroups []string `yaml:"resource_groups"`
}

// MetricsConfig provides the metrics server configuration.
type MetricsConfig struct {
	// Address is the network address the metrics server binds to.
	Address string `yaml:"address"`

	// Path is the HTTP path at which metrics are served.
	Path string `yaml:"path"`
}

// ExporterConfig provides the configuration of the exporter.
type ExporterConfig struct {
	// Interval is the time between two collections.
	Interval time.Duration `yaml:"interval"`
}

// Parse parses the config from the given path.
func Parse(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseBytes(data)
}

// ParseBytes parses the config from the given YAML document and applies the
// defaults for unset settings.
func ParseBytes(data []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, err
	}

	if conf.Version == "" {
		return nil, ErrNoConfigVersion
	}

	if conf.Version != ConfigFormatVersion {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, conf.Version)
	}

	if conf.Metrics.Address == "" {
		conf.Metrics.Address = DefaultMetricsAddress
	}
	if conf.Metrics.Path == "" {
		conf.Metrics.Path = DefaultMetricsPath
	}
	if conf.Exporter.Interval == 0 {
		conf.Exporter.Interval = DefaultExporterInterval
	}
	if conf.Exporter.Interval < 0 {
		return nil, fmt.Errorf("%w: exporter.interval is %s", ErrInvalidDuration, conf.Exporter.Interval)
	}
	if conf.Azure.PollFrequency == 0 {
		conf.Azure.PollFrequency = DefaultPollFrequency
	}
	if conf.Azure.PollFrequency < 0 {
		return nil, fmt.Errorf("%w: azure.poll_frequency is %s", ErrInvalidDuration, conf.Azure.PollFrequency)
	}

	return &conf, nil
}

// MustParse parses the config from the given path, or panics in case of errors.
func MustParse(path string) *Config {
	config, err := Parse(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Subscription returns the configuration of the subscription with the given
// id, and a boolean indicating whether it is configured.
func (c *Config) Subscription(id string) (AzureSubscriptionConfig, bool) {
	for _, sub := range c.Azure.Subscriptions {
		if sub.ID == id {
			return sub, true
		}
	}

	return AzureSubscriptionConfig{}, false
}
