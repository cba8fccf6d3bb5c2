package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"mycomparer/domain"
	"mycomparer/helpers"
	"mycomparer/service"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envHTTPPort   = "SERVICE_PORT_HTTP"
	envGRPCPort   = "SERVICE_PORT_GRPC"
	envConfigPath = "CONFIG_PATH"
)

// Defaults applied when the YAML omits a timeout.
const (
	defaultDiscoveryTimeout = 5 * time.Second
	defaultWarmupTimeout    = 4 * time.Second
	defaultHTTPTimeout      = 10 * time.Second
)

// Config holds the comparer configuration loaded by LoadConfig from environment variables and the YAML file.
// GRPCPort is 0 when the health server is off. QueryRate is queries per second per client handle, 0 = unlimited.
type Config struct {
	HTTPPort         int
	GRPCPort         int
	Registry         domain.Registry
	Defaults         service.Selection
	DiscoveryTimeout time.Duration
	WarmupTimeout    time.Duration
	HTTPTimeout      time.Duration
	QueryRate        float64
}

// yamlConfig is the root struct for YAML unmarshalling.
type yamlConfig struct {
	Defaults           yamlDefaults   `yaml:"defaults"`
	DiscoveryTimeoutMs int            `yaml:"discovery_timeout_ms"`
	WarmupTimeoutMs    int            `yaml:"warmup_timeout_ms"`
	HTTPTimeoutMs      int            `yaml:"http_timeout_ms"`
	QueryRatePerSec    float64        `yaml:"query_rate_per_sec"`
	Instances          []yamlInstance `yaml:"instances"`
	Slots              []yamlSlot     `yaml:"slots"`
}

// yamlDefaults is the selection the session starts with.
type yamlDefaults struct {
	Region        string `yaml:"region"`
	Collection    string `yaml:"collection"`
	PageSecure    bool   `yaml:"page_secure"`
	DevMode       bool   `yaml:"dev_mode"`
	SortBy        string `yaml:"sort_by"`
	OneResultOnly bool   `yaml:"one_result_only"`
}

// yamlInstance is one backend; enabled defaults to true when omitted.
type yamlInstance struct {
	ID           string           `yaml:"id"`
	Engine       string           `yaml:"engine"`
	Region       string           `yaml:"region"`
	Address      string           `yaml:"address"`
	Port         int              `yaml:"port"`
	Enabled      *bool            `yaml:"enabled"`
	Note         string           `yaml:"note"`
	Credentials  yamlCredentials  `yaml:"credentials"`
	Capabilities yamlCapabilities `yaml:"capabilities"`
}

type yamlCredentials struct {
	AppID  string `yaml:"app_id"`
	APIKey string `yaml:"api_key"`
}

type yamlCapabilities struct {
	Sort   bool `yaml:"sort"`
	Facets bool `yaml:"facets"`
}

// yamlSlot is one comparison column; local_instance designates the instance of a local-only slot.
type yamlSlot struct {
	ID            string `yaml:"id"`
	Engine        string `yaml:"engine"`
	Label         string `yaml:"label"`
	LocalOnly     bool   `yaml:"local_only"`
	LocalInstance string `yaml:"local_instance"`
}

func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig builds the comparer config from environment variables and the YAML at CONFIG_PATH. Reads
// SERVICE_PORT_HTTP (required, 1–65535), SERVICE_PORT_GRPC (optional, 0–65535) and CONFIG_PATH (required,
// converted to absolute). Instances get TransportSecure from their address scheme (no scheme means https).
// The registry is checked with domain.ValidateRegistry; a default region, when set, must be one of the
// registry's regions.
//
// Returns: (*Config, nil) on success; (nil, error) on invalid env, unreadable or malformed YAML, negative
// timeouts or rate, an invalid registry (*domain.RegistryConfigError) or an unknown default region.
//
// Called only from main at startup.
func LoadConfig() (*Config, error) {
	httpPort, err := parsePort(envHTTPPort, true)
	if err != nil {
		return nil, err
	}
	grpcPort, err := parsePort(envGRPCPort, false)
	if err != nil {
		return nil, err
	}
	configPath := strings.TrimSpace(os.Getenv(envConfigPath))
	if configPath == "" {
		return nil, fmt.Errorf("%s is required", envConfigPath)
	}
	if !filepath.IsAbs(configPath) {
		abs, absErr := filepath.Abs(configPath)
		if absErr != nil {
			return nil, absErr
		}
		configPath = abs
	}
	raw, err := loadYAMLConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}

	registry := toRegistry(raw)
	if err := domain.ValidateRegistry(registry); err != nil {
		return nil, err
	}

	discoveryTimeout, err := durationMs("discovery_timeout_ms", raw.DiscoveryTimeoutMs, defaultDiscoveryTimeout)
	if err != nil {
		return nil, err
	}
	warmupTimeout, err := durationMs("warmup_timeout_ms", raw.WarmupTimeoutMs, defaultWarmupTimeout)
	if err != nil {
		return nil, err
	}
	httpTimeout, err := durationMs("http_timeout_ms", raw.HTTPTimeoutMs, defaultHTTPTimeout)
	if err != nil {
		return nil, err
	}
	if raw.QueryRatePerSec < 0 {
		return nil, fmt.Errorf("query_rate_per_sec must not be negative, got %v", raw.QueryRatePerSec)
	}

	defaults := service.Selection{
		Collection:    strings.TrimSpace(raw.Defaults.Collection),
		Region:        strings.TrimSpace(raw.Defaults.Region),
		DevMode:       raw.Defaults.DevMode,
		SortBy:        strings.TrimSpace(raw.Defaults.SortBy),
		OneResultOnly: raw.Defaults.OneResultOnly,
		PageSecure:    raw.Defaults.PageSecure,
	}
	regions := registry.Regions()
	switch {
	case defaults.Region == "" && len(regions) > 0:
		defaults.Region = regions[0]
	case defaults.Region != "" && !slices.Contains(regions, defaults.Region):
		return nil, fmt.Errorf("defaults.region %q has no enabled instance", defaults.Region)
	}

	return &Config{
		HTTPPort:         httpPort,
		GRPCPort:         grpcPort,
		Registry:         registry,
		Defaults:         defaults,
		DiscoveryTimeout: discoveryTimeout,
		WarmupTimeout:    warmupTimeout,
		HTTPTimeout:      httpTimeout,
		QueryRate:        raw.QueryRatePerSec,
	}, nil
}

// parsePort reads a port from env. An unset optional port is 0.
func parsePort(env string, required bool) (int, error) {
	raw := strings.TrimSpace(os.Getenv(env))
	if raw == "" {
		if required {
			return 0, fmt.Errorf("%s must be a valid port (1-65535)", env)
		}
		return 0, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid port (1-65535), got %q", env, raw)
	}
	lowest := 0
	if required {
		lowest = 1
	}
	if port < lowest || port > 65535 {
		return 0, fmt.Errorf("%s must be %d-65535, got %d", env, lowest, port)
	}
	return port, nil
}

func durationMs(name string, ms int, fallback time.Duration) (time.Duration, error) {
	switch {
	case ms < 0:
		return 0, fmt.Errorf("%s must not be negative, got %d", name, ms)
	case ms == 0:
		return fallback, nil
	default:
		return time.Duration(ms) * time.Millisecond, nil
	}
}

// toRegistry normalizes the YAML instances and slots into a domain.Registry, keeping their order.
func toRegistry(raw *yamlConfig) domain.Registry {
	instances := make([]domain.BackendInstance, 0, len(raw.Instances))
	for _, in := range raw.Instances {
		address := strings.TrimRight(strings.TrimSpace(in.Address), "/")
		enabled := in.Enabled == nil || *in.Enabled
		instances = append(instances, domain.BackendInstance{
			ID:              strings.TrimSpace(in.ID),
			Engine:          domain.EngineKind(strings.ToLower(strings.TrimSpace(in.Engine))),
			Region:          strings.TrimSpace(in.Region),
			Address:         address,
			Port:            in.Port,
			TransportSecure: !helpers.IsInsecureAddress(address),
			Credentials:     domain.Credentials{AppID: strings.TrimSpace(in.Credentials.AppID), APIKey: strings.TrimSpace(in.Credentials.APIKey)},
			Enabled:         enabled,
			Capabilities:    domain.Capabilities{Sort: in.Capabilities.Sort, Facets: in.Capabilities.Facets},
			Note:            strings.TrimSpace(in.Note),
		})
	}
	slots := make([]domain.ServiceSlot, 0, len(raw.Slots))
	for _, s := range raw.Slots {
		label := strings.TrimSpace(s.Label)
		if label == "" {
			label = strings.TrimSpace(s.ID)
		}
		slots = append(slots, domain.ServiceSlot{
			SlotID:          strings.TrimSpace(s.ID),
			Engine:          domain.EngineKind(strings.ToLower(strings.TrimSpace(s.Engine))),
			Label:           label,
			LocalOnly:       s.LocalOnly,
			LocalInstanceID: strings.TrimSpace(s.LocalInstance),
		})
	}
	return domain.Registry{Instances: instances, Slots: slots}
}
