package settings

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joshyorko/previewctl/common"
	"github.com/joshyorko/previewctl/xviper"
)

const (
	EndpointKey    = `rpc.endpoint`
	TimeoutKey     = `rpc.timeout`
	HostProcessKey = `host.process`
	KeepGoingKey   = `apply.keep_going`

	DefaultEndpoint    = `http://127.0.0.1:51121/rpc`
	DefaultTimeout     = 5 * time.Second
	DefaultHostProcess = `terragen`
)

var (
	knownKeys = []string{EndpointKey, TimeoutKey, HostProcessKey, KeepGoingKey}
)

func init() {
	xviper.SetDefault(EndpointKey, DefaultEndpoint)
	xviper.SetDefault(TimeoutKey, DefaultTimeout.String())
	xviper.SetDefault(HostProcessKey, DefaultHostProcess)
	xviper.SetDefault(KeepGoingKey, false)
}

// Summon loads settings from the product home. Flags override them later.
func Summon() error {
	location := common.Strategy.SettingsFile()
	xviper.SetConfigFile(location)
	common.Debug("Using settings from %q.", location)
	_, err := ParseEndpoint(Endpoint())
	return err
}

func KnownKeys() []string {
	result := make([]string, len(knownKeys))
	copy(result, knownKeys)
	return result
}

func IsKnown(key string) bool {
	for _, known := range knownKeys {
		if known == key {
			return true
		}
	}
	return false
}

func Endpoint() string {
	return strings.TrimSpace(xviper.GetString(EndpointKey))
}

func Timeout() time.Duration {
	timeout := xviper.GetDuration(TimeoutKey)
	if timeout <= 0 {
		return DefaultTimeout
	}
	return timeout
}

func HostProcess() string {
	return xviper.GetString(HostProcessKey)
}

func KeepGoing() bool {
	return xviper.GetBool(KeepGoingKey)
}

// ParseEndpoint accepts http(s) and ws(s) endpoints only.
func ParseEndpoint(endpoint string) (*url.URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return nil, fmt.Errorf("Endpoint %q is not a valid URL: %w", endpoint, err)
	}
	switch parsed.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, fmt.Errorf("Endpoint %q must use http, https, ws or wss scheme.", endpoint)
	}
	if len(parsed.Host) == 0 {
		return nil, fmt.Errorf("Endpoint %q has no host.", endpoint)
	}
	return parsed, nil
}

// Summary returns effective settings keyed by their dotted name.
func Summary() map[string]interface{} {
	return map[string]interface{}{
		EndpointKey:    Endpoint(),
		TimeoutKey:     Timeout().String(),
		HostProcessKey: HostProcess(),
		KeepGoingKey:   KeepGoing(),
	}
}

func Set(key, value string) error {
	if !IsKnown(key) {
		return fmt.Errorf("Unknown setting %q, known settings are: %s", key, strings.Join(knownKeys, ", "))
	}
	switch key {
	case EndpointKey:
		if _, err := ParseEndpoint(value); err != nil {
			return err
		}
	case TimeoutKey:
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("Timeout %q is not a duration: %w", value, err)
		}
	}
	return xviper.Set(key, value)
}
