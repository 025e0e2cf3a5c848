package requiem

import (
	"fmt"
	"net/http"
	"strings"
)

const defaultMaxRedirects = 10

// Config configures a REST client.
type Config struct {
	// BaseURL is the base URL that request paths are resolved against.
	// Takes precedence over Scheme/Host/Port when set.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Scheme is "http" or "https". Defaults to "http".
	Scheme string `yaml:"scheme" mapstructure:"scheme"`

	// Host is the server host name or address.
	Host string `yaml:"host" mapstructure:"host"`

	// Port is the server port. Zero means the scheme default.
	Port int `yaml:"port" mapstructure:"port"`

	// Headers are default headers applied to every request.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// DynamicHeaders are evaluated when each request is constructed.
	// Headers whose function returns an empty string are omitted.
	DynamicHeaders map[string]func() string `yaml:"-" mapstructure:"-"`

	// MaxRedirects bounds the number of redirect hops Send will follow.
	// Defaults to 10. Negative disables redirect following entirely,
	// in which case 3xx responses are returned as-is.
	MaxRedirects int `yaml:"max_redirects" mapstructure:"max_redirects"`

	// RequestID stamps an X-Request-Id header on every request that
	// does not already carry one.
	RequestID bool `yaml:"request_id" mapstructure:"request_id"`

	// Debug enables debug-level logging of request construction and
	// send lifecycle.
	Debug bool `yaml:"debug" mapstructure:"debug"`

	// Tracing records a client span around each send.
	Tracing bool `yaml:"tracing" mapstructure:"tracing"`

	// Transport overrides the HTTP transport. Connection pooling, TLS,
	// and timeouts belong to the transport, not to this package.
	Transport http.RoundTripper `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Scheme == "" {
		c.Scheme = "http"
	}
	if c.MaxRedirects == 0 {
		c.MaxRedirects = defaultMaxRedirects
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.BaseURL == "" && c.Host == "" {
		return fmt.Errorf("requiem: either base_url or host must be set")
	}
	if c.BaseURL != "" && !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("requiem: base_url must start with http:// or https://")
	}
	if c.Scheme != "" && c.Scheme != "http" && c.Scheme != "https" {
		return fmt.Errorf("requiem: scheme must be http or https (got: %s)", c.Scheme)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("requiem: port must be in [0, 65535] (got: %d)", c.Port)
	}
	return nil
}

// baseURL resolves the configured connection parameters into a base URL
// without a trailing slash.
func (c *Config) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	if c.Port > 0 {
		return fmt.Sprintf("%s://%s:%d", c.Scheme, c.Host, c.Port)
	}
	return fmt.Sprintf("%s://%s", c.Scheme, c.Host)
}
