package graph

import "time"

// Config holds Graph client configuration loaded from the environment.
type Config struct {
	BaseURL     string        `env:"GRAPH_API_URL" envDefault:"https://graph.facebook.com"`
	APIVersion  string        `env:"GRAPH_API_VERSION" envDefault:""`
	AccessToken string        `env:"GRAPH_ACCESS_TOKEN" envDefault:""`
	Timeout     time.Duration `env:"GRAPH_TIMEOUT" envDefault:"30s"`
	UserAgent   string        `env:"GRAPH_USER_AGENT" envDefault:"graphkit/1.0"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   defaultTimeout,
		UserAgent: defaultUserAgent,
	}
}

// NewFromConfig creates a Client from cfg. Only non-zero values are applied;
// extra options are applied after the config ones.
func NewFromConfig(cfg Config, opts ...Option) *Client {
	configOpts := make([]Option, 0, 4+len(opts))

	if cfg.BaseURL != "" {
		configOpts = append(configOpts, WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIVersion != "" {
		configOpts = append(configOpts, WithAPIVersion(cfg.APIVersion))
	}
	if cfg.Timeout > 0 {
		configOpts = append(configOpts, WithTimeout(cfg.Timeout))
	}
	if cfg.UserAgent != "" {
		configOpts = append(configOpts, WithUserAgent(cfg.UserAgent))
	}

	configOpts = append(configOpts, opts...)

	return New(cfg.AccessToken, configOpts...)
}
