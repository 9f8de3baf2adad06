package sessioncookie

// Config holds the application credentials used to verify session cookies.
type Config struct {
	AppID        string `env:"GRAPH_APP_ID,required,notEmpty"`
	AppSecret    string `env:"GRAPH_APP_SECRET,required,notEmpty"`
	CookiePrefix string `env:"GRAPH_COOKIE_PREFIX" envDefault:"fbs_"`
}

// NewFromConfig creates an Extractor from cfg. Extra options are applied
// after the config ones.
func NewFromConfig(cfg Config, opts ...Option) (*Extractor, error) {
	configOpts := make([]Option, 0, 1+len(opts))
	if cfg.CookiePrefix != "" {
		configOpts = append(configOpts, WithCookiePrefix(cfg.CookiePrefix))
	}
	configOpts = append(configOpts, opts...)
	return New(cfg.AppID, cfg.AppSecret, configOpts...)
}
