package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// PageSize is the number of titles returned per listing page.
	PageSize int `mapstructure:"page_size" default:"3"`
	// BodyLimitMB caps request bodies (bulk creates included).
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"4"`
}

// DefaultPageSize is used when PageSize is not positive.
const DefaultPageSize = 3

// EffectivePageSize returns the configured page size, falling back to the default.
func (c Config) EffectivePageSize() int {
	if c.PageSize <= 0 {
		return DefaultPageSize
	}
	return c.PageSize
}

// BodyLimit returns the body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 4 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}
