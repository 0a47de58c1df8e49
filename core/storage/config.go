package storage

// Config holds configuration for the object storage used by exports.
type Config struct {
	// Enabled turns the export feature on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint is the host (optionally with scheme) of the S3 compatible service.
	Endpoint  string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL    bool   `mapstructure:"use_ssl" default:"false"`
	// Bucket receives the catalog exports. It is created when missing.
	Bucket string `mapstructure:"bucket" default:"anime-tracker"`
	Region string `mapstructure:"region" default:""`
	// Prefix is the object key prefix of exports.
	Prefix string `mapstructure:"prefix" default:"exports"`
	// Retain is how many exports are kept per kind; older ones are pruned. 0 keeps all.
	Retain int `mapstructure:"retain" default:"10"`
	// TimeoutSeconds bounds connection setup and the first response byte.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
