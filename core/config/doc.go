// Package config loads the application configuration.
//
// Values come from struct tag defaults, an optional .env file and the
// environment, in increasing priority. Sections:
//   - Server: port, page size, body limit
//   - Database: driver (mysql, postgres, sqlite) and connection details
//   - Storage: S3/MinIO settings for catalog exports
//   - Log: level and format
//   - Providers: metadata provider base URLs, TMDB API key, timeout
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
