// Package config defines the configuration structure for betlink-cli.
//
// Configuration is assembled from defaults, an optional YAML file
// (~/.betlink/config.yaml) and BETLINK_* environment variables, in that
// priority order. Credentials themselves (username, password, app key,
// certificate material) live here rather than in command-line flags so
// they stay out of shell history.
package config
