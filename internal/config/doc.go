// Package config loads the server, database and auth settings from
// defaults, an optional config.yaml, an optional .env file and TASKBOARD_*
// environment variables, and validates the result before anything starts.
package config
