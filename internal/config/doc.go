// Package config provides configuration management for skillpulse.
//
// # Configuration Sources
//
// Configuration is assembled in this order, later sources winning:
//
//	1. Default values (struct tags)
//	2. Environment variables
//	3. YAML configuration file (--config, skillpulse.yaml or configs/skillpulse.yaml)
//	4. Command-line flags, applied by cmd/skillpulse
//
// # Environment Variables
//
// All environment variables follow the pattern SKILLPULSE_<SECTION>_<KEY>:
//
//	SKILLPULSE_ANALYSIS_COUNTRY="United States"
//	SKILLPULSE_ANALYSIS_TOP_N=5
//	SKILLPULSE_OUTPUT_DIR=output
//	SKILLPULSE_LOGGING_LEVEL=debug
//	SKILLPULSE_TELEMETRY_TRACE_EXPORTER=file
//
// # Paths
//
// GetPaths resolves the output layout used by the exporter and presenter.
// No other package builds output file names by hand.
package config
