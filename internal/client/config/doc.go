// Package config loads runtime configuration for the fittracker client.
//
// Sources & precedence
//
//  1. Built-in defaults (see Defaults).
//  2. Optional JSON or YAML file, chosen by extension, selected with
//     --config / -c.
//  3. Environment variables: FITTRACKER_ followed by the field name in
//     upper snake case, e.g. FITTRACKER_API_BASE_URL or FITTRACKER_S3_BUCKET.
//  4. Command-line flags that were explicitly set (see RegisterFlags).
//
// Later sources override earlier ones.
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	storage: sqlite
//	api_base_url: http://localhost:3006
//	online_check_interval: 3s
//	export:
//	  target: s3
//	  s3:
//	    bucket: exports
//	log:
//	  level: debug
package config
