// Package config loads the ruleset combiner configuration.
//
// Values come from environment variables, optionally seeded from a .env file, with
// defaults taken from the `default` struct tags of every section:
//   - Server: HTTP port and API key
//   - Storage: S3/MinIO credentials and the publish bucket
//   - Log: level and format
//   - Database: manifest catalog driver and connection
//   - Combine: input and output directories, tech set, ability lists, resolver mode
//
// Nested keys map to upper-case variables joined by underscores, so combine.tech_set
// is read from COMBINE_TECH_SET.
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Combine.InputDir)
package config
