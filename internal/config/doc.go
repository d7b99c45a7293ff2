// Package config provides the runtime configuration of the dashboard and the
// compile-time catalog of the school programme.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. A YAML configuration file (config.yaml, configs/config.yaml or AUCCA_CONFIG_FILE)
//  3. Default values from struct tags (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern AUCCA_<SECTION>_<FIELD>:
//
//	AUCCA_SERVER_PORT=8080
//	AUCCA_SECURITY_ACCESS_CODE=compost
//	AUCCA_SOURCE_KIND=sheets
//	AUCCA_SOURCE_CREDENTIALS_FILE=/secrets/sa.json
//	AUCCA_LOGGING_LEVEL=debug
//
// # Catalog
//
// The six workshops, the knowledge question of each workshop and the labels
// of the fixed form columns are constants in catalog.go. They change only
// with a new edition of the school.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	w, ok := config.WorkshopByNumber(3)
package config
