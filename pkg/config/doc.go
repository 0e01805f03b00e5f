// Package config loads the pethotel configuration.
//
// Values are applied in this order, later sources winning:
//
//  1. Default()
//  2. the YAML file (pethotel.yaml by default)
//  3. a .env file, which only sets variables not already in the environment
//  4. PETHOTEL_<SECTION>_<KEY> environment variables
//
// For example PETHOTEL_DATABASE_PATH sets database.path and
// PETHOTEL_DATABASE_BUSY_TIMEOUT_MS sets database.busy_timeout_ms.
//
// The merged configuration is checked twice: struct tags with
// go-playground/validator, then the #Config CUE definition.
//
//	cfg, err := config.Load("pethotel.yaml")
//	if err != nil {
//	    return err
//	}
//	store, err := stores.NewSQLiteStore(cfg.StoreConfig())
package config
