package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// envFileVar names a dotenv file to load instead of ./.env.
const envFileVar = "CALC_ENV_FILE"

// loadDotEnv fills the environment from a dotenv file so CALC_* and OTEL_*
// settings can live next to the binary. Variables already set in the process
// win. A missing ./.env is ignored; a missing CALC_ENV_FILE is not.
func loadDotEnv() error {
	path := os.Getenv(envFileVar)
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	err := godotenv.Load(path)
	if err == nil || (!explicit && errors.Is(err, os.ErrNotExist)) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}
