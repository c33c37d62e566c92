package env

import (
	"github.com/joho/godotenv"
)

// LoadEnv pulls variables from a local .env file when one exists. Deployed
// environments inject real env vars and have no .env.
func LoadEnv() {
	godotenv.Load()
}
