package env

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from a .env file without overriding ones already
// set. ENV_PATH takes precedence over defaultPath. A missing file is not an
// error: the environment may be fully provided by the caller.
func LoadDotEnv(defaultPath string) error {
	envPath := defaultPath
	if p := os.Getenv("ENV_PATH"); p != "" {
		envPath = p
	}

	if err := godotenv.Load(envPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Skipping .env, file not found", "path", envPath)
			return nil
		}
		return err
	}

	slog.Debug("Loaded .env", "path", envPath)
	return nil
}
