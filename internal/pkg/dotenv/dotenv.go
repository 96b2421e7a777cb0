package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// Load читает флаги командной строки и подгружает переменные из env-файла.
// Отсутствие .env по умолчанию не ошибка: на устройстве конфиг обычно приходит из окружения.
func Load() error {
	var (
		portFlag    string
		envFileFlag string
	)
	flag.StringVar(&portFlag, "port", "", "Server port (overrides PORT environment variable)")
	flag.StringVar(&envFileFlag, "env-file", "", "Path to env file (default .env, optional)")
	flag.Parse()

	if err := loadFile(envFileFlag); err != nil {
		return err
	}

	if portFlag != "" {
		err := os.Setenv("PORT", portFlag)
		if err != nil {
			return fmt.Errorf("failed to set PORT environment variable: %w", err)
		}
	}
	return nil
}

func loadFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %q: %w", path, err)
		}
		return nil
	}

	err := godotenv.Load(defaultEnvFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file %q: %w", defaultEnvFile, err)
	}
	return nil
}
