package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env    string
	DB     DB
	Server Server
	Logger Logger
	Crypto Crypto
	Types  Types
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type Server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Crypto holds the key material for credential payload encryption. Exactly one
// of Key (32-byte hex) or Passphrase must be set.
type Crypto struct {
	Key        string `env:"ENCRYPTION_KEY"`
	Passphrase string `env:"ENCRYPTION_PASSPHRASE"`
}

// Types points at the directory of credential type definition files.
type Types struct {
	Dir string `env:"CREDENTIAL_TYPES_DIR"`
}

func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("no .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	viper.SetDefault("run_address", ":8080")
	viper.SetDefault("migrations_path", "migrations")
	viper.SetDefault("credential_types_dir", "types")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("app_env", EnvProd)

	config := Config{
		Env: viper.GetString("app_env"),
		DB: DB{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Server: Server{RunAddress: viper.GetString("run_address")},
		Logger: Logger{LogLevel: viper.GetString("log_level")},
		Crypto: Crypto{
			Key:        viper.GetString("encryption_key"),
			Passphrase: viper.GetString("encryption_passphrase"),
		},
		Types: Types{Dir: viper.GetString("credential_types_dir")},
	}

	if config.DB.DatabaseURI == "" {
		log.Fatalln("DATABASE_URI is required")
	}
	if config.Crypto.Key == "" && config.Crypto.Passphrase == "" {
		log.Fatalln("ENCRYPTION_KEY or ENCRYPTION_PASSPHRASE is required")
	}

	return &config
}
