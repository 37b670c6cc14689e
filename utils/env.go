package utils

import "os"

var (
	// DB_DRIVER is one of postgres, mysql or sqlite3. cockroach and sqlite are accepted aliases.
	DB_DRIVER = GetEnvOrDefault("DB_DRIVER", "postgres")
	DB_DSN    = os.Getenv("DB_DSN")

	HTTP_PORT = GetEnvOrDefault("HTTP_PORT", "8080")

	// EXPORT_PATH is where /seed/export writes scripts. Empty means the working directory.
	EXPORT_PATH = os.Getenv("EXPORT_PATH")

	AWS_DEFAULT_REGION = GetEnvOrDefault("AWS_DEFAULT_REGION", "us-east-1")
	S3_ENDPOINT        = os.Getenv("S3_ENDPOINT")
)
