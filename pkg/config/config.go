package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Env         string
	MongoURI    string
	MongoDB     string
	JWTSecret   string
	UploadDir   string
	MaxUploadMB int64
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "versebook"),
		JWTSecret:   getEnv("JWT_SECRET", "supersecretjwtkey"),
		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadMB: getEnvInt64("MAX_UPLOAD_MB", 5),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
