package config

import "os"

// Config holds all environment-driven settings
type Config struct {
	Port      string
	Env       string
	LogLevel  string
	JWTSecret string

	PostgresURL string
	MongoURI    string
	MongoDBName string

	// Media storage: "local" or "s3"
	StorageBackend string
	LocalMediaDir  string
	LocalMediaURL  string
	S3Bucket       string
	S3Region       string
}

// Load reads configuration from the environment
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		JWTSecret: getEnv("JWT_SECRET", "supersecretjwtkey"),

		PostgresURL: getEnv("POSTGRES_URL", ""),
		MongoURI:    getEnv("MONGO_URI", ""),
		MongoDBName: getEnv("MONGO_DB_NAME", "cinnect"),

		StorageBackend: getEnv("STORAGE_BACKEND", "local"),
		LocalMediaDir:  getEnv("LOCAL_MEDIA_DIR", "./uploads"),
		LocalMediaURL:  getEnv("LOCAL_MEDIA_URL", "http://localhost:8080/uploads"),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
