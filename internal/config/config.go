package config

import (
	"os"
	"strings"
)

type Config struct {
	MongoURI      string
	RedisURI      string
	SessionSecret string
	Port          string
	UploadDir     string
	TemplateGlob  string

	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS, comma-separated

	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	Environment string // ENV: production, development, etc.
	LogLevel    string
}

func Load() *Config {
	return &Config{
		MongoURI:            getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/petdiary")),
		RedisURI:            getEnv("REDIS_URI", "redis://localhost:6379/0"),
		SessionSecret:       getEnv("SESSION_SECRET", "dev-secret"),
		Port:                getEnv("PORT", "8080"),
		UploadDir:           getEnv("UPLOAD_DIR", "web/static/uploads"),
		TemplateGlob:        getEnv("TEMPLATE_GLOB", "web/templates/*.html"),
		AllowedOrigins:      parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		Environment:         strings.ToLower(strings.TrimSpace(getEnv("ENV", "development"))),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}
}

// CloudinaryConfigured reports whether all three Cloudinary credentials are
// set; uploads fall back to local disk otherwise.
func (c *Config) CloudinaryConfigured() bool {
	return c.CloudinaryName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseOrigins(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
