package config

import "os"

// Config carries everything the process reads from its environment.
// It is loaded once in main and handed to constructors; nothing below
// the wiring layer touches os.Getenv directly.
type Config struct {
	ListenAddr string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	KafkaBroker string
	KafkaTopic  string

	JaegerEndpoint string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	// VNPay merchant credentials. The hash secret signs every callback;
	// rotating it is a config redeploy, never a code change.
	VNPTmnCode    string
	VNPHashSecret string

	JWTSecret  string
	AdminEmail string
}

func Load() Config {
	return Config{
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "shopdb"),

		KafkaBroker: getEnv("KAFKA_BROKER", "localhost:9092"),
		KafkaTopic:  getEnv("KAFKA_TOPIC", "order_events"),

		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		VNPTmnCode:    getEnv("VNP_TMN_CODE", ""),
		VNPHashSecret: getEnv("VNP_HASH_SECRET", ""),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		AdminEmail: getEnv("ADMIN_EMAIL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
