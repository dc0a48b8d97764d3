package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	Neo4jURI      string `env:"NEO4J_URI,required"`
	Neo4jUser     string `env:"NEO4J_USER" envDefault:"neo4j"`
	Neo4jPassword string `env:"NEO4J_PASSWORD,required"`
	Neo4jDatabase string `env:"NEO4J_DATABASE" envDefault:"neo4j"`

	EmbedBaseURL           string `env:"EMBED_BASE_URL" envDefault:"http://localhost:8080"`
	DefaultTokenExpiryDays int    `env:"DEFAULT_TOKEN_EXPIRY_DAYS" envDefault:"7"`
	MaxTokenExpiryDays     int    `env:"MAX_TOKEN_EXPIRY_DAYS" envDefault:"90"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
