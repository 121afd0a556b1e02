package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig는 서비스 구성을 기술한다.
type AppConfig struct {
	AppEnv string `envconfig:"APP_ENV" default:"dev"`
	TZ     string `envconfig:"TZ" default:"Asia/Seoul"`
	Port   int    `envconfig:"PORT" default:"8080"`

	OpenAI struct {
		APIKey         string `envconfig:"OPENAI_API_KEY"`
		BaseURL        string `envconfig:"OPENAI_BASE_URL"`
		Model          string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
		TimeoutSeconds int    `envconfig:"OPENAI_TIMEOUT_SECONDS" default:"30"`
	} `envconfig:""`

	PGDSN string `envconfig:"PG_DSN"`

	// 설정되면 운세 캐시가 Postgres 대신 Redis에 저장된다.
	RedisAddr string `envconfig:"REDIS_ADDR"`
}

// Load는 .env와 환경 변수에서 구성을 읽어온다.
func Load() AppConfig {
	_ = godotenv.Load()
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("설정을 불러올 수 없습니다: %v", err)
	}
	return cfg
}
