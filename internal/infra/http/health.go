package http

import (
	"encoding/json"
	"net/http"
	"time"

	"kakao-fortune-bot/internal/infra/config"
)

type healthResponse struct {
	OpenAI    bool   `json:"openai"`
	Postgres  bool   `json:"postgres"`
	AppEnv    string `json:"app_env"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}

// HealthHandler는 필수 자격 증명의 존재 여부만 확인한다. 값의 유효성은 검증하지 않는다.
func HealthHandler(cfg config.AppConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"status":    "error",
					"timestamp": time.Now().Format(time.RFC3339),
				})
			}
		}()

		resp := healthResponse{
			OpenAI:    cfg.OpenAI.APIKey != "",
			Postgres:  cfg.PGDSN != "",
			AppEnv:    cfg.AppEnv,
			Timestamp: time.Now().Format(time.RFC3339),
			Status:    "healthy",
		}

		status := http.StatusOK
		if !resp.OpenAI || !resp.Postgres {
			resp.Status = "unhealthy"
			resp.Message = "필수 환경 변수가 없습니다"
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
