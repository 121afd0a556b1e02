package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"kakao-fortune-bot/internal/adapters/generator"
	"kakao-fortune-bot/internal/adapters/kakao"
	"kakao-fortune-bot/internal/adapters/repo"
	"kakao-fortune-bot/internal/adapters/worldtime"
	"kakao-fortune-bot/internal/domain"
	"kakao-fortune-bot/internal/infra/cache"
	"kakao-fortune-bot/internal/infra/config"
	"kakao-fortune-bot/internal/infra/db"
	httpinfra "kakao-fortune-bot/internal/infra/http"
	"kakao-fortune-bot/internal/infra/log"
	"kakao-fortune-bot/internal/infra/metrics"
	openaiinfra "kakao-fortune-bot/internal/infra/openai"
	"kakao-fortune-bot/internal/usecase/fortune"
)

func main() {
	cfg := config.Load()
	logger := log.NewLogger(cfg.AppEnv)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(cfg.PGDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("DB에 연결할 수 없습니다")
	}
	defer pool.Close()

	if err := db.Migrate(cfg.PGDSN); err != nil {
		logger.Fatal().Err(err).Msg("마이그레이션 실패")
	}

	repoAdapter := repo.NewPostgres(pool)

	var fortuneCache domain.FortuneCache = repoAdapter
	if cfg.RedisAddr != "" {
		fortuneCache = cache.NewRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		logger.Info().Str("addr", cfg.RedisAddr).Msg("운세 캐시를 Redis에 저장합니다")
	}

	clock := worldtime.NewClient(logger)
	timeout := time.Duration(cfg.OpenAI.TimeoutSeconds) * time.Second
	openaiClient := openaiinfra.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, timeout)
	fortuneGen := generator.NewOpenAI(openaiClient, clock, logger, cfg.OpenAI.Model, timeout)

	svc := fortune.NewService(repoAdapter, repoAdapter, fortuneCache, fortuneGen, clock, logger)
	webhook := kakao.NewHandler(logger, svc, repoAdapter, clock)

	srv := httpinfra.NewServer(logger)
	srv.Router.Post("/api/kakao/webhook", webhook.HandleWebhook)
	srv.Router.Get("/health", httpinfra.HealthHandler(cfg))
	srv.Router.Get("/api/v1/conversations", conversationsHandler(logger, repoAdapter))

	go func() {
		if err := srv.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("HTTP 서버 중단")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("서비스를 종료합니다")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

type conversationDTO struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Response    string `json:"response"`
	FortuneType string `json:"fortune_type,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// conversationsHandler는 외부 이력 조회용 엔드포인트다. 웹훅 요청 경로와는 무관하다.
func conversationsHandler(logger zerolog.Logger, conversations domain.ConversationRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
		if err != nil {
			http.Error(w, "잘못된 user_id", http.StatusBadRequest)
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		items, err := conversations.ListRecentConversations(r.Context(), userID, limit)
		if err != nil {
			logger.Error().Err(err).Str("user_id", userID.String()).Msg("대화 이력 조회 실패")
			http.Error(w, "이력을 조회할 수 없습니다", http.StatusInternalServerError)
			return
		}

		out := make([]conversationDTO, 0, len(items))
		for _, c := range items {
			out = append(out, conversationDTO{
				ID:          c.ID.String(),
				Message:     c.Message,
				Response:    c.Response,
				FortuneType: string(c.FortuneType),
				CreatedAt:   c.CreatedAt.Format(time.RFC3339),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"conversations": out})
	}
}
