package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	WebhookRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_requests_total",
		Help: "카카오 웹훅 요청 수 (인텐트별)",
	}, []string{"intent"})

	FortuneRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fortune_requests_total",
		Help: "운세 요청 수 (타입별)",
	}, []string{"horizon"})

	FortuneCacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fortune_cache_hits_total",
		Help: "운세 캐시 적중 수",
	}, []string{"horizon"})

	FortuneCacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fortune_cache_misses_total",
		Help: "운세 캐시 미스 수",
	}, []string{"horizon"})

	FortuneFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fortune_fallbacks_total",
		Help: "LLM 실패로 대체 운세를 반환한 횟수",
	})

	NetworkRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "network_request_duration_seconds",
		Help:    "외부 네트워크 요청의 소요 시간",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30, 45, 60},
	}, []string{"component", "operation", "target", "status"})

	NetworkRequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "network_request_total",
		Help: "외부 네트워크 요청 수",
	}, []string{"component", "operation", "target", "status"})

	LLMGenerationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "llm_generation_duration_seconds",
		Help:    "LLM 응답 생성 소요 시간",
		Buckets: prometheus.DefBuckets,
	}, []string{"model"})

	LLMTokensTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_tokens_total",
		Help: "LLM이 사용한 토큰 수",
	}, []string{"model", "type"})
)

// MustRegister는 메트릭을 등록한다.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		WebhookRequestsTotal,
		FortuneRequestsTotal,
		FortuneCacheHits,
		FortuneCacheMisses,
		FortuneFallbacksTotal,
		NetworkRequestDuration,
		NetworkRequestTotal,
		LLMGenerationDuration,
		LLMTokensTotal,
	)
}

// ObserveNetworkRequest는 외부 요청의 소요 시간과 상태를 기록한다.
func ObserveNetworkRequest(component, operation, target string, start time.Time, err error) {
	if component == "" {
		component = "unknown"
	}
	if operation == "" {
		operation = "unknown"
	}
	if target == "" {
		target = "unknown"
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	duration := time.Since(start).Seconds()
	NetworkRequestDuration.WithLabelValues(component, operation, target, status).Observe(duration)
	NetworkRequestTotal.WithLabelValues(component, operation, target, status).Inc()
}

// ObserveLLMGeneration은 모델 호출 시간과 토큰 사용량을 기록한다.
func ObserveLLMGeneration(model string, duration time.Duration, promptTokens, completionTokens, totalTokens int) {
	LLMGenerationDuration.WithLabelValues(model).Observe(duration.Seconds())
	LLMTokensTotal.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	LLMTokensTotal.WithLabelValues(model, "completion").Add(float64(completionTokens))
	LLMTokensTotal.WithLabelValues(model, "total").Add(float64(totalTokens))
}
