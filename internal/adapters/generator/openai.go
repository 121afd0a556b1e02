// Package generator는 OpenAI Chat Completions로 운세 텍스트를 생성한다.
package generator

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"kakao-fortune-bot/internal/domain"
	"kakao-fortune-bot/internal/infra/metrics"
	openai "kakao-fortune-bot/internal/infra/openai"
)

type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

const systemPersona = `당신은 한국의 유명한 사주 전문가이자 운세 상담사입니다.
동양 철학과 사주팔자, 주역을 깊이 이해하고 있으며,
따뜻하고 긍정적인 조언을 제공합니다.
모든 응답은 한국어로 작성하며, 이모지를 적절히 사용하여 친근하게 대답합니다.`

// OpenAI는 domain.FortuneGenerator를 구현한다.
type OpenAI struct {
	client  chatClient
	clock   domain.Clock
	log     zerolog.Logger
	model   string
	timeout time.Duration
}

var _ domain.FortuneGenerator = (*OpenAI)(nil)

// NewOpenAI는 운세 생성기를 만든다.
func NewOpenAI(client chatClient, clock domain.Clock, logger zerolog.Logger, model string, timeout time.Duration) *OpenAI {
	if model == "" {
		model = "gpt-4o-mini"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAI{client: client, clock: clock, log: logger, model: model, timeout: timeout}
}

// Generate는 운세 텍스트를 생성한다. 어떤 실패에도 대체 운세를 반환하며
// 호출자에게 에러를 전파하지 않는다.
func (g *OpenAI) Generate(ctx context.Context, birthDate, birthTime string, horizon domain.Horizon) string {
	today := koreanLongDate(g.clock.Now(ctx))
	prompt := buildPrompt(birthDate, birthTime, horizon, today)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:            g.model,
		Temperature:      0.8,
		MaxTokens:        500,
		PresencePenalty:  0.3,
		FrequencyPenalty: 0.3,
		Messages: []openai.ChatMessage{
			{Role: openai.RoleSystem, Content: systemPersona},
			{Role: openai.RoleUser, Content: prompt},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		g.log.Warn().Err(err).Str("horizon", string(horizon)).Msg("운세 생성 실패, 대체 운세 반환")
		metrics.FortuneFallbacksTotal.Inc()
		return Fallback(horizon)
	}
	if len(resp.Choices) == 0 {
		g.log.Warn().Str("horizon", string(horizon)).Msg("빈 응답, 대체 운세 반환")
		metrics.FortuneFallbacksTotal.Inc()
		return Fallback(horizon)
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		g.log.Warn().Str("horizon", string(horizon)).Msg("빈 텍스트, 대체 운세 반환")
		metrics.FortuneFallbacksTotal.Inc()
		return Fallback(horizon)
	}
	return content
}
