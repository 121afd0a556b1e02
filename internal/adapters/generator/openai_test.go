package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"kakao-fortune-bot/internal/domain"
	openai "kakao-fortune-bot/internal/infra/openai"
)

type stubChatClient struct {
	captured openai.ChatCompletionRequest
	resp     openai.ChatCompletionResponse
	err      error
}

func (s *stubChatClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.captured = req
	return s.resp, s.err
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now(context.Context) time.Time { return c.t }

func newTestGenerator(client *stubChatClient) *OpenAI {
	clock := fixedClock{t: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)}
	return NewOpenAI(client, clock, zerolog.Nop(), "gpt-4o-mini", time.Second)
}

func TestGenerateReturnsModelText(t *testing.T) {
	client := &stubChatClient{resp: openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatMessage{Content: "🌅 오늘은 좋은 날입니다."}}},
	}}
	g := newTestGenerator(client)
	got := g.Generate(context.Background(), "1990-01-01", "14:30", domain.HorizonDaily)
	if got != "🌅 오늘은 좋은 날입니다." {
		t.Fatalf("모델 응답을 그대로 반환해야 합니다, 결과: %s", got)
	}
	if client.captured.Model != "gpt-4o-mini" {
		t.Fatalf("모델이 다릅니다: %s", client.captured.Model)
	}
	if client.captured.MaxTokens != 500 || client.captured.Temperature != 0.8 {
		t.Fatalf("샘플링 파라미터가 고정값과 다릅니다")
	}
	if client.captured.PresencePenalty != 0.3 || client.captured.FrequencyPenalty != 0.3 {
		t.Fatalf("패널티 파라미터가 고정값과 다릅니다")
	}
	if len(client.captured.Messages) != 2 || client.captured.Messages[0].Role != openai.RoleSystem {
		t.Fatalf("시스템 페르소나가 첫 메시지여야 합니다")
	}
	prompt := client.captured.Messages[1].Content
	if !strings.Contains(prompt, "생년월일: 1990-01-01, 생시: 14:30") {
		t.Fatalf("프롬프트에 생년월일/생시가 없습니다: %s", prompt)
	}
	if !strings.Contains(prompt, "2026년 8월 28일 금요일") {
		t.Fatalf("프롬프트에 오늘 날짜가 없습니다: %s", prompt)
	}
}

func TestGenerateNeverPropagatesFailure(t *testing.T) {
	client := &stubChatClient{err: errors.New("timeout")}
	g := newTestGenerator(client)
	for _, horizon := range []domain.Horizon{domain.HorizonDaily, domain.HorizonMonthly, domain.HorizonYearly, domain.HorizonLifetime} {
		got := g.Generate(context.Background(), "1990-01-01", "", horizon)
		if got == "" {
			t.Fatalf("%s: 빈 텍스트를 반환해서는 안 됩니다", horizon)
		}
		if !strings.HasSuffix(got, FallbackNotice) {
			t.Fatalf("%s: 대체 운세 안내 문구가 없습니다", horizon)
		}
	}
}

func TestGenerateFallsBackOnEmptyOutput(t *testing.T) {
	client := &stubChatClient{resp: openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatMessage{Content: "   "}}},
	}}
	g := newTestGenerator(client)
	got := g.Generate(context.Background(), "1990-01-01", "", domain.HorizonMonthly)
	if !strings.Contains(got, "이번 달 운세") || !strings.HasSuffix(got, FallbackNotice) {
		t.Fatalf("빈 출력은 월간 대체 운세로 대체되어야 합니다, 결과: %s", got)
	}
}

func TestPromptOmitsBirthTimeWhenAbsent(t *testing.T) {
	client := &stubChatClient{resp: openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatMessage{Content: "ok"}}},
	}}
	g := newTestGenerator(client)
	g.Generate(context.Background(), "1990-01-01", "", domain.HorizonLifetime)
	prompt := client.captured.Messages[1].Content
	if strings.Contains(prompt, "생시") {
		t.Fatalf("생시가 없으면 프롬프트에 포함되면 안 됩니다: %s", prompt)
	}
	if !strings.Contains(prompt, "평생 운세") {
		t.Fatalf("평생 사주 프롬프트가 아닙니다: %s", prompt)
	}
}
