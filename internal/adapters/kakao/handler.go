package kakao

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"kakao-fortune-bot/internal/domain"
	"kakao-fortune-bot/internal/infra/metrics"
	"kakao-fortune-bot/internal/usecase/fortune"
)

const welcomeText = `안녕하세요! 사주·운세 챗봇입니다. 🔮

생년월일과 생시를 알려주시면 오늘의 운세를 알려드릴게요.

📝 입력 예시:
• 1990년 1월 1일 14시 30분
• 1990-01-01 14:30
• 19900101

생시를 모르시면 생년월일만 입력하셔도 됩니다!`

const helpText = `📚 사용 방법 안내

1️⃣ 생년월일 입력하기
   • YYYY-MM-DD 형식 (예: 1990-01-01)
   • YYYYMMDD 형식 (예: 19900101)
   • YYYY년 MM월 DD일 형식

2️⃣ 생시 입력하기 (선택사항)
   • HH:MM 형식 (예: 14:30)
   • HH시 MM분 형식

3️⃣ 운세 종류
   • 오늘의 운세
   • 이번 달 운세
   • 올해 운세
   • 평생 사주

궁금한 점이 있으시면 언제든 물어보세요!`

const errorText = "죄송합니다. 일시적인 오류가 발생했습니다.\n잠시 후 다시 시도해주세요."

// Handler는 카카오 웹훅을 처리한다.
type Handler struct {
	log   zerolog.Logger
	svc   *fortune.Service
	users domain.UserRepo
	clock domain.Clock
}

// NewHandler는 웹훅 핸들러를 생성한다.
func NewHandler(logger zerolog.Logger, svc *fortune.Service, users domain.UserRepo, clock domain.Clock) *Handler {
	return &Handler{log: logger, svc: svc, users: users, clock: clock}
}

// HandleWebhook은 카카오 웹훅 POST를 처리한다. 내부에서 무슨 일이 있어도
// 정상적인 응답 봉투와 HTTP 200을 반환한다.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error().Interface("panic", rec).Msg("웹훅 처리 중 패닉")
			writeEnvelope(w, NewSimpleTextResponse(errorText, nil))
		}
	}()

	var req KakaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn().Err(err).Msg("웹훅 본문 해석 실패")
		writeEnvelope(w, NewSimpleTextResponse(errorText, nil))
		return
	}

	utterance := req.UserRequest.Utterance
	userID := req.UserRequest.User.ID
	h.log.Info().Str("kakao_user", userID).Str("utterance", utterance).Msg("웹훅 수신")

	text, quickReplies := h.route(r, userID, utterance)
	writeEnvelope(w, NewSimpleTextResponse(text, quickReplies))
}

func (h *Handler) route(r *http.Request, userID, utterance string) (string, []QuickReply) {
	ctx := r.Context()

	switch {
	case strings.Contains(utterance, "안녕") || strings.Contains(utterance, "시작"):
		metrics.WebhookRequestsTotal.WithLabelValues("greeting").Inc()
		return welcomeText, []QuickReply{
			{MessageText: "예시: 1990-01-01 14:30", Action: "message", Label: "입력 예시 보기"},
		}
	case strings.Contains(utterance, "도움") || strings.Contains(utterance, "help"):
		metrics.WebhookRequestsTotal.WithLabelValues("help").Inc()
		return helpText, nil
	}

	// 생년월일이 저장된 사용자가 운세를 요청하면 입력 파싱을 건너뛴다.
	user, err := h.users.GetByKakaoKey(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		h.log.Warn().Err(err).Str("kakao_user", userID).Msg("사용자 조회 실패")
	}
	if err == nil && user.BirthDate != "" &&
		(strings.Contains(utterance, "운세") || strings.Contains(utterance, "사주")) {
		metrics.WebhookRequestsTotal.WithLabelValues("fortune").Inc()
		text := h.svc.ProcessRequest(ctx, userID, utterance, user.BirthDate, user.BirthTime)
		return text, QuickRepliesFor(fortune.DetectHorizon(utterance))
	}

	// 출생 연도 상한 판정도 프롬프트 날짜와 같은 KST 시각을 쓴다.
	parsed := ParseBirthInput(utterance, h.clock.Now(ctx))
	if !parsed.Valid {
		metrics.WebhookRequestsTotal.WithLabelValues("invalid_input").Inc()
		return parsed.ErrorMessage, []QuickReply{
			{MessageText: "도움말", Action: "message", Label: "사용 방법 보기"},
		}
	}

	metrics.WebhookRequestsTotal.WithLabelValues("fortune").Inc()
	text := h.svc.ProcessRequest(ctx, userID, utterance, parsed.BirthDate, parsed.BirthTime)
	return text, QuickRepliesFor(fortune.DetectHorizon(utterance))
}

func writeEnvelope(w http.ResponseWriter, resp KakaoResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
