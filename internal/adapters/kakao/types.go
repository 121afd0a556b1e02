// Package kakao는 카카오톡 챗봇 웹훅의 요청/응답 처리를 담당한다.
package kakao

// KakaoUser는 플랫폼이 부여한 사용자 정보다.
type KakaoUser struct {
	ID   string `json:"id"`
	Type string `json:"type,omitempty"`
}

// UserRequest는 사용자의 발화와 식별 정보를 담는다.
type UserRequest struct {
	Timezone  string    `json:"timezone,omitempty"`
	Utterance string    `json:"utterance"`
	Lang      string    `json:"lang,omitempty"`
	User      KakaoUser `json:"user"`
}

// KakaoRequest는 수신 웹훅 봉투다.
type KakaoRequest struct {
	UserRequest UserRequest `json:"userRequest"`
}

// SimpleText는 단순 텍스트 출력이다.
type SimpleText struct {
	Text string `json:"text"`
}

// Output은 응답 템플릿의 출력 하나를 나타낸다.
type Output struct {
	SimpleText *SimpleText `json:"simpleText,omitempty"`
}

// QuickReply는 다음 입력 제안이다.
type QuickReply struct {
	MessageText string `json:"messageText"`
	Action      string `json:"action"`
	Label       string `json:"label"`
}

// Template은 출력과 빠른 답변을 묶는다.
type Template struct {
	Outputs      []Output     `json:"outputs"`
	QuickReplies []QuickReply `json:"quickReplies,omitempty"`
}

// KakaoResponse는 발신 웹훅 봉투다. version은 항상 "2.0"이다.
type KakaoResponse struct {
	Version  string   `json:"version"`
	Template Template `json:"template"`
}

// NewSimpleTextResponse는 텍스트와 빠른 답변으로 응답 봉투를 만든다.
func NewSimpleTextResponse(text string, quickReplies []QuickReply) KakaoResponse {
	return KakaoResponse{
		Version: "2.0",
		Template: Template{
			Outputs:      []Output{{SimpleText: &SimpleText{Text: text}}},
			QuickReplies: quickReplies,
		},
	}
}
