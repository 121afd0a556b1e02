// Package worldtime은 WorldTimeAPI에서 현재 한국 시간을 가져온다.
// 호출에 실패하면 서버 시간을 KST로 변환해 사용한다.
package worldtime

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"kakao-fortune-bot/internal/domain"
	"kakao-fortune-bot/internal/infra/metrics"
)

const seoulEndpoint = "https://worldtimeapi.org/api/timezone/Asia/Seoul"

// Client는 domain.Clock을 구현한다.
type Client struct {
	http     *http.Client
	log      zerolog.Logger
	loc      *time.Location
	endpoint string
}

var _ domain.Clock = (*Client)(nil)

// NewClient는 시간 클라이언트를 생성한다.
func NewClient(logger zerolog.Logger) *Client {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		loc = time.FixedZone("KST", 9*60*60)
	}
	return &Client{
		http:     &http.Client{Timeout: 3 * time.Second},
		log:      logger,
		loc:      loc,
		endpoint: seoulEndpoint,
	}
}

type worldTimeResponse struct {
	Datetime string `json:"datetime"`
}

// Now는 현재 한국 시간을 반환한다. 실패해도 에러를 전파하지 않는다.
func (c *Client) Now(ctx context.Context) time.Time {
	now, err := c.fetch(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("worldtime: 서버 시간으로 대체합니다")
		return time.Now().In(c.loc)
	}
	return now.In(c.loc)
}

func (c *Client) fetch(ctx context.Context) (time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("worldtime: build request: %w", err)
	}
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveNetworkRequest("worldtime", "now", "asia_seoul", start, err)
		return time.Time{}, fmt.Errorf("worldtime: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveNetworkRequest("worldtime", "now", "asia_seoul", start, err)
		return time.Time{}, fmt.Errorf("worldtime: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("worldtime: unexpected status %d", resp.StatusCode)
		metrics.ObserveNetworkRequest("worldtime", "now", "asia_seoul", start, err)
		return time.Time{}, err
	}
	var parsed worldTimeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		metrics.ObserveNetworkRequest("worldtime", "now", "asia_seoul", start, err)
		return time.Time{}, fmt.Errorf("worldtime: decode response: %w", err)
	}
	t, err := time.Parse(time.RFC3339, parsed.Datetime)
	if err != nil {
		metrics.ObserveNetworkRequest("worldtime", "now", "asia_seoul", start, err)
		return time.Time{}, fmt.Errorf("worldtime: parse datetime: %w", err)
	}
	metrics.ObserveNetworkRequest("worldtime", "now", "asia_seoul", start, nil)
	return t, nil
}
