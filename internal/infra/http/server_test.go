package http

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func TestServerLogsEachRequest(t *testing.T) {
	var buf bytes.Buffer
	middleware.DefaultLogger = middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  log.New(&buf, "", 0),
		NoColor: true,
	})

	s := NewServer(zerolog.Nop())
	s.Router.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("200을 기대했지만 %d", rec.Code)
	}
	if buf.Len() == 0 {
		t.Fatal("요청 로그가 기록되어야 합니다")
	}
}

func TestServerRecoversFromPanic(t *testing.T) {
	s := NewServer(zerolog.Nop())
	s.Router.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("예기치 못한 오류")
	})

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("500을 기대했지만 %d", rec.Code)
	}
}
