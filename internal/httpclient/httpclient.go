package httpclient

import (
	"net/http"
	"time"

	"law4you/internal/logger"
	"law4you/internal/trace"
)

// Config 는 outbound HTTP 클라이언트 공통 설정이다.
// Timeout 이 0 이면 타임아웃을 두지 않는다. 모델 호출은 응답이 올 때까지 기다린다.
type Config struct {
	Timeout   time.Duration
	Transport http.RoundTripper
}

// loggingRoundTripper 는 모든 outbound 호출(주로 Gemini API)에 대해
// 공통 로깅과 X-Request-Id/X-Span-Id 전파를 수행한다.
// 요청 바디는 이미지 바이트를 포함할 수 있어 크기만 기록한다.
type loggingRoundTripper struct {
	inner http.RoundTripper
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	requestID, spanID := trace.NextSpanID(req.Context())
	// RoundTripper 는 원본 요청을 변경하면 안 된다.
	req = req.Clone(req.Context())
	req.Header.Set(trace.HeaderRequestID, requestID)
	req.Header.Set(trace.HeaderSpanID, spanID)

	fields := logger.Fields{
		"method":     req.Method,
		"host":       req.URL.Host,
		"path":       req.URL.Path,
		"body_bytes": req.ContentLength,
		"request_id": requestID,
		"span_id":    spanID,
	}

	resp, err := l.inner.RoundTrip(req)
	fields["duration"] = time.Since(start).String()
	if err != nil {
		fields["error"] = err.Error()
		logger.ErrorWithFields("httpclient request failed", fields)
		return nil, err
	}

	fields["status"] = resp.StatusCode
	if resp.StatusCode >= http.StatusBadRequest {
		logger.WarnWithFields("httpclient request returned error status", fields)
	} else {
		logger.DebugWithFields("httpclient request success", fields)
	}
	return resp, nil
}

// New 는 주어진 설정으로 로깅 RoundTripper 가 적용된 http.Client 를 생성한다.
func New(cfg Config) *http.Client {
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &loggingRoundTripper{inner: transport},
	}
}

// NewDefault 는 타임아웃 없는 기본 클라이언트를 생성한다.
func NewDefault() *http.Client {
	return New(Config{})
}
