package router

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"law4you/analyzer"
	"law4you/chat"
	"law4you/cmd/web/dto"
	"law4you/cmd/web/middleware"
	"law4you/models"
	"law4you/session"
)

type fakeAnalyzer struct {
	result models.AnalysisResult
	calls  int
}

func (f *fakeAnalyzer) AnalyzeText(context.Context, string) models.AnalysisResult {
	f.calls++
	return f.result
}

func (f *fakeAnalyzer) AnalyzeImage(context.Context, analyzer.Image) models.AnalysisResult {
	f.calls++
	return f.result
}

type fakeExtractor struct{}

func (fakeExtractor) Extract([]byte) (string, error) { return "Clause text from pdf", nil }

const testMaxBytes = 1 << 16

type client struct {
	t      *testing.T
	engine *gin.Engine
	cookie *http.Cookie
}

func newClient(t *testing.T, an *fakeAnalyzer) *client {
	gin.SetMode(gin.TestMode)
	engine := New(Deps{
		Registry:       session.NewRegistry(),
		Runner:         chat.NewController(an, fakeExtractor{}),
		MaxUploadBytes: testMaxBytes,
	})
	return &client{t: t, engine: engine}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.engine.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.VisitorCookie {
			c.cookie = ck
		}
	}
	return rec
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) postJSON(path string, body any) *httptest.ResponseRecorder {
	b, err := json.Marshal(body)
	require.NoError(c.t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *client) upload(path, fileName string, data []byte, uploadID string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if uploadID != "" {
		require.NoError(c.t, w.WriteField("upload_id", uploadID))
	}
	fw, err := w.CreateFormFile("file", fileName)
	require.NoError(c.t, err)
	_, err = fw.Write(data)
	require.NoError(c.t, err)
	require.NoError(c.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req)
}

func pngBytes(t *testing.T) []byte {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func okResult() models.AnalysisResult {
	return models.AnalysisResult{
		SimplifiedText:     "You must move out within a month.",
		JargonDefinitions:  []models.JargonDefinition{{Term: "Vacate", Definition: "To leave a property."}},
		RiskScore:          8,
		QuestionsForLawyer: []string{"Can the period be extended?"},
	}
}

func TestHealth(t *testing.T) {
	c := newClient(t, &fakeAnalyzer{})
	rec := c.get("/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestIndexRendersEmptyDashboard(t *testing.T) {
	c := newClient(t, &fakeAnalyzer{})
	rec := c.get("/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, models.DefaultSessionName)
	assert.Contains(t, body, "Your analysis results will appear here")
	require.NotNil(t, c.cookie)
}

func TestSendMessageRedirectsAndRendersAnalysis(t *testing.T) {
	an := &fakeAnalyzer{result: okResult()}
	c := newClient(t, an)
	c.get("/")

	rec := c.postForm("/chat", url.Values{"prompt": {"The tenant shall vacate within 30 days."}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	body := c.get("/").Body.String()
	assert.Contains(t, body, "The tenant shall vacate within 30 d...")
	assert.Contains(t, body, "You must move out within a month.")
	assert.Contains(t, body, "Potential Risk Level: 8 / 10")
	assert.Contains(t, body, "#D9534F")
	assert.Contains(t, body, chat.MsgAnalysisComplete)
	assert.Equal(t, 1, an.calls)
}

func TestEmptyPromptShowsNoticeOnce(t *testing.T) {
	an := &fakeAnalyzer{result: okResult()}
	c := newClient(t, an)
	c.get("/")

	c.postForm("/chat", url.Values{"prompt": {""}})
	assert.Contains(t, c.get("/").Body.String(), chat.WarnUnprocessable)
	assert.NotContains(t, c.get("/").Body.String(), chat.WarnUnprocessable)
	assert.Zero(t, an.calls)
}

func TestUploadFormRejectsUnsupportedFile(t *testing.T) {
	an := &fakeAnalyzer{result: okResult()}
	c := newClient(t, an)
	c.get("/")

	rec := c.upload("/upload", "notes.txt", []byte("plain text notes"), "u-1")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, c.get("/").Body.String(), chat.WarnUnsupportedUpload)
	assert.Zero(t, an.calls)
}

func TestNewAndSwitchSessionForms(t *testing.T) {
	c := newClient(t, &fakeAnalyzer{result: okResult()})
	c.get("/")
	first := c.postJSON("/api/v1/chat", dto.ChatRequestDTO{Message: "first clause"})
	require.Equal(t, http.StatusOK, first.Code)
	var turn dto.TurnResponseDTO
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &turn))

	require.Equal(t, http.StatusSeeOther, c.postForm("/sessions", nil).Code)
	var list dto.ListSessionsResponseDTO
	require.NoError(t, json.Unmarshal(c.get("/api/v1/sessions").Body.Bytes(), &list))
	require.Len(t, list.Items, 2)
	assert.True(t, list.Items[0].Current)
	assert.Equal(t, models.DefaultSessionName, list.Items[0].Name)
	assert.Equal(t, "first clause", list.Items[1].Name)

	require.Equal(t, http.StatusSeeOther, c.postForm("/sessions/"+turn.SessionID+"/switch", nil).Code)
	var cur dto.SessionDTO
	require.NoError(t, json.Unmarshal(c.get("/api/v1/sessions/current").Body.Bytes(), &cur))
	assert.Equal(t, turn.SessionID, cur.ID)
	assert.Len(t, cur.Messages, 2)
}

func TestChatAPI(t *testing.T) {
	c := newClient(t, &fakeAnalyzer{result: okResult()})

	rec := c.postJSON("/api/v1/chat", dto.ChatRequestDTO{Message: "The tenant shall vacate within 30 days."})
	require.Equal(t, http.StatusOK, rec.Code)

	var out dto.TurnResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotEmpty(t, out.SessionID)
	assert.Equal(t, chat.MsgAnalysisComplete, out.Reply)
	require.NotNil(t, out.Analysis)
	assert.Equal(t, 8, out.Analysis.RiskScore)
}

func TestChatAPIKeepsZeroRiskScore(t *testing.T) {
	c := newClient(t, &fakeAnalyzer{result: models.AnalysisResult{SimplifiedText: "Nothing unusual here."}})

	rec := c.postJSON("/api/v1/chat", dto.ChatRequestDTO{Message: "Rent is due on the first of the month."})
	require.Equal(t, http.StatusOK, rec.Code)

	var raw struct {
		Analysis map[string]json.RawMessage `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.JSONEq(t, `0`, string(raw.Analysis["risk_score"]))
	assert.JSONEq(t, `[]`, string(raw.Analysis["jargon_definitions"]))
	assert.JSONEq(t, `[]`, string(raw.Analysis["questions_for_lawyer"]))
	assert.NotContains(t, raw.Analysis, "error")

	cur := c.get("/api/v1/sessions/current")
	assert.Contains(t, cur.Body.String(), `"risk_score":0`)
}

func TestChatAPIAnalysisFailureIsStillOK(t *testing.T) {
	c := newClient(t, &fakeAnalyzer{result: models.NewAnalysisError(analyzer.MsgClauseFailed)})

	rec := c.postJSON("/api/v1/chat", dto.ChatRequestDTO{Message: "clause"})
	require.Equal(t, http.StatusOK, rec.Code)

	var out dto.TurnResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "An error occurred during analysis: "+analyzer.MsgClauseFailed, out.Reply)
	assert.Equal(t, analyzer.MsgClauseFailed, out.Analysis.Error)
}

func TestChatAPIRejectsEmptyMessage(t *testing.T) {
	an := &fakeAnalyzer{result: okResult()}
	c := newClient(t, an)

	rec := c.postJSON("/api/v1/chat", dto.ChatRequestDTO{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), chat.WarnUnprocessable)
	assert.Zero(t, an.calls)
}

func TestUploadAPI(t *testing.T) {
	an := &fakeAnalyzer{result: okResult()}
	c := newClient(t, an)

	rec := c.upload("/api/v1/upload", "lease.png", pngBytes(t), "upload-1")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.upload("/api/v1/upload", "lease.png", pngBytes(t), "upload-1")
	require.Equal(t, http.StatusOK, rec.Code)
	var out dto.TurnResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Duplicate)
	assert.Nil(t, out.Analysis)
	assert.Equal(t, 1, an.calls)

	var cur dto.SessionDTO
	require.NoError(t, json.Unmarshal(c.get("/api/v1/sessions/current").Body.Bytes(), &cur))
	require.Len(t, cur.Messages, 2)
	assert.Equal(t, "🖼️ Analyzed Image: lease.png", cur.Messages[0].Content)
}

func TestUploadAPIPDF(t *testing.T) {
	an := &fakeAnalyzer{result: okResult()}
	c := newClient(t, an)

	rec := c.upload("/api/v1/upload", "lease.pdf", []byte("%PDF-1.4\n%fake\n"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var cur dto.SessionDTO
	require.NoError(t, json.Unmarshal(c.get("/api/v1/sessions/current").Body.Bytes(), &cur))
	require.NotEmpty(t, cur.Messages)
	assert.Equal(t, "📄 Analyzed PDF: lease.pdf", cur.Messages[0].Content)
}

func TestUploadAPIErrors(t *testing.T) {
	c := newClient(t, &fakeAnalyzer{result: okResult()})

	rec := c.upload("/api/v1/upload", "notes.txt", []byte("plain text notes"), "")
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = c.upload("/api/v1/upload", "huge.png", bytes.Repeat([]byte{1}, testMaxBytes+1), "")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestSwitchUnknownSessionAPI(t *testing.T) {
	c := newClient(t, &fakeAnalyzer{})
	rec := c.do(httptest.NewRequest(http.MethodPost, "/api/v1/sessions/chat_missing/switch", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateSessionAPI(t *testing.T) {
	c := newClient(t, &fakeAnalyzer{})
	rec := c.do(httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var out dto.SessionDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, models.DefaultSessionName, out.Name)
	assert.Empty(t, out.Messages)
}

func TestWithCORS(t *testing.T) {
	c := newClient(t, &fakeAnalyzer{})
	h := WithCORS(c.engine, []string{"http://localhost:3000"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
