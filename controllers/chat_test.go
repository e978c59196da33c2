package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"chatrelay/auth"
	"chatrelay/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeModel struct {
	parts []models.Message_Part
	err   error

	calls      int
	gotRequest models.Chat_Request
	gotPrompt  string
}

func (f *fakeModel) Stream_Chat_Request(ctx context.Context, request models.Chat_Request, systemPrompt string) (<-chan models.Message_Part, <-chan error) {
	f.calls++
	f.gotRequest = request
	f.gotPrompt = systemPrompt

	partChan := make(chan models.Message_Part)
	errChan := make(chan error, 1)
	if f.err != nil {
		// Leave partChan open so the consumer must observe the error.
		errChan <- f.err
		close(errChan)
		return partChan, errChan
	}
	go func() {
		defer close(partChan)
		defer close(errChan)
		for _, p := range f.parts {
			partChan <- p
		}
	}()
	return partChan, errChan
}

type fakeSearcher struct {
	enabled bool
	result  string
	queries []string
}

func (f *fakeSearcher) Enabled() bool { return f.enabled }

func (f *fakeSearcher) Search(ctx context.Context, query string) string {
	f.queries = append(f.queries, query)
	return f.result
}

type fakeResolver struct {
	user *auth.User
}

func (f *fakeResolver) Resolve(r *http.Request) *auth.User { return f.user }

func newTestRouter(model *fakeModel, searcher *fakeSearcher, resolver *fakeResolver) *gin.Engine {
	controller := NewChatController(model, searcher, resolver, 0)
	router := gin.New()
	controller.RegisterRoutes(router)
	return router
}

func postChat(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func userMessage(text string) string {
	return `{"messages":[{"role":"user","content":"` + text + `"}]}`
}

func TestChatUnauthenticated(t *testing.T) {
	model := &fakeModel{}
	searcher := &fakeSearcher{enabled: true}
	router := newTestRouter(model, searcher, &fakeResolver{user: nil})

	w := postChat(router, userMessage("what's the latest news?"))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if model.calls != 0 {
		t.Errorf("model should not be invoked for unauthenticated requests, got %d calls", model.calls)
	}
	if len(searcher.queries) != 0 {
		t.Errorf("search should not run for unauthenticated requests, got %v", searcher.queries)
	}
}

func TestChatMalformedBody(t *testing.T) {
	model := &fakeModel{}
	router := newTestRouter(model, &fakeSearcher{}, &fakeResolver{user: &auth.User{ID: "u1"}})

	w := postChat(router, `{"messages": not json`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for malformed body, got %d", w.Code)
	}
	if w.Body.String() != "Internal Server Error" {
		t.Errorf("expected static error body, got %q", w.Body.String())
	}
	if model.calls != 0 {
		t.Errorf("model should not be invoked for malformed requests, got %d calls", model.calls)
	}
}

func TestChatEmptyMessages(t *testing.T) {
	router := newTestRouter(&fakeModel{}, &fakeSearcher{}, &fakeResolver{user: &auth.User{ID: "u1"}})

	w := postChat(router, `{"messages":[]}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for empty message list, got %d", w.Code)
	}
	if w.Body.String() != "Internal Server Error" {
		t.Errorf("expected static error body, got %q", w.Body.String())
	}
}

func TestChatSearchTriggered(t *testing.T) {
	model := &fakeModel{parts: []models.Message_Part{models.Text_Part("answer")}}
	searcher := &fakeSearcher{enabled: true, result: "FORMATTED RESULTS"}
	router := newTestRouter(model, searcher, &fakeResolver{user: &auth.User{ID: "u1"}})

	question := "what's the latest news on Go?"
	w := postChat(router, userMessage(question))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if len(searcher.queries) != 1 {
		t.Fatalf("expected exactly one search, got %d", len(searcher.queries))
	}
	if searcher.queries[0] != question {
		t.Errorf("search should receive the raw message text, got %q", searcher.queries[0])
	}
	if model.calls != 1 {
		t.Fatalf("expected one model call, got %d", model.calls)
	}
	if model.gotPrompt != Search_System_Prompt {
		t.Errorf("expected search system prompt, got %q", model.gotPrompt)
	}

	msgs := model.gotRequest.Messages
	if len(msgs) != 2 {
		t.Fatalf("expected original message plus synthesized result message, got %d", len(msgs))
	}
	last := msgs[len(msgs)-1]
	if last.Role != "assistant" {
		t.Errorf("synthesized message should carry the assistant role, got %q", last.Role)
	}
	if !strings.Contains(last.Content, Search_Preamble) || !strings.Contains(last.Content, "FORMATTED RESULTS") {
		t.Errorf("synthesized message missing preamble or results: %q", last.Content)
	}
}

func TestChatNoTriggerKeyword(t *testing.T) {
	model := &fakeModel{parts: []models.Message_Part{models.Text_Part("answer")}}
	searcher := &fakeSearcher{enabled: true, result: "SHOULD NOT APPEAR"}
	router := newTestRouter(model, searcher, &fakeResolver{user: &auth.User{ID: "u1"}})

	postChat(router, userMessage("tell me a story"))

	if len(searcher.queries) != 0 {
		t.Errorf("search should not run without a trigger keyword, got %v", searcher.queries)
	}
	if model.gotPrompt != Plain_System_Prompt {
		t.Errorf("expected plain system prompt, got %q", model.gotPrompt)
	}
	if len(model.gotRequest.Messages) != 1 {
		t.Errorf("message list should be unmodified, got %d messages", len(model.gotRequest.Messages))
	}
}

func TestChatTriggerWithoutCredential(t *testing.T) {
	model := &fakeModel{parts: []models.Message_Part{models.Text_Part("answer")}}
	searcher := &fakeSearcher{enabled: false}
	router := newTestRouter(model, searcher, &fakeResolver{user: &auth.User{ID: "u1"}})

	postChat(router, userMessage("what's the latest?"))

	if len(searcher.queries) != 0 {
		t.Errorf("search should not run when no credential is configured, got %v", searcher.queries)
	}
	if model.gotPrompt != Plain_System_Prompt {
		t.Errorf("expected plain system prompt, got %q", model.gotPrompt)
	}
}

func TestChatTriggerOnNonUserMessage(t *testing.T) {
	model := &fakeModel{parts: []models.Message_Part{models.Text_Part("answer")}}
	searcher := &fakeSearcher{enabled: true}
	router := newTestRouter(model, searcher, &fakeResolver{user: &auth.User{ID: "u1"}})

	body := `{"messages":[{"role":"user","content":"hi"},{"role":"assistant","content":"the latest news"}]}`
	postChat(router, body)

	if len(searcher.queries) != 0 {
		t.Errorf("trigger keywords in a non-user message should not start a search, got %v", searcher.queries)
	}
}

func TestChatStreamsPartsInOrder(t *testing.T) {
	model := &fakeModel{parts: []models.Message_Part{
		models.Text_Part("Hello"),
		models.Text_Part("FOLLOWUP"),
	}}
	router := newTestRouter(model, &fakeSearcher{}, &fakeResolver{user: &auth.User{ID: "u1"}})

	w := postChat(router, userMessage("tell me a story"))

	body := w.Body.String()
	if w.Header().Get("Content-Type") != "text/event-stream" {
		t.Errorf("expected SSE content type, got %q", w.Header().Get("Content-Type"))
	}
	first := strings.Index(body, "Hello")
	second := strings.Index(body, "FOLLOWUP")
	if first == -1 || second == -1 {
		t.Fatalf("expected both chunks in body:\n%s", body)
	}
	if first > second {
		t.Errorf("chunks out of order:\n%s", body)
	}
	if !strings.Contains(body, "event:message") {
		t.Errorf("expected message events in body:\n%s", body)
	}
}

func TestChatStreamErrorEmitsGenericMessage(t *testing.T) {
	model := &fakeModel{err: context.DeadlineExceeded}
	router := newTestRouter(model, &fakeSearcher{}, &fakeResolver{user: &auth.User{ID: "u1"}})

	w := postChat(router, userMessage("tell me a story"))

	body := w.Body.String()
	if !strings.Contains(body, "Oops, an error occurred!") {
		t.Errorf("expected generic error chunk in body:\n%s", body)
	}
	if !strings.Contains(body, "event:error") {
		t.Errorf("expected error event in body:\n%s", body)
	}
	if strings.Contains(body, "deadline exceeded") {
		t.Errorf("real error should not leak to the client:\n%s", body)
	}
}

func TestChatWSUnauthenticated(t *testing.T) {
	router := newTestRouter(&fakeModel{}, &fakeSearcher{}, &fakeResolver{user: nil})

	req := httptest.NewRequest("GET", "/api/chat/ws", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&fakeModel{}, &fakeSearcher{}, &fakeResolver{user: nil})

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ok") {
		t.Errorf("expected ok status, got %q", w.Body.String())
	}
}
