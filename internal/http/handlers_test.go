package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"menoassist-chatbot/internal/funnel"
	httpserver "menoassist-chatbot/internal/http"
	"menoassist-chatbot/internal/session"
	"menoassist-chatbot/pkg"
)

type fakeSaver struct{ calls int }

func (f *fakeSaver) SaveRecord(ctx context.Context, userID int64, stage string, answers pkg.Answers) error {
	f.calls++
	return nil
}

type fakeAllocator struct{ next int64 }

func (f *fakeAllocator) NextUserID(ctx context.Context) (int64, error) {
	f.next++
	return 1000 + f.next - 1, nil
}

func newTestServer(t *testing.T) (*httpserver.Server, *fakeAllocator) {
	t.Helper()
	alloc := &fakeAllocator{}
	srv := &httpserver.Server{
		Store:     session.NewStore(),
		Engine:    funnel.NewEngine(&fakeSaver{}),
		Allocator: alloc,
	}
	return srv, alloc
}

func postChat(t *testing.T, srv *httpserver.Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decodeChat(t *testing.T, w *httptest.ResponseRecorder) pkg.ChatResponse {
	t.Helper()
	var resp pkg.ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return resp
}

func TestChatMissingQuery(t *testing.T) {
	srv, _ := newTestServer(t)
	w := postChat(t, srv, `{"query": "   "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestChatAllocatesUserID(t *testing.T) {
	srv, alloc := newTestServer(t)
	w := postChat(t, srv, `{"query": "hello"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	resp := decodeChat(t, w)
	if resp.UserID != 1000 {
		t.Fatalf("user_id = %d, want 1000", resp.UserID)
	}
	if alloc.next != 1 {
		t.Fatalf("allocator consulted %d times, want 1", alloc.next)
	}
}

func TestChatKeepsSuppliedUserID(t *testing.T) {
	srv, alloc := newTestServer(t)
	postChat(t, srv, `{"query": "hello", "user_id": 55}`)
	w := postChat(t, srv, `{"query": "yes", "user_id": 55}`)
	resp := decodeChat(t, w)
	if resp.UserID != 55 {
		t.Fatalf("user_id = %d, want 55", resp.UserID)
	}
	if len(resp.Options) != 26 {
		t.Fatalf("options = %d, want the 26-item checklist", len(resp.Options))
	}
	if alloc.next != 0 {
		t.Fatalf("allocator consulted for a supplied user id")
	}
}

// Quit is answered before any session is created.
func TestChatQuitBeforeSessionCreation(t *testing.T) {
	srv, alloc := newTestServer(t)
	w := postChat(t, srv, `{"query": "QUIT"}`)
	resp := decodeChat(t, w)
	if resp.Answer != funnel.FarewellReply {
		t.Fatalf("answer = %q", resp.Answer)
	}
	if resp.UserID != 0 {
		t.Fatalf("quit reply carries user_id %d", resp.UserID)
	}
	if alloc.next != 0 {
		t.Fatalf("allocator consulted on quit")
	}
}

func TestChatInvalidBody(t *testing.T) {
	srv, _ := newTestServer(t)
	w := postChat(t, srv, `{"query": `)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
