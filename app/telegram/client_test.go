package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(server *httptest.Server) *Client {
	return &Client{
		token:      "TOKEN",
		chatID:     "42",
		apiBase:    server.URL,
		httpClient: server.Client(),
	}
}

func TestSendMessage(t *testing.T) {
	var gotPath string
	var gotForm map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		r.ParseForm()
		gotForm = r.PostForm
		w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	err := client.SendMessage(context.Background(), "<b>hello</b>", ParseModeHTML, false)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gotPath != "/botTOKEN/sendMessage" {
		t.Errorf("Expected path '/botTOKEN/sendMessage', got: %s", gotPath)
	}
	if got := gotForm["chat_id"]; len(got) != 1 || got[0] != "42" {
		t.Errorf("Expected chat_id '42', got: %v", got)
	}
	if got := gotForm["text"]; len(got) != 1 || got[0] != "<b>hello</b>" {
		t.Errorf("Expected text '<b>hello</b>', got: %v", got)
	}
	if got := gotForm["parse_mode"]; len(got) != 1 || got[0] != "HTML" {
		t.Errorf("Expected parse_mode 'HTML', got: %v", got)
	}
	if _, ok := gotForm["disable_web_page_preview"]; ok {
		t.Error("Expected no disable_web_page_preview field")
	}
}

func TestSendMessagePlain(t *testing.T) {
	var gotForm map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotForm = r.PostForm
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	if err := client.SendMessage(context.Background(), "plain", "", true); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if _, ok := gotForm["parse_mode"]; ok {
		t.Error("Expected no parse_mode field for plain text")
	}
	if got := gotForm["disable_web_page_preview"]; len(got) != 1 || got[0] != "true" {
		t.Errorf("Expected disable_web_page_preview 'true', got: %v", got)
	}
}

func TestSendPhoto(t *testing.T) {
	var gotPath string
	var gotForm map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		r.ParseForm()
		gotForm = r.PostForm
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	err := client.SendPhoto(context.Background(), "https://x/1.jpg", "caption", ParseModeHTML)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gotPath != "/botTOKEN/sendPhoto" {
		t.Errorf("Expected path '/botTOKEN/sendPhoto', got: %s", gotPath)
	}
	if got := gotForm["photo"]; len(got) != 1 || got[0] != "https://x/1.jpg" {
		t.Errorf("Expected photo URL, got: %v", got)
	}
	if got := gotForm["caption"]; len(got) != 1 || got[0] != "caption" {
		t.Errorf("Expected caption, got: %v", got)
	}
}

func TestSendMessageRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"description":"Bad Request: message is too long"}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	err := client.SendMessage(context.Background(), "text", "", false)

	if err == nil {
		t.Fatal("Expected an error for ok:false response")
	}
	if !strings.Contains(err.Error(), "message is too long") {
		t.Errorf("Expected error to carry the API description, got: %v", err)
	}
}

func TestSendMessageHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"description":"Too Many Requests"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server)
	if err := client.SendMessage(context.Background(), "text", "", false); err == nil {
		t.Error("Expected an error for non-2xx status")
	}
}

func TestSendMessageMalformedAck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := newTestClient(server)
	if err := client.SendMessage(context.Background(), "text", "", false); err == nil {
		t.Error("Expected an error for a malformed acknowledgment")
	}
}

func TestNewClientTimeout(t *testing.T) {
	client := NewClient("TOKEN", "42", 15*time.Second)

	if client.httpClient.Timeout != 15*time.Second {
		t.Errorf("Expected 15s timeout, got: %v", client.httpClient.Timeout)
	}
	if client.apiBase != defaultAPIBase {
		t.Errorf("Expected default API base, got: %s", client.apiBase)
	}
}
