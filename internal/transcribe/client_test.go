package transcribe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestTranscribe(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("Failed to parse multipart form: %v", err)
		}
		gotBody = r.FormValue("model") + "/" + r.FormValue("language")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"hello from whisper"}`))
	}))
	defer server.Close()

	client := NewClient(Options{
		APIKey:   "sk-test",
		BaseURL:  server.URL,
		Language: "ru",
		Timeout:  5 * time.Second,
	})

	text, err := client.Transcribe(context.Background(), []byte("oggdata"))
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if text != "hello from whisper" {
		t.Errorf("Expected transcript 'hello from whisper', got %q", text)
	}
	if !strings.HasSuffix(gotPath, "/audio/transcriptions") {
		t.Errorf("Expected transcription endpoint, got %s", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Expected bearer auth, got %q", gotAuth)
	}
	if !strings.HasPrefix(gotContentType, "multipart/form-data") {
		t.Errorf("Expected multipart request, got %q", gotContentType)
	}
	if gotBody != "whisper-1/ru" {
		t.Errorf("Expected model whisper-1 with language ru, got %q", gotBody)
	}
}

func TestTranscribeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(Options{APIKey: "sk-test", BaseURL: server.URL, Timeout: 5 * time.Second})

	if _, err := client.Transcribe(context.Background(), []byte("oggdata")); err == nil {
		t.Fatal("Expected an error from a failing server")
	}
}

func TestTranscribeHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"text":"too late"}`))
	}))
	defer server.Close()

	client := NewClient(Options{APIKey: "sk-test", BaseURL: server.URL, Timeout: 5 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := client.Transcribe(ctx, []byte("oggdata")); err == nil {
		t.Fatal("Expected a context deadline error")
	}
}
