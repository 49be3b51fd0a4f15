package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/blogrefresh/internal/model"
)

// newTestClient starts a server running handler and returns a client for it.
func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 5*time.Second, opts...)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

// respond writes status and body as a JSON response.
func respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// TestNewClient tests base URL validation.
func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("accepts http and https urls", func(t *testing.T) {
		t.Parallel()

		for _, base := range []string{"http://localhost:8000", "https://api.example.com/v1/"} {
			c, err := NewClient(base, time.Second)
			if err != nil {
				t.Errorf("%s: unexpected error: %v", base, err)
				continue
			}
			if strings.HasSuffix(c.BaseURL(), "/") {
				t.Errorf("expected trailing slash to be trimmed, got %q", c.BaseURL())
			}
		}
	})

	t.Run("rejects invalid urls", func(t *testing.T) {
		t.Parallel()

		for _, base := range []string{"", "localhost:8000", "ftp://example.com", "http://"} {
			if _, err := NewClient(base, time.Second); !errors.Is(err, ErrInvalidBaseURL) {
				t.Errorf("%q: expected ErrInvalidBaseURL, got %v", base, err)
			}
		}
	})
}

// TestClientAnalyze tests the analyze endpoint.
func TestClientAnalyze(t *testing.T) {
	t.Parallel()

	t.Run("posts url and decodes audit", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if r.URL.Path != "/analyze" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if r.Header.Get("Content-Type") != "application/json" {
				t.Errorf("unexpected content type %q", r.Header.Get("Content-Type"))
			}
			if r.Header.Get("X-Request-Id") == "" {
				t.Error("expected X-Request-Id header")
			}
			if r.Header.Get("X-Api-Key") != "secret" {
				t.Errorf("expected custom header, got %q", r.Header.Get("X-Api-Key"))
			}

			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("failed to decode body: %v", err)
			}
			if body["url"] != "https://blog.example.com/post" {
				t.Errorf("unexpected url %q", body["url"])
			}

			respond(w, http.StatusOK, `{"audit":{
				"structure_suggestions":[{"id":"s1","type":"merge","new_heading":"H","reason":"r","target_section_ids":[1,2]}],
				"link_reviews":[{"url":"https://a","status":"valid","reason":"ok"}]
			}}`)
		}, WithHeaders(map[string]string{"X-Api-Key": "secret"}))

		audit, err := c.Analyze(context.Background(), "https://blog.example.com/post")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(audit.StructureSuggestions) != 1 || audit.StructureSuggestions[0].ID != "s1" {
			t.Errorf("unexpected suggestions %+v", audit.StructureSuggestions)
		}
		if len(audit.LinkReviews) != 1 || audit.LinkReviews[0].Status != model.LinkStatusValid {
			t.Errorf("unexpected links %+v", audit.LinkReviews)
		}
	})

	t.Run("non-2xx with detail returns AnalysisError carrying it", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			respond(w, http.StatusBadGateway, `{"detail":"page could not be fetched"}`)
		})

		_, err := c.Analyze(context.Background(), "https://x")

		var aerr *AnalysisError
		if !errors.As(err, &aerr) {
			t.Fatalf("expected AnalysisError, got %v", err)
		}
		if aerr.StatusCode != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", aerr.StatusCode)
		}
		if aerr.Message() != "page could not be fetched" {
			t.Errorf("unexpected message %q", aerr.Message())
		}
	})

	t.Run("non-json failure body uses unknown backend error", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, "Internal Server Error")
		})

		_, err := c.Analyze(context.Background(), "https://x")

		var aerr *AnalysisError
		if !errors.As(err, &aerr) {
			t.Fatalf("expected AnalysisError, got %v", err)
		}
		if aerr.Message() != "Unknown Backend Error" {
			t.Errorf("unexpected message %q", aerr.Message())
		}
	})

	t.Run("json failure body without detail uses generic message", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			respond(w, http.StatusInternalServerError, `{}`)
		})

		_, err := c.Analyze(context.Background(), "https://x")

		var aerr *AnalysisError
		if !errors.As(err, &aerr) {
			t.Fatalf("expected AnalysisError, got %v", err)
		}
		if aerr.Message() != "Backend error" {
			t.Errorf("unexpected message %q", aerr.Message())
		}
	})

	t.Run("validation detail list is flattened", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			respond(w, http.StatusUnprocessableEntity, `{"detail":[{"loc":["body","url"],"msg":"field required"}]}`)
		})

		_, err := c.Analyze(context.Background(), "")
		if err == nil || !strings.Contains(err.Error(), "field required") {
			t.Errorf("expected flattened detail, got %v", err)
		}
	})

	t.Run("missing audit returns MalformedResponseError", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			respond(w, http.StatusOK, `{"result":{}}`)
		})

		_, err := c.Analyze(context.Background(), "https://x")

		var merr *MalformedResponseError
		if !errors.As(err, &merr) {
			t.Fatalf("expected MalformedResponseError, got %v", err)
		}
		if merr.Endpoint != "/analyze" {
			t.Errorf("unexpected endpoint %q", merr.Endpoint)
		}
	})

	t.Run("audit breaking the data model returns MalformedResponseError", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			respond(w, http.StatusOK, `{"audit":{"structure_suggestions":[{"id":"s1","type":"rewrite"}]}}`)
		})

		_, err := c.Analyze(context.Background(), "https://x")

		var merr *MalformedResponseError
		if !errors.As(err, &merr) {
			t.Fatalf("expected MalformedResponseError, got %v", err)
		}
		var verr *model.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("expected wrapped ValidationError, got %v", err)
		}
	})

	t.Run("wrongly typed fields return MalformedResponseError", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			respond(w, http.StatusOK, `{"audit":{"structure_suggestions":[{"id":"s1","type":"merge","target_section_ids":"1,2"}]}}`)
		})

		_, err := c.Analyze(context.Background(), "https://x")

		var merr *MalformedResponseError
		if !errors.As(err, &merr) {
			t.Fatalf("expected MalformedResponseError, got %v", err)
		}
	})

	t.Run("transport failure returns AnalysisError", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		base := server.URL
		server.Close()

		c, err := NewClient(base, time.Second)
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}

		_, err = c.Analyze(context.Background(), "https://x")

		var aerr *AnalysisError
		if !errors.As(err, &aerr) {
			t.Fatalf("expected AnalysisError, got %v", err)
		}
		if aerr.StatusCode != 0 || aerr.Err == nil {
			t.Errorf("expected transport error, got %+v", aerr)
		}
	})
}

// TestClientGenerate tests the generate endpoint.
func TestClientGenerate(t *testing.T) {
	t.Parallel()

	t.Run("sends snake_case payload and returns html", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/generate" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}

			var body map[string]json.RawMessage
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("failed to decode body: %v", err)
			}
			for _, key := range []string{"accepted_suggestion_ids", "all_suggestions", "kept_link_urls"} {
				if _, ok := body[key]; !ok {
					t.Errorf("expected key %q in payload", key)
				}
			}
			if string(body["accepted_suggestion_ids"]) != `["s1"]` {
				t.Errorf("unexpected accepted ids %s", body["accepted_suggestion_ids"])
			}
			if !strings.Contains(string(body["all_suggestions"]), `"extra":true`) {
				t.Errorf("expected suggestion to round trip unknown fields, got %s", body["all_suggestions"])
			}

			respond(w, http.StatusOK, `{"html":"<article><h1>Title</h1></article>"}`)
		})

		var s model.StructureSuggestion
		if err := json.Unmarshal([]byte(`{"id":"s1","type":"merge","extra":true}`), &s); err != nil {
			t.Fatalf("failed to decode suggestion: %v", err)
		}

		content, err := c.Generate(context.Background(), model.GenerationRequest{
			AcceptedSuggestionIDs: []string{"s1"},
			AllSuggestions:        []model.StructureSuggestion{s},
			KeptLinkURLs:          []string{},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if content.HTML != "<article><h1>Title</h1></article>" {
			t.Errorf("unexpected html %q", content.HTML)
		}
	})

	t.Run("non-2xx returns GenerationError with detail", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			respond(w, http.StatusTooManyRequests, `{"detail":"rate limited"}`)
		})

		_, err := c.Generate(context.Background(), model.GenerationRequest{})

		var gerr *GenerationError
		if !errors.As(err, &gerr) {
			t.Fatalf("expected GenerationError, got %v", err)
		}
		if !strings.Contains(gerr.Error(), "rate limited") {
			t.Errorf("expected detail in message, got %q", gerr.Error())
		}
	})

	t.Run("non-2xx without detail uses generic message", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := c.Generate(context.Background(), model.GenerationRequest{})

		var gerr *GenerationError
		if !errors.As(err, &gerr) {
			t.Fatalf("expected GenerationError, got %v", err)
		}
		if gerr.Message() != "Generation failed" {
			t.Errorf("unexpected message %q", gerr.Message())
		}
	})

	t.Run("missing html returns MalformedResponseError", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			respond(w, http.StatusOK, `{"content":"<p>x</p>"}`)
		})

		_, err := c.Generate(context.Background(), model.GenerationRequest{})

		var merr *MalformedResponseError
		if !errors.As(err, &merr) {
			t.Fatalf("expected MalformedResponseError, got %v", err)
		}
	})

	t.Run("empty html is returned as is", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			respond(w, http.StatusOK, `{"html":""}`)
		})

		content, err := c.Generate(context.Background(), model.GenerationRequest{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if content.HTML != "" {
			t.Errorf("expected empty html, got %q", content.HTML)
		}
	})

	t.Run("response body is bounded", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			respond(w, http.StatusOK, `{"html":"`+strings.Repeat("x", 1024)+`"}`)
		}, WithMaxBodySize(64))

		_, err := c.Generate(context.Background(), model.GenerationRequest{})

		var merr *MalformedResponseError
		if !errors.As(err, &merr) {
			t.Errorf("expected truncated body to be malformed, got %v", err)
		}
	})
}
