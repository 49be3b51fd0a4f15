package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// decodeAudit is a test helper that decodes an audit or fails the test.
func decodeAudit(t *testing.T, data string) *AuditResult {
	t.Helper()

	var a AuditResult
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		t.Fatalf("failed to decode audit: %v", err)
	}
	return &a
}

// TestAuditResultValidate tests boundary validation of decoded audits.
func TestAuditResultValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid audit returns nil", func(t *testing.T) {
		t.Parallel()

		a := decodeAudit(t, `{
			"structure_suggestions": [{"id":"s1","type":"merge"},{"id":"s2","type":"delete"}],
			"link_reviews": [{"url":"https://a"},{"url":"https://b","status":"invalid"}]
		}`)
		if err := a.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("empty audit is valid", func(t *testing.T) {
		t.Parallel()

		a := decodeAudit(t, `{"structure_suggestions": null}`)
		if err := a.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	tests := []struct {
		name  string
		data  string
		field string
	}{
		{
			name:  "missing suggestion id",
			data:  `{"structure_suggestions":[{"type":"merge"}]}`,
			field: "structure_suggestions[0].id",
		},
		{
			name:  "duplicate suggestion id",
			data:  `{"structure_suggestions":[{"id":"s1","type":"merge"},{"id":"s1","type":"delete"}]}`,
			field: "structure_suggestions[1].id",
		},
		{
			name:  "unknown suggestion kind",
			data:  `{"structure_suggestions":[{"id":"s1","type":"split"}]}`,
			field: "structure_suggestions[0].type",
		},
		{
			name:  "missing link url",
			data:  `{"link_reviews":[{"url":"https://a"},{"status":"valid"}]}`,
			field: "link_reviews[1].url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+" returns ValidationError", func(t *testing.T) {
			t.Parallel()

			err := decodeAudit(t, tt.data).Validate()

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected message to name the field, got %q", err.Error())
			}
		})
	}
}

// TestAuditResultLinkURLs tests link URL projection.
func TestAuditResultLinkURLs(t *testing.T) {
	t.Parallel()

	t.Run("duplicate urls collapse to the first occurrence", func(t *testing.T) {
		t.Parallel()

		a := &AuditResult{LinkReviews: []LinkReview{
			{URL: "https://b"},
			{URL: "https://a"},
			{URL: "https://b", Status: LinkStatusInvalid},
		}}

		got := a.LinkURLs()
		want := []string{"https://b", "https://a"}
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("index %d: expected %q, got %q", i, want[i], got[i])
			}
		}
	})

	t.Run("no links yields empty slice", func(t *testing.T) {
		t.Parallel()

		a := &AuditResult{}
		if urls := a.LinkURLs(); urls == nil || len(urls) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", urls)
		}
	})
}

// TestAuditResultLookups tests membership helpers.
func TestAuditResultLookups(t *testing.T) {
	t.Parallel()

	a := &AuditResult{
		StructureSuggestions: []StructureSuggestion{{ID: "s1", Kind: SuggestionKindMerge}},
		LinkReviews:          []LinkReview{{URL: "https://a"}},
	}

	if !a.HasSuggestion("s1") {
		t.Error("expected s1 to be found")
	}
	if a.HasSuggestion("s9") {
		t.Error("expected s9 to be missing")
	}
	if !a.HasLink("https://a") {
		t.Error("expected https://a to be found")
	}
	if a.HasLink("https://z") {
		t.Error("expected https://z to be missing")
	}
	if ids := a.SuggestionIDs(); len(ids) != 1 || ids[0] != "s1" {
		t.Errorf("unexpected ids %v", ids)
	}
	if (&AuditResult{}).Suggestions() == nil {
		t.Error("expected Suggestions to never return nil")
	}
}

// TestLinkStatusVerdict tests normalization of raw link statuses.
func TestLinkStatusVerdict(t *testing.T) {
	t.Parallel()

	tests := map[LinkStatus]LinkStatus{
		"valid":   LinkStatusValid,
		"invalid": LinkStatusInvalid,
		"":        LinkStatusUnknown,
		"timeout": LinkStatusUnknown,
	}
	for raw, want := range tests {
		if got := raw.Verdict(); got != want {
			t.Errorf("%q: expected %q, got %q", raw, want, got)
		}
	}
}
