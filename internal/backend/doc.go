// Package backend is the HTTP client for the audit/generation service.
//
// The service exposes two endpoints:
//
//	POST {base}/analyze   {"url": "..."}                  -> {"audit": {...}}
//	POST {base}/generate  {"accepted_suggestion_ids": [...],
//	                       "all_suggestions": [...],
//	                       "kept_link_urls": [...]}       -> {"html": "..."}
//
// Failures carry {"detail": "..."} with a non-2xx status. Non-2xx responses
// become AnalysisError or GenerationError carrying the detail when present.
// Successful responses that do not match the data model become
// MalformedResponseError.
package backend
