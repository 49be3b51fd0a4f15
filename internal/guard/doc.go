// Package guard decides whether generated markup may be shown as an article.
//
// The check is a length heuristic. Very short output usually means the
// backend summarized the post instead of reproducing it, so it is shown as
// a rendering error with retry guidance. The markup is neither parsed nor
// sanitized here.
package guard
