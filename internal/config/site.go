package config

import (
	"net/url"
	"strings"
	"time"
)

// Preset holds review decisions applied automatically in non-interactive mode.
// Every list is a deselection; anything not named keeps the opt-out default.
type Preset struct {
	// RejectKinds deselects every suggestion of these kinds ("merge", "delete").
	RejectKinds []string `yaml:"reject_kinds,omitempty"`

	// Reject deselects suggestions by id.
	Reject []string `yaml:"reject,omitempty"`

	// RemoveLinks drops these link URLs from the kept set.
	RemoveLinks []string `yaml:"remove_links,omitempty"`
}

// IsZero reports whether the preset makes no decision.
func (p Preset) IsZero() bool {
	return len(p.RejectKinds) == 0 && len(p.Reject) == 0 && len(p.RemoveLinks) == 0
}

// merge returns the union of p and other, keeping first-seen order.
func (p Preset) merge(other Preset) Preset {
	return Preset{
		RejectKinds: union(p.RejectKinds, other.RejectKinds),
		Reject:      union(p.Reject, other.Reject),
		RemoveLinks: union(p.RemoveLinks, other.RemoveLinks),
	}
}

// File represents the structure of the .blogrefresh configuration file.
type File struct {
	// APIURL overrides the backend base URL.
	APIURL string `yaml:"api_url,omitempty"`

	// Timeout overrides the per-request timeout (e.g. "90s").
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// MinContentLength overrides the guard threshold.
	MinContentLength int `yaml:"min_content_length,omitempty"`

	// Headers are extra headers sent to the backend.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Defaults applies to every article.
	Defaults Preset `yaml:"defaults,omitempty"`

	// Sites maps a host name (e.g. "blog.example.com") to its preset.
	Sites map[string]Preset `yaml:"sites,omitempty"`
}

func newFile() *File {
	return &File{Sites: make(map[string]Preset)}
}

// PresetFor returns the defaults merged with the preset of the article's host.
// A leading "www." is ignored when looking up the host.
func (cf *File) PresetFor(pageURL string) Preset {
	result := cf.Defaults.merge(Preset{})

	host := hostOf(pageURL)
	if host == "" {
		return result
	}
	if site, ok := cf.lookup(host); ok {
		result = result.merge(site)
	}
	return result
}

func (cf *File) lookup(host string) (Preset, bool) {
	for name, preset := range cf.Sites {
		if strings.EqualFold(strings.TrimPrefix(strings.ToLower(name), "www."), host) {
			return preset, true
		}
	}
	return Preset{}, false
}

func hostOf(pageURL string) string {
	u, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

func union(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			if seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
