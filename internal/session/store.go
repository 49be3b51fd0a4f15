package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/nao1215/blogrefresh/internal/model"
)

// Store is the session-scoped state container.
// Fields are replaced wholesale, never partially mutated.
type Store struct {
	mu sync.RWMutex

	url       string
	audit     *model.AuditResult
	auditID   string
	finalHTML string

	// issued is the sequence number of the last generation ticket handed out;
	// committed is the sequence number of the last ticket whose result was stored.
	issued    uint64
	committed uint64

	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator sets the function that assigns audit identities.
// Defaults to random UUIDs.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the submitted document URL.
func (s *Store) URL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.url
}

// SetURL records the submitted document URL.
func (s *Store) SetURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = url
}

// Audit returns the current audit and its identity.
// ok is false when no audit has been loaded.
func (s *Store) Audit() (audit *model.AuditResult, id string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.audit, s.auditID, s.audit != nil
}

// AuditID returns the identity of the current audit, or "" when none is loaded.
func (s *Store) AuditID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auditID
}

// SetAudit replaces the audit and assigns it a fresh identity, which is
// returned. Generation tickets issued for the previous audit become stale.
// The final markup is kept.
func (s *Store) SetAudit(audit *model.AuditResult) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = audit
	s.auditID = s.newID()
	return s.auditID
}

// FinalHTML returns the most recently committed generated markup.
func (s *Store) FinalHTML() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.finalHTML
}

// HasFinalHTML reports whether generated markup is present.
func (s *Store) HasFinalHTML() bool {
	return s.FinalHTML() != ""
}

// Ticket identifies one generation request against the store.
type Ticket struct {
	seq     uint64
	auditID string
}

// BeginGeneration issues a ticket for a generation about to be sent.
func (s *Store) BeginGeneration() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return Ticket{seq: s.issued, auditID: s.auditID}
}

// CommitGeneration stores the generated markup if t is still current:
// no later ticket was committed and the audit was not replaced.
// Otherwise it returns ErrStaleGeneration.
func (s *Store) CommitGeneration(t Ticket, content model.GeneratedContent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.seq <= s.committed || t.auditID != s.auditID {
		return ErrStaleGeneration
	}
	s.committed = t.seq
	s.finalHTML = content.HTML
	return nil
}

// Resolve returns the screen that should be shown when target is requested.
// Review needs an audit and Result needs final markup; otherwise the
// session falls back to ScreenEntry.
func (s *Store) Resolve(target Screen) Screen {
	switch target {
	case ScreenReview:
		if _, _, ok := s.Audit(); !ok {
			return ScreenEntry
		}
	case ScreenResult:
		if !s.HasFinalHTML() {
			return ScreenEntry
		}
	}
	return target
}
