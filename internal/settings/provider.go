package settings

import (
	"sync"

	"github.com/rs/zerolog"
)

// Provider implements getActiveSettings() with the resolution order from
// SPEC_FULL.md §4.1: (a) persisted record named "default" and active,
// (b) any persisted active record, (c) built-in defaults. The result is
// memoized until Invalidate is called.
type Provider struct {
	repo *Repository
	log  zerolog.Logger

	mu     sync.RWMutex
	cached *ScoringSettings
}

// NewProvider creates a settings provider over repo.
func NewProvider(repo *Repository, log zerolog.Logger) *Provider {
	return &Provider{
		repo: repo,
		log:  log.With().Str("component", "settings_provider").Logger(),
	}
}

// Active returns the currently active settings record, resolving and
// memoizing it on first call (or after an Invalidate).
func (p *Provider) Active() ScoringSettings {
	p.mu.RLock()
	if p.cached != nil {
		defer p.mu.RUnlock()
		return *p.cached
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cached != nil {
		return *p.cached
	}

	resolved := p.resolve()
	p.cached = &resolved
	return resolved
}

func (p *Provider) resolve() ScoringSettings {
	if s, err := p.repo.GetActiveDefault(); err != nil {
		p.log.Warn().Err(err).Msg("failed to read default scoring settings; falling back")
	} else if s != nil {
		return *s
	}

	if s, err := p.repo.GetAnyActive(); err != nil {
		p.log.Warn().Err(err).Msg("failed to read active scoring settings; falling back")
	} else if s != nil {
		return *s
	}

	return Defaults()
}

// Invalidate clears the memoized record so the next Active() call re-reads
// the store.
func (p *Provider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cached = nil
}
