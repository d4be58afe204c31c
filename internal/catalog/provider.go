package catalog

import (
	"github.com/rs/zerolog"

	"github.com/aristath/georisk/internal/domain"
)

// Provider implements listActiveThemes(): persisted active themes if any
// exist, otherwise the built-in default catalog.
type Provider struct {
	repo *Repository
	log  zerolog.Logger
}

// NewProvider creates a catalog provider over repo.
func NewProvider(repo *Repository, log zerolog.Logger) *Provider {
	return &Provider{repo: repo, log: log.With().Str("component", "catalog_provider").Logger()}
}

// ListActiveThemes returns the themes the theme mapper should score
// against.
func (p *Provider) ListActiveThemes() []domain.ThemeDefinition {
	themes, err := p.repo.ListActive()
	if err != nil {
		p.log.Warn().Err(err).Msg("failed to read theme catalog; falling back to defaults")
		return DefaultThemes()
	}
	if len(themes) == 0 {
		return DefaultThemes()
	}
	return themes
}
