package ports

import (
	"context"
	"io"

	"github.com/thandol/j101-generator/internal/domain"
)

// SessionStore persists one WizardState blob per session. Load on a session
// with no stored state returns a fresh empty state, not an error.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (*domain.WizardState, error)
	Save(ctx context.Context, sessionID string, st *domain.WizardState) error
	Delete(ctx context.Context, sessionID string) error
}

// FormFiller writes a flat physical-field mapping into a fillable PDF
// template. Keys must match the template's declared field identifiers;
// fields absent from the mapping keep the template default (blank).
type FormFiller interface {
	Fill(ctx context.Context, templatePath string, fields map[string]string, w io.Writer) error
}
