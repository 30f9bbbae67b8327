package usecase

import (
	"context"
	"time"

	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/domain/types"
)

// DashboardUseCase serves the country views and records comments
type DashboardUseCase interface {
	// Countries returns the dropdown options and the preselected country
	Countries(ctx context.Context) *model.CountryOptions

	// View derives charts and summary for the country. It has no side effects.
	View(ctx context.Context, country types.CountryName) (*model.CountryView, error)

	// Select recomputes the view and stores a comment document when the submit counter advanced
	Select(ctx context.Context, input model.SelectionInput) (*model.SelectionOutput, error)

	// ListComments returns stored comment documents of the country, newest first
	ListComments(ctx context.Context, country types.CountryName, limit int) ([]*model.CommentDocument, error)
}

// QueryUseCase runs SQL typed by the user or defined as presets
type QueryUseCase interface {
	// RunAdHoc runs free-text SQL. It returns model.ErrNoUpdate when the button was never clicked.
	RunAdHoc(ctx context.Context, input model.AdHocInput) (*model.QueryOutcome, error)

	// RunPreset runs a named preset with its parameters bound positionally
	RunPreset(ctx context.Context, name types.PresetName, params map[string]string) (*model.QueryOutcome, error)

	// Presets returns the available presets
	Presets(ctx context.Context) []model.QueryPreset
}

// AuthUseCase issues and verifies query tokens
type AuthUseCase interface {
	// IssueToken signs a token for subject with the given scopes
	IssueToken(ctx context.Context, subject types.UserID, scopes []string, ttl time.Duration) (string, error)

	// VerifyToken validates the signature and expiry of token
	VerifyToken(ctx context.Context, token string) (*model.AuthContext, error)
}
