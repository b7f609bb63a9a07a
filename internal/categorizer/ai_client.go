package categorizer

import (
	"context"

	"ybarda/heshbon/internal/models"
)

// AIClient is the remote-classifier port. Implementations talk to an
// external model; the engine treats every error as "use the rule tiers".
type AIClient interface {
	Categorize(ctx context.Context, req Request) (models.CategoryResult, error)
}
