package credentials

import (
	"context"

	"github.com/dmitrijs2005/quotedesk/internal/client/models"
)

type Repository interface {
	Load(ctx context.Context) (*models.Credential, error)
	Insert(ctx context.Context, cred *models.Credential) error
	Clear(ctx context.Context) error
}
