package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yoockh/callsight/internal/models"
	"github.com/yoockh/callsight/internal/utils"
)

type AnalysisRepository interface {
	Insert(ctx context.Context, a *models.InteractionAnalysis) error
	GetByInteractionID(ctx context.Context, interactionID string) (*models.InteractionAnalysis, error)
}

type analysisRepo struct {
	db *gorm.DB
}

func NewAnalysisRepo(db *gorm.DB) AnalysisRepository {
	return &analysisRepo{db: db}
}

func (r *analysisRepo) Insert(ctx context.Context, a *models.InteractionAnalysis) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *analysisRepo) GetByInteractionID(ctx context.Context, interactionID string) (*models.InteractionAnalysis, error) {
	var row models.InteractionAnalysis
	err := r.db.WithContext(ctx).
		Where("interaction_id = ?", interactionID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}
