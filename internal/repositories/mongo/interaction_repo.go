package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yoockh/callsight/internal/models"
	"github.com/yoockh/callsight/internal/utils"
)

type InteractionRepository interface {
	Create(ctx context.Context, it *models.Interaction) error
	GetByInteractionID(ctx context.Context, interactionID string) (*models.Interaction, error)
	SetStatus(ctx context.Context, interactionID string, status models.Status) error
}

type interactionRepo struct {
	col *mongo.Collection
}

func NewInteractionRepo(db *mongo.Database) InteractionRepository {
	return &interactionRepo{col: db.Collection("interactions")}
}

func (r *interactionRepo) Create(ctx context.Context, it *models.Interaction) error {
	if it.CreatedAt.IsZero() {
		it.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, it)
	return err
}

func (r *interactionRepo) GetByInteractionID(ctx context.Context, interactionID string) (*models.Interaction, error) {
	var it models.Interaction
	err := r.col.FindOne(ctx, bson.M{"interaction_id": interactionID}).Decode(&it)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &it, err
}

// SetStatus writes the single status field. The update is atomic at the
// row level; no read-modify-write is involved.
func (r *interactionRepo) SetStatus(ctx context.Context, interactionID string, status models.Status) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"interaction_id": interactionID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}
