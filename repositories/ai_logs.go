package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"law4you/models"
)

const aiLogResponseLimit = 4000

type AILogRepository struct {
	col *mongo.Collection
}

func NewAILogRepository(db *mongo.Database) *AILogRepository {
	return &AILogRepository{col: db.Collection("ai_logs")}
}

// Insert stores one analysis call. Long replies are truncated.
func (r *AILogRepository) Insert(ctx context.Context, log models.AILog) error {
	if log.RequestedAt.IsZero() {
		log.RequestedAt = time.Now()
	}
	if log.CompletedAt.IsZero() {
		log.CompletedAt = time.Now()
	}
	log.OutputResponse = truncate(log.OutputResponse, aiLogResponseLimit)
	_, err := r.col.InsertOne(ctx, log)
	return err
}

// truncate returns s truncated to max runes.
func truncate(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max])
}
