package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/probooking/probooking-api/internal/core/domain"
)

const auditCollection = "login_events"

// AuditRepository persists the login attempt trail in MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoLoginEvent struct {
	ID        string `bson:"_id"`
	Email     string `bson:"email"`
	Role      string `bson:"role"`
	Success   bool   `bson:"success"`
	Reason    string `bson:"reason,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.LoginEvent) error {
	doc := mongoLoginEvent{
		ID:        event.ID,
		Email:     event.Email,
		Role:      string(event.Role),
		Success:   event.Success,
		Reason:    event.Reason,
		Timestamp: event.Timestamp.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert login event: %w", err)
	}
	return nil
}

// FindRecent returns the newest login events, most recent first.
func (r *AuditRepository) FindRecent(ctx context.Context, limit int) ([]domain.LoginEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find login events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoLoginEvent
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode login events: %w", err)
	}

	events := make([]domain.LoginEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, domain.LoginEvent{
			ID:        d.ID,
			Email:     d.Email,
			Role:      domain.Role(d.Role),
			Success:   d.Success,
			Reason:    d.Reason,
			Timestamp: unixToTime(d.Timestamp),
		})
	}
	return events, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
