package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/questionhub/qa-api/internal/core/domain"
	"github.com/questionhub/qa-api/internal/core/ports"
)

const activityCollection = "activities"

// ActivityRepository implements ports.ActivityRepository on the activity
// collection. Entries are append-only.
type ActivityRepository struct {
	coll *mongo.Collection
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

var _ ports.ActivityRepository = (*ActivityRepository)(nil)

type activityDoc struct {
	ActorID   int64  `bson:"actor_id"`
	Actor     string `bson:"actor"`
	Kind      string `bson:"kind"`
	Target    string `bson:"target"`
	CreatedAt int64  `bson:"created_at"`
}

// EnsureIndexes creates the (actor_id, created_at desc) index used by
// ListByActor. It is safe to call on every start.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "actor_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("actor_id_created_at"),
	})
	if err != nil {
		return fmt.Errorf("create activity index: %w", err)
	}
	return nil
}

// Insert persists an entry to the activity collection.
func (r *ActivityRepository) Insert(ctx context.Context, a *domain.Activity) error {
	if _, err := r.coll.InsertOne(ctx, toActivityDoc(a)); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListByActor(ctx context.Context, actorID int64, limit int) ([]*domain.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"actor_id": actorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find activity: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []activityDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode activity: %w", err)
	}

	out := make([]*domain.Activity, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
