package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yogastudio/booking-system/internal/core/domain"
)

const collectionSessions = "sessions"

// SessionRepository stores each session with its roster as a single document.
// Writes are guarded by the document's version field.
type SessionRepository struct {
	col *mongo.Collection
	ids sequence
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{col: db.Collection(collectionSessions), ids: newSequence(db, collectionSessions)}
}

type sessionDoc struct {
	ID          int64     `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Date        time.Time `bson:"date"`
	TeacherID   *int64    `bson:"teacher_id"`
	Users       []int64   `bson:"users"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
	Version     int64     `bson:"version"`
}

func toSessionDoc(s *domain.Session) sessionDoc {
	users := s.Participants
	if users == nil {
		users = []int64{}
	}
	return sessionDoc{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Date:        s.Date,
		TeacherID:   s.TeacherID,
		Users:       users,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Version:     s.Version,
	}
}

func (d sessionDoc) toDomain() *domain.Session {
	return &domain.Session{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		Date:         d.Date.UTC(),
		TeacherID:    d.TeacherID,
		Participants: d.Users,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
		Version:      d.Version,
	}
}

func (r *SessionRepository) FindAll(ctx context.Context) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find sessions: %w", err)
	}
	var docs []sessionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}

	out := make([]*domain.Session, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id int64) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc sessionDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return err
	}
	doc := toSessionDoc(s)
	doc.ID = id
	doc.Version = 1

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	s.ID = id
	s.Version = 1
	return nil
}

// Update replaces the document only if its stored version still matches
// s.Version. Losing that race yields domain.ErrConcurrentUpdate.
func (r *SessionRepository) Update(ctx context.Context, s *domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toSessionDoc(s)
	doc.Version = s.Version + 1

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": s.ID, "version": s.Version}, doc)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.col.CountDocuments(ctx, bson.M{"_id": s.ID}, options.Count().SetLimit(1))
		if err != nil {
			return fmt.Errorf("update session: %w", err)
		}
		if n == 0 {
			return domain.ErrSessionNotFound
		}
		return domain.ErrConcurrentUpdate
	}

	s.Version = doc.Version
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// RemoveParticipantEverywhere pulls userID from every roster and bumps the
// version of each touched session so in-flight roster writers retry.
func (r *SessionRepository) RemoveParticipantEverywhere(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateMany(ctx,
		bson.M{"users": userID},
		bson.M{
			"$pull": bson.M{"users": userID},
			"$inc":  bson.M{"version": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("detach user from sessions: %w", err)
	}
	return nil
}

// EnsureIndexes creates the roster lookup index.
func (r *SessionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "users", Value: 1}}},
	})
	return err
}
