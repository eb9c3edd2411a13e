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

const collectionTeachers = "teachers"

type TeacherRepository struct {
	col *mongo.Collection
	ids sequence
}

func NewTeacherRepository(db *mongo.Database) *TeacherRepository {
	return &TeacherRepository{col: db.Collection(collectionTeachers), ids: newSequence(db, collectionTeachers)}
}

type teacherDoc struct {
	ID        int64     `bson:"_id"`
	FirstName string    `bson:"first_name"`
	LastName  string    `bson:"last_name"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d teacherDoc) toDomain() *domain.Teacher {
	return &domain.Teacher{
		ID:        d.ID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func (r *TeacherRepository) FindAll(ctx context.Context) ([]*domain.Teacher, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find teachers: %w", err)
	}
	var docs []teacherDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode teachers: %w", err)
	}

	out := make([]*domain.Teacher, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*domain.Teacher, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc teacherDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("find teacher: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TeacherRepository) Create(ctx context.Context, t *domain.Teacher) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return err
	}
	doc := teacherDoc{ID: id, FirstName: t.FirstName, LastName: t.LastName, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert teacher: %w", err)
	}
	t.ID = id
	return nil
}
