package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/yogastudio/booking-system/internal/core/domain"
)

func TestSessionDoc_EmptyRosterIsStoredAsArray(t *testing.T) {
	doc := toSessionDoc(&domain.Session{ID: 1, Name: "Yoga"})

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	users, err := bson.Raw(raw).LookupErr("users")
	require.NoError(t, err)
	assert.Equal(t, bson.TypeArray, users.Type, "$pull needs an array, not null")
}

func TestSessionDoc_PreservesAggregate(t *testing.T) {
	teacher := int64(2)
	when := time.Date(2026, 1, 10, 18, 30, 0, 0, time.UTC)
	in := &domain.Session{
		ID:           5,
		Name:         "Pilate",
		Description:  "Core",
		Date:         when,
		TeacherID:    &teacher,
		Participants: []int64{3, 4},
		CreatedAt:    when,
		UpdatedAt:    when,
		Version:      7,
	}

	raw, err := bson.Marshal(toSessionDoc(in))
	require.NoError(t, err)
	var out sessionDoc
	require.NoError(t, bson.Unmarshal(raw, &out))

	assert.Equal(t, in, out.toDomain())
}
