package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/domain/team"
)

// TeamMemberModelSQLite is a SQLite-compatible model for testing
type TeamMemberModelSQLite struct {
	ID           string    `gorm:"primaryKey"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PhoneNumber  string
	PasswordHash string `gorm:"not null"`
}

func (TeamMemberModelSQLite) TableName() string {
	return "team_members"
}

func setupTeamMemberTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&TeamMemberModelSQLite{})
	require.NoError(t, err)

	return db
}

func mustCreateMember(t *testing.T, repo *GormTeamMemberRepository, name, email string) *team.Member {
	t.Helper()
	member, err := team.NewMember(name, email, "0300-0000000", "$2a$10$hash")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), member))
	return member
}

func TestGormTeamMemberRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and finds by ID", func(t *testing.T) {
		repo := NewGormTeamMemberRepository(setupTeamMemberTestDB(t))

		created := mustCreateMember(t, repo, "Collector One", "collector1@society.pk")

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "Collector One", found.Name)
	})

	t.Run("finds by email regardless of case", func(t *testing.T) {
		repo := NewGormTeamMemberRepository(setupTeamMemberTestDB(t))

		created := mustCreateMember(t, repo, "Collector One", "collector1@society.pk")

		found, err := repo.FindByEmail(ctx, "Collector1@Society.PK")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)

		_, err = repo.FindByEmail(ctx, "missing@society.pk")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lists members ordered by name", func(t *testing.T) {
		repo := NewGormTeamMemberRepository(setupTeamMemberTestDB(t))

		mustCreateMember(t, repo, "Zahid", "zahid@society.pk")
		mustCreateMember(t, repo, "Ahmed", "ahmed@society.pk")

		members, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, "Ahmed", members[0].Name)
		assert.Equal(t, "Zahid", members[1].Name)
	})

	t.Run("delete missing member returns not found", func(t *testing.T) {
		repo := NewGormTeamMemberRepository(setupTeamMemberTestDB(t))

		err := repo.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
