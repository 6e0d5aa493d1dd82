package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/RigelNana/arkstudy/services/admin-service/models"
	"github.com/RigelNana/arkstudy/services/admin-service/repository"
	"github.com/RigelNana/arkstudy/services/admin-service/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	repotest.RunStorageTests(t, "BoltStore", func(t *testing.T) repository.Storage {
		s, err := Open(filepath.Join(t.TempDir(), "edudash.bolt"))
		require.NoError(t, err)
		return s
	})
}

func TestReopenKeepsDataAndSequence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "edudash.bolt")

	s, err := Open(path)
	require.NoError(t, err)
	admin, err := s.CreateUser(ctx, models.InsertUser{Username: "admin", PasswordHash: "hash"})
	require.NoError(t, err)
	board, err := s.CreateBoard(ctx, models.InsertBoard{Name: "CBSE", Type: models.BoardTypeSecondary})
	require.NoError(t, err)
	assert.EqualValues(t, 1, admin.ID)
	assert.EqualValues(t, 2, board.ID)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "hash", got.PasswordHash)

	b, err := s.GetBoard(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, "CBSE", b.Name)

	subject, err := s.CreateSubject(ctx, models.InsertSubject{Name: "Math", BoardID: board.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 3, subject.ID)
}
