package memory

import (
	"context"
	"testing"
	"time"

	"github.com/RigelNana/arkstudy/services/admin-service/models"
	"github.com/RigelNana/arkstudy/services/admin-service/repository"
	"github.com/RigelNana/arkstudy/services/admin-service/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	repotest.RunStorageTests(t, "MemoryStore", func(t *testing.T) repository.Storage {
		return New()
	})
}

// 所有实体共用一个 id 序列
func TestSharedSequence(t *testing.T) {
	ctx := context.Background()
	s := New()

	board, err := s.CreateBoard(ctx, models.InsertBoard{Name: "CBSE", Type: models.BoardTypeSecondary})
	require.NoError(t, err)
	assert.EqualValues(t, 1, board.ID)

	subject, err := s.CreateSubject(ctx, models.InsertSubject{Name: "Math", BoardID: board.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, subject.ID)

	ok, err := s.DeleteBoard(ctx, board.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.GetSubject(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.BoardID)

	// 删除后 id 不会复用
	next, err := s.CreateBoard(ctx, models.InsertBoard{Name: "JEE", Type: models.BoardTypeCompetitive})
	require.NoError(t, err)
	assert.EqualValues(t, 3, next.ID)
}

func TestWithClock(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return fixed }))

	n, err := s.CreateNote(context.Background(), models.InsertNote{
		Title: "t", Content: "c", SubjectID: 1, BoardID: 1, CreatedBy: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, fixed, n.CreatedAt)
}

func TestReturnedRowsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	b, err := s.CreateBoard(ctx, models.InsertBoard{Name: "CBSE", Type: models.BoardTypeSecondary})
	require.NoError(t, err)

	b.Name = "mutated"
	got, err := s.GetBoard(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "CBSE", got.Name)
}

func TestTableCompaction(t *testing.T) {
	tbl := newTable[models.Board]()
	for i := int64(1); i <= 100; i++ {
		tbl.put(i, models.Board{ID: i})
	}
	for i := int64(1); i <= 80; i++ {
		require.True(t, tbl.remove(i))
	}
	assert.False(t, tbl.remove(1))
	assert.Equal(t, 20, tbl.len())
	assert.Less(t, len(tbl.entries), 100)

	rows := tbl.list(nil)
	require.Len(t, rows, 20)
	assert.EqualValues(t, 100, rows[0].ID)
	assert.EqualValues(t, 81, rows[19].ID)

	row, ok := tbl.at(90)
	require.True(t, ok)
	assert.EqualValues(t, 90, row.ID)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	s := New()
	opts := repository.SeedOptions{AdminUsername: "admin", AdminPassword: "admin123", DemoData: true}

	admin, err := repository.Seed(ctx, s, opts)
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
	assert.NotEqual(t, "admin123", admin.PasswordHash)

	boards, err := s.ListBoards(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 3)
	assert.Equal(t, "NEET", boards[0].Name)

	subjects, err := s.ListSubjectsByBoard(ctx, boards[2].ID)
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "Mathematics", subjects[0].Name)

	// 第二次调用不重复写入
	again, err := repository.Seed(ctx, s, opts)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)
	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, counts.Boards)
}
