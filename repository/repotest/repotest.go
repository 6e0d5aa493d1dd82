// Package repotest 是 repository.Storage 的通用测试集，每个实现都应该跑一遍。
package repotest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/RigelNana/arkstudy/services/admin-service/models"
	"github.com/RigelNana/arkstudy/services/admin-service/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory 为每个子测试创建一个空的存储
type Factory func(t *testing.T) repository.Storage

// RunStorageTests 对一个 Storage 实现运行全部用例
func RunStorageTests(t *testing.T, name string, factory Factory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Users", func(t *testing.T) { testUsers(t, open(t, factory)) })
		t.Run("BoardLifecycle", func(t *testing.T) { testBoardLifecycle(t, open(t, factory)) })
		t.Run("SubjectFiltering", func(t *testing.T) { testSubjectFiltering(t, open(t, factory)) })
		t.Run("MaterialFiltering", func(t *testing.T) { testMaterialFiltering(t, open(t, factory)) })
		t.Run("NoteViews", func(t *testing.T) { testNoteViews(t, open(t, factory)) })
		t.Run("ConcurrentNoteViews", func(t *testing.T) { testConcurrentNoteViews(t, open(t, factory)) })
		t.Run("PyqPapers", func(t *testing.T) { testPyqPapers(t, open(t, factory)) })
		t.Run("NullClearsOptionalFields", func(t *testing.T) { testNullClearsOptionalFields(t, open(t, factory)) })
		t.Run("DanglingReferences", func(t *testing.T) { testDanglingReferences(t, open(t, factory)) })
		t.Run("Counts", func(t *testing.T) { testCounts(t, open(t, factory)) })
		t.Run("EmptyListsAreNotNil", func(t *testing.T) { testEmptyLists(t, open(t, factory)) })
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

func open(t *testing.T, factory Factory) repository.Storage {
	t.Helper()
	s := factory(t)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// sameCreatedAt 检查时间戳接近后统一为同一个值，方便整体比较结构体
func sameCreatedAt(t *testing.T, want time.Time, got *time.Time) {
	t.Helper()
	require.False(t, want.IsZero(), "createdAt must be assigned")
	assert.WithinDuration(t, want, *got, time.Second)
	*got = want
}

func ids[T any](rows []T, id func(T) int64) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, id(r))
	}
	return out
}

func str(s string) *string { return &s }

func newBoard(t *testing.T, s repository.Storage, name string) *models.Board {
	t.Helper()
	b, err := s.CreateBoard(context.Background(), models.InsertBoard{Name: name, Type: models.BoardTypeSecondary})
	require.NoError(t, err)
	return b
}

func newNote(t *testing.T, s repository.Storage, subjectID, boardID int64) *models.Note {
	t.Helper()
	n, err := s.CreateNote(context.Background(), models.InsertNote{
		Title: "Photosynthesis", Content: "<p>light</p>", SubjectID: subjectID, BoardID: boardID, CreatedBy: 1,
	})
	require.NoError(t, err)
	return n
}

// --------------------------------------------------------------------------
// Test cases
// --------------------------------------------------------------------------

func testUsers(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	u, err := s.CreateUser(ctx, models.InsertUser{Username: "admin", PasswordHash: "$2a$10$hash"})
	require.NoError(t, err)
	assert.Positive(t, u.ID)

	got, err := s.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, u, got)

	got, err = s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$hash", got.PasswordHash)

	_, err = s.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func testBoardLifecycle(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	in := models.InsertBoard{Name: "CBSE", Description: str("Central Board"), Type: models.BoardTypeSecondary}
	created, err := s.CreateBoard(ctx, in)
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.True(t, created.IsActive)

	got, err := s.GetBoard(ctx, created.ID)
	require.NoError(t, err)
	sameCreatedAt(t, created.CreatedAt, &got.CreatedAt)
	assert.Equal(t, created, got)

	// 部分更新只改指定字段
	inactive := false
	updated, err := s.UpdateBoard(ctx, created.ID, models.BoardPatch{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "CBSE", updated.Name)
	assert.Equal(t, "Central Board", *updated.Description)
	assert.Equal(t, models.BoardTypeSecondary, updated.Type)
	sameCreatedAt(t, created.CreatedAt, &updated.CreatedAt)

	// 空 patch 不报错
	_, err = s.UpdateBoard(ctx, created.ID, models.BoardPatch{})
	require.NoError(t, err)

	_, err = s.UpdateBoard(ctx, created.ID+1000, models.BoardPatch{IsActive: &inactive})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	deleted, err := s.DeleteBoard(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.GetBoard(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	deleted, err = s.DeleteBoard(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func testSubjectFiltering(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	var onBoard1 []int64
	for i, boardID := range []int64{1, 2, 1, 1, 2} {
		sub, err := s.CreateSubject(ctx, models.InsertSubject{Name: "Subject", BoardID: boardID})
		require.NoError(t, err, "subject %d", i)
		if boardID == 1 {
			onBoard1 = append([]int64{sub.ID}, onBoard1...)
		}
	}

	got, err := s.ListSubjectsByBoard(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, onBoard1, ids(got, func(v models.Subject) int64 { return v.ID }))
	for _, v := range got {
		assert.EqualValues(t, 1, v.BoardID)
	}

	all, err := s.ListSubjects(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i-1].ID, all[i].ID, "subjects must be newest first")
	}

	name := "Chemistry"
	updated, err := s.UpdateSubject(ctx, all[0].ID, models.SubjectPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Chemistry", updated.Name)
	assert.Equal(t, all[0].BoardID, updated.BoardID)
}

func testMaterialFiltering(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	mk := func(subjectID, boardID int64) *models.Material {
		m, err := s.CreateMaterial(ctx, models.InsertMaterial{
			Title: "Notes", FileName: "notes.pdf", FileSize: 2048, FileType: "application/pdf",
			SubjectID: subjectID, BoardID: boardID, UploadedBy: 1,
		})
		require.NoError(t, err)
		return m
	}
	a := mk(10, 1)
	b := mk(11, 1)
	c := mk(10, 2)

	got, err := s.GetMaterial(ctx, a.ID)
	require.NoError(t, err)
	sameCreatedAt(t, a.CreatedAt, &got.CreatedAt)
	assert.Equal(t, a, got)

	bySubject, err := s.ListMaterialsBySubject(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{c.ID, a.ID}, ids(bySubject, func(v models.Material) int64 { return v.ID }))

	byBoard, err := s.ListMaterialsByBoard(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID, a.ID}, ids(byBoard, func(v models.Material) int64 { return v.ID }))

	title := "Revised notes"
	updated, err := s.UpdateMaterial(ctx, b.ID, models.MaterialPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Revised notes", updated.Title)
	assert.Equal(t, "notes.pdf", updated.FileName)
	assert.EqualValues(t, 2048, updated.FileSize)

	ok, err := s.DeleteMaterial(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	all, err := s.ListMaterials(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func testNoteViews(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	n := newNote(t, s, 3, 1)
	assert.Zero(t, n.Views)

	for i := 1; i <= 5; i++ {
		views, err := s.IncrementNoteViews(ctx, n.ID)
		require.NoError(t, err)
		assert.EqualValues(t, i, views)
	}
	got, err := s.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, got.Views)

	// 更新其他字段不影响浏览数
	title := "Respiration"
	updated, err := s.UpdateNote(ctx, n.ID, models.NotePatch{Title: &title})
	require.NoError(t, err)
	assert.EqualValues(t, 5, updated.Views)
	assert.Equal(t, "<p>light</p>", updated.Content)

	_, err = s.IncrementNoteViews(ctx, n.ID+1000)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	other := newNote(t, s, 4, 2)
	bySubject, err := s.ListNotesBySubject(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, []int64{other.ID}, ids(bySubject, func(v models.Note) int64 { return v.ID }))
	byBoard, err := s.ListNotesByBoard(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{n.ID}, ids(byBoard, func(v models.Note) int64 { return v.ID }))
	all, err := s.ListNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{other.ID, n.ID}, ids(all, func(v models.Note) int64 { return v.ID }))

	ok, err := s.DeleteNote(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func testConcurrentNoteViews(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	n := newNote(t, s, 1, 1)

	const workers = 20
	var wg sync.WaitGroup
	results := make([]int64, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = s.IncrementNoteViews(ctx, n.ID)
		}(i)
	}
	wg.Wait()
	want := make([]int64, 0, workers)
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		want = append(want, int64(i+1))
	}
	// 每次调用拿到的新值各不相同
	assert.ElementsMatch(t, want, results)

	got, err := s.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.EqualValues(t, workers, got.Views)
}

func testNullClearsOptionalFields(t *testing.T, s repository.Storage) {
	ctx := context.Background()

	b, err := s.CreateBoard(ctx, models.InsertBoard{Name: "ICSE", Description: str("Indian Certificate"), Type: models.BoardTypeSecondary})
	require.NoError(t, err)
	updated, err := s.UpdateBoard(ctx, b.ID, models.BoardPatch{Description: models.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, updated.Description)
	got, err := s.GetBoard(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Description)
	assert.Equal(t, "ICSE", got.Name)

	sub, err := s.CreateSubject(ctx, models.InsertSubject{Name: "Chemistry", Description: str("Organic"), BoardID: b.ID})
	require.NoError(t, err)
	gotSubject, err := s.UpdateSubject(ctx, sub.ID, models.SubjectPatch{Description: models.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, gotSubject.Description)

	m, err := s.CreateMaterial(ctx, models.InsertMaterial{
		Title: "Notes", Description: str("ch 1"), FileName: "a.pdf", FileSize: 1, FileType: "application/pdf",
		SubjectID: sub.ID, BoardID: b.ID, UploadedBy: 1,
	})
	require.NoError(t, err)
	gotMaterial, err := s.UpdateMaterial(ctx, m.ID, models.MaterialPatch{Description: models.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, gotMaterial.Description)

	duration, questions := 180, 60
	p, err := s.CreatePyqPaper(ctx, models.InsertPyqPaper{
		Title: "2021", Year: 2021, FileName: "p.pdf", FileSize: 1, Duration: &duration, TotalQuestions: &questions,
		SubjectID: sub.ID, BoardID: b.ID, UploadedBy: 1,
	})
	require.NoError(t, err)
	_, err = s.UpdatePyqPaper(ctx, p.ID, models.PyqPaperPatch{Duration: models.Null[int]()})
	require.NoError(t, err)
	gotPaper, err := s.GetPyqPaper(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, gotPaper.Duration)
	require.NotNil(t, gotPaper.TotalQuestions)
	assert.Equal(t, 60, *gotPaper.TotalQuestions)
}

func testPyqPapers(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	duration := 180
	mk := func(year int, subjectID, boardID int64) *models.PyqPaper {
		yes := true
		p, err := s.CreatePyqPaper(ctx, models.InsertPyqPaper{
			Title: "Board Exam", Year: year, FileName: "paper.pdf", FileSize: 100,
			Duration: &duration, SubjectID: subjectID, BoardID: boardID, HasSolutions: &yes, UploadedBy: 1,
		})
		require.NoError(t, err)
		return p
	}
	p2019 := mk(2019, 1, 1)
	p2020 := mk(2020, 2, 1)
	p2019b := mk(2019, 2, 2)

	assert.True(t, p2019.HasSolutions)
	assert.False(t, p2019.HasAnswerKey)
	assert.Nil(t, p2019.TotalQuestions)

	got, err := s.GetPyqPaper(ctx, p2019.ID)
	require.NoError(t, err)
	sameCreatedAt(t, p2019.CreatedAt, &got.CreatedAt)
	assert.Equal(t, p2019, got)

	byYear, err := s.ListPyqPapersByYear(ctx, 2019)
	require.NoError(t, err)
	assert.Equal(t, []int64{p2019b.ID, p2019.ID}, ids(byYear, func(v models.PyqPaper) int64 { return v.ID }))

	bySubject, err := s.ListPyqPapersBySubject(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{p2019b.ID, p2020.ID}, ids(bySubject, func(v models.PyqPaper) int64 { return v.ID }))

	byBoard, err := s.ListPyqPapersByBoard(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{p2020.ID, p2019.ID}, ids(byBoard, func(v models.PyqPaper) int64 { return v.ID }))

	questions := 90
	answerKey := true
	updated, err := s.UpdatePyqPaper(ctx, p2020.ID, models.PyqPaperPatch{TotalQuestions: models.NullableOf(questions), HasAnswerKey: &answerKey})
	require.NoError(t, err)
	require.NotNil(t, updated.TotalQuestions)
	assert.Equal(t, 90, *updated.TotalQuestions)
	assert.True(t, updated.HasAnswerKey)
	assert.True(t, updated.HasSolutions)
	assert.Equal(t, 2020, updated.Year)

	ok, err := s.DeletePyqPaper(ctx, p2020.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	all, err := s.ListPyqPapers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// 删除考试局不会级联删除科目
func testDanglingReferences(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	board := newBoard(t, s, "CBSE")
	sub, err := s.CreateSubject(ctx, models.InsertSubject{Name: "Math", BoardID: board.ID})
	require.NoError(t, err)

	ok, err := s.DeleteBoard(ctx, board.ID)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := s.GetSubject(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, board.ID, got.BoardID)

	byBoard, err := s.ListSubjectsByBoard(ctx, board.ID)
	require.NoError(t, err)
	assert.Len(t, byBoard, 1)

	ok, err = s.DeleteSubject(ctx, sub.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func testCounts(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	newBoard(t, s, "A")
	b := newBoard(t, s, "B")
	_, err := s.CreateMaterial(ctx, models.InsertMaterial{
		Title: "m", FileName: "m.pdf", FileType: "application/pdf", SubjectID: 1, BoardID: 1, UploadedBy: 1,
	})
	require.NoError(t, err)
	newNote(t, s, 1, 1)

	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.EntityCounts{Boards: 2, Materials: 1, PyqPapers: 0}, counts)

	_, err = s.DeleteBoard(ctx, b.ID)
	require.NoError(t, err)
	counts, err = s.Counts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts.Boards)
}

func testEmptyLists(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	boards, err := s.ListBoards(ctx)
	require.NoError(t, err)
	assert.NotNil(t, boards)
	assert.Empty(t, boards)

	papers, err := s.ListPyqPapersByYear(ctx, 2001)
	require.NoError(t, err)
	assert.NotNil(t, papers)
}
