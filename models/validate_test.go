package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	names := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestValidateInsertBoard(t *testing.T) {
	require.NoError(t, Validate(InsertBoard{Name: "CBSE", Type: BoardTypeSecondary}))

	err := Validate(InsertBoard{Type: "university"})
	assert.ElementsMatch(t, []string{"name", "type"}, fieldNames(t, err))
}

func TestValidateInsertMaterialEnumeratesFields(t *testing.T) {
	err := Validate(InsertMaterial{Title: "Algebra", FileName: "a.pdf", FileType: "application/pdf"})
	assert.ElementsMatch(t, []string{"subjectId", "boardId", "uploadedBy"}, fieldNames(t, err))
}

func TestValidateInsertPyqPaperRanges(t *testing.T) {
	zero := 0
	in := InsertPyqPaper{
		Title: "2019 Paper", Year: 1800, FileName: "p.pdf",
		Duration: &zero, SubjectID: 1, BoardID: 1, UploadedBy: 1,
	}
	assert.ElementsMatch(t, []string{"year", "duration"}, fieldNames(t, Validate(in)))
}

func TestValidatePatchOnlyChecksPresentFields(t *testing.T) {
	require.NoError(t, Validate(BoardPatch{}))

	empty := ""
	bad := "college"
	err := Validate(BoardPatch{Name: &empty, Type: &bad})
	assert.ElementsMatch(t, []string{"name", "type"}, fieldNames(t, err))
}

func TestNewAppliesDefaults(t *testing.T) {
	b := NewBoard(InsertBoard{Name: "NEET", Type: BoardTypeCompetitive})
	assert.True(t, b.IsActive)

	off := false
	s := NewSubject(InsertSubject{Name: "Physics", BoardID: 2, IsActive: &off})
	assert.False(t, s.IsActive)

	p := NewPyqPaper(InsertPyqPaper{Title: "t", Year: 2020, FileName: "f", SubjectID: 1, BoardID: 1, UploadedBy: 1})
	assert.False(t, p.HasSolutions)
	assert.False(t, p.HasAnswerKey)
}

func TestPatchApplyLeavesOtherFields(t *testing.T) {
	desc := "old"
	n := Note{ID: 7, Title: "Cells", Content: "<p>x</p>", SubjectID: 1, BoardID: 2, Views: 3, CreatedBy: 1}
	title := "Cell Biology"
	NotePatch{Title: &title}.Apply(&n)
	assert.Equal(t, "Cell Biology", n.Title)
	assert.Equal(t, "<p>x</p>", n.Content)
	assert.EqualValues(t, 3, n.Views)

	b := Board{Name: "x", Description: &desc, Type: BoardTypeSecondary, IsActive: true}
	assert.Empty(t, BoardPatch{}.Columns())
	BoardPatch{}.Apply(&b)
	assert.Equal(t, "old", *b.Description)
}
