package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableDecodesThreeStates(t *testing.T) {
	var absent, null, value BoardPatch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x"}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"description":null}`), &null))
	require.NoError(t, json.Unmarshal([]byte(`{"description":"Central Board"}`), &value))

	assert.False(t, absent.Description.Set)
	assert.True(t, null.Description.Set)
	assert.Nil(t, null.Description.Value)
	require.True(t, value.Description.Set)
	require.NotNil(t, value.Description.Value)
	assert.Equal(t, "Central Board", *value.Description.Value)

	var bad PyqPaperPatch
	assert.Error(t, json.Unmarshal([]byte(`{"duration":"abc"}`), &bad))
}

func TestNullPatchClearsField(t *testing.T) {
	desc := "old"
	b := Board{Name: "CBSE", Description: &desc, Type: BoardTypeSecondary}

	patch := BoardPatch{Description: Null[string]()}
	patch.Apply(&b)
	assert.Nil(t, b.Description)
	cols := patch.Columns()
	assert.Contains(t, cols, "description")
	assert.Nil(t, cols["description"])

	BoardPatch{Description: NullableOf("new")}.Apply(&b)
	require.NotNil(t, b.Description)
	assert.Equal(t, "new", *b.Description)

	duration := 90
	p := PyqPaper{Duration: &duration}
	PyqPaperPatch{Duration: Null[int](), TotalQuestions: NullableOf(40)}.Apply(&p)
	assert.Nil(t, p.Duration)
	require.NotNil(t, p.TotalQuestions)
	assert.Equal(t, 40, *p.TotalQuestions)
}

func TestValidatePyqPaperPatchNullableRanges(t *testing.T) {
	require.NoError(t, Validate(PyqPaperPatch{Duration: Null[int]()}))
	require.NoError(t, Validate(PyqPaperPatch{Duration: NullableOf(120)}))

	err := Validate(PyqPaperPatch{Duration: NullableOf(0), TotalQuestions: NullableOf(-1)})
	assert.ElementsMatch(t, []string{"duration", "totalQuestions"}, fieldNames(t, err))
}
