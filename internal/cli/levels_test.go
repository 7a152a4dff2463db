package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vytor/ladderflash/internal/editor"
	"github.com/vytor/ladderflash/internal/models"
)

func TestParseEntry(t *testing.T) {
	content, err := parseEntry("  What is 2+2? ::  4 ")
	require.NoError(t, err)
	assert.Equal(t, models.LevelContent{Question: "What is 2+2?", Answer: "4"}, content)

	content, err = parseEntry("a::b::c")
	require.NoError(t, err)
	assert.Equal(t, "b::c", content.Answer, "only the first separator splits")

	_, err = parseEntry("no separator")
	assert.Error(t, err)
}

func TestParseSet(t *testing.T) {
	index, content, err := parseSet("2=q::a")
	require.NoError(t, err)
	assert.Equal(t, 2, index)
	assert.Equal(t, models.LevelContent{Question: "q", Answer: "a"}, content)

	index, content, err = parseSet(" 0 =::answer only")
	require.NoError(t, err)
	assert.Equal(t, 0, index)
	assert.Empty(t, content.Question)

	for _, raw := range []string{"q::a", "x=q::a", "1=qa"} {
		_, _, err := parseSet(raw)
		assert.Error(t, err, raw)
	}
}

func threeLevelDraft() *editor.Draft {
	return &editor.Draft{Entries: []models.LevelContent{
		{Question: "q0", Answer: "a0"},
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
	}}
}

func TestApplyEdits(t *testing.T) {
	draft := threeLevelDraft()

	err := applyEdits(draft,
		[]string{"2=::new a2", "0=new q0::"},
		[]int{1, 1},
		[]string{"q3::a3"},
	)
	require.NoError(t, err)

	assert.Equal(t, []models.LevelContent{
		{Question: "new q0", Answer: "a0"},
		{Question: "q2", Answer: "new a2"},
		{Question: "q3", Answer: "a3"},
	}, draft.Entries)
}

func TestApplyEdits_RemovesHighestFirst(t *testing.T) {
	draft := threeLevelDraft()

	require.NoError(t, applyEdits(draft, nil, []int{0, 2}, nil))
	assert.Equal(t, []models.LevelContent{{Question: "q1", Answer: "a1"}}, draft.Entries)
}

func TestApplyEdits_Errors(t *testing.T) {
	tests := []struct {
		name    string
		sets    []string
		removes []int
		adds    []string
	}{
		{"set out of range", []string{"5=q::a"}, nil, nil},
		{"bad set syntax", []string{"q::a"}, nil, nil},
		{"remove out of range", nil, []int{3}, nil},
		{"remove every level", nil, []int{0, 1, 2}, nil},
		{"bad add syntax", nil, nil, []string{"qa"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, applyEdits(threeLevelDraft(), tt.sets, tt.removes, tt.adds))
		})
	}
}

func TestApplyEdits_LadderFull(t *testing.T) {
	draft := editor.NewDraft()
	adds := make([]string, models.MaxLevels)
	for i := range adds {
		adds[i] = "q::a"
	}

	err := applyEdits(draft, nil, nil, adds)
	require.Error(t, err)
	assert.Len(t, draft.Entries, models.MaxLevels)
}
