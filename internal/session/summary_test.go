package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptutor/internal/mastery"
	"github.com/abhisek/adaptutor/internal/questionbank"
)

func linkedRow(id int, concept, url string) questionbank.Row {
	r := q(id, concept, 1)
	r.ResourceURL = url
	return r
}

func TestRecommendations(t *testing.T) {
	bank := mustBank(t,
		linkedRow(1, "Fractions", "https://example.com/fractions"),
		linkedRow(2, "Fractions", "https://example.com/fractions"),
		linkedRow(3, "Fractions", "not a link"),
		linkedRow(4, "Decimals", "http://example.com/decimals"),
		linkedRow(5, "Ratios", ""),
		linkedRow(6, "Percent", ""),
	)
	st := New(bank, mastery.DefaultParams())
	st.Mastery.Set("Fractions", 0.4)
	st.Mastery.Set("Decimals", 0.6) // exactly at threshold: excluded
	st.Mastery.Set("Ratios", 0.1)
	st.Mastery.Set("Percent", 0.4)

	recs := Recommendations(bank, st)
	require.Len(t, recs, 3)

	assert.Equal(t, "Ratios", recs[0].Concept)
	assert.Empty(t, recs[0].ResourceURLs)

	// Equal mastery keeps bank order.
	assert.Equal(t, "Fractions", recs[1].Concept)
	assert.Equal(t, []string{"https://example.com/fractions"}, recs[1].ResourceURLs)
	assert.Equal(t, "Percent", recs[2].Concept)
}

func TestRecommendations_NoneWhenMastered(t *testing.T) {
	bank := fractionsBank(t)
	st := New(bank, mastery.DefaultParams())
	st.Mastery.Set("Fractions", 0.95)

	assert.Empty(t, Recommendations(bank, st))
}

func TestRecommendations_CustomThreshold(t *testing.T) {
	bank := fractionsBank(t)
	st := New(bank, mastery.DefaultParams())
	st.FocusThreshold = 0.1

	assert.Empty(t, Recommendations(bank, st))
}

func TestHistoryView(t *testing.T) {
	bank := fractionsBank(t)
	st := New(bank, mastery.DefaultParams())

	Next(bank, st)
	_, err := Submit(bank, st, 1, "a")
	require.NoError(t, err)
	Next(bank, st)
	_, err = Submit(bank, st, 2, "b")
	require.NoError(t, err)

	view := HistoryView(bank, st)
	require.Len(t, view, 2)
	assert.Equal(t, 1, view[0].QuestionID)
	assert.Equal(t, 1, view[0].Difficulty)
	assert.True(t, view[0].Correct)
	assert.Equal(t, 2, view[1].QuestionID)
	assert.Equal(t, 4, view[1].Difficulty)
	assert.Equal(t, "Fractions", view[1].Concept)
	assert.Equal(t, "Question 2", view[1].Question)
	assert.False(t, view[1].Correct)
}

func TestBuildSummary(t *testing.T) {
	bank := mustBank(t, q(1, "Fractions", 1), q(2, "Fractions", 2), q(3, "Decimals", 1))
	st := New(bank, mastery.DefaultParams())

	for i := 0; i < 3; i++ {
		cur := Next(bank, st)
		require.NotNil(t, cur)
		if cur.ID == 3 {
			_, err := Skip(bank, st, cur.ID)
			require.NoError(t, err)
			continue
		}
		_, err := Submit(bank, st, cur.ID, "a")
		require.NoError(t, err)
	}

	sum := BuildSummary(st)
	assert.Equal(t, 2, sum.Answered)
	assert.Equal(t, 2, sum.Correct)
	assert.Equal(t, 1, sum.Skipped)
	assert.InDelta(t, 1.0, sum.Accuracy, 1e-9)
	require.Len(t, sum.Concepts, 2)
	assert.Equal(t, "Fractions", sum.Concepts[0].Concept)
	assert.Equal(t, 2, sum.Concepts[0].Attempted)
	assert.Equal(t, "Decimals", sum.Concepts[1].Concept)
	assert.Equal(t, 0, sum.Concepts[1].Attempted)
	assert.InDelta(t, 0.2, sum.Concepts[1].Mastery, 1e-9)
}

func TestBuildSummary_Empty(t *testing.T) {
	bank := fractionsBank(t)
	sum := BuildSummary(New(bank, mastery.DefaultParams()))
	assert.Zero(t, sum.Answered)
	assert.Zero(t, sum.Accuracy)
}
