package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/adaptutor/internal/mastery"
	"github.com/abhisek/adaptutor/internal/questionbank"
	"github.com/abhisek/adaptutor/internal/session"
)

const testCSV = `id,concept,difficulty,question,option_a,option_b,option_c,option_d,correct,explanation,resource_url
1,Fractions,2,"What is 1/2 + 1/2?",1,2,1/4,0,a,Halves add to a whole.,https://example.org/fractions
2,Decimals,1,"Largest of 0.5 0.25 0.75 0.1?",0.5,0.25,0.75,0.1,c,,
`

// isolate keeps config discovery and the default paths inside a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func writeBank(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "questions.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "off"))
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "adaptutor (devel)")
}

func TestQuizCommand_RecordsHistory(t *testing.T) {
	dir := isolate(t)
	bank := writeBank(t, dir, testCSV)
	db := filepath.Join(dir, "history.db")

	out, err := execute(t, "a\nn\nb\nq\n", "quiz", "--bank", bank, "--history-db", db)
	require.NoError(t, err)

	assert.Contains(t, out, "What is 1/2 + 1/2?")
	assert.Contains(t, out, "✓ Correct!")
	assert.Contains(t, out, "Fractions mastery: 20% → 62%")
	assert.Contains(t, out, "Learn this concept: https://example.org/fractions")
	assert.Contains(t, out, "Largest of 0.5 0.25 0.75 0.1?")
	assert.Contains(t, out, "✗ Not quite. The answer is c) 0.75.")
	assert.Contains(t, out, "Answered 2, correct 1 (50%), skipped 0")
	assert.Contains(t, out, "1/1  mastered")

	out, err = execute(t, "", "history", "--history-db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Session")
	assert.NotContains(t, out, "No sessions recorded.")

	out, err = execute(t, "", "history", "--history-db", db, "--answers")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	// Newest first.
	assert.Contains(t, lines[1], "Decimals")
	assert.Contains(t, lines[1], "wrong")
	assert.Contains(t, lines[2], "Fractions")
	assert.Contains(t, lines[2], "right")
}

func TestHistoryCommand_LimitCountsSessions(t *testing.T) {
	dir := isolate(t)
	bank := writeBank(t, dir, testCSV)
	db := filepath.Join(dir, "history.db")

	for range 3 {
		_, err := execute(t, "a\nq\n", "quiz", "--bank", bank, "--history-db", db)
		require.NoError(t, err)
	}

	out, err := execute(t, "", "history", "--history-db", db, "--limit", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// Header plus one row per session.
	assert.Len(t, lines, 3)

	out, err = execute(t, "", "history", "--history-db", db, "--limit", "0")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 4)
}

func TestQuizCommand_NothingAnsweredRecordsNothing(t *testing.T) {
	dir := isolate(t)
	bank := writeBank(t, dir, testCSV)
	db := filepath.Join(dir, "history.db")

	_, err := execute(t, "q\n", "quiz", "--bank", bank, "--history-db", db)
	require.NoError(t, err)

	_, err = os.Stat(db)
	assert.True(t, os.IsNotExist(err))
}

func TestHistoryCommand_Disabled(t *testing.T) {
	isolate(t)
	_, err := execute(t, "", "history", "--history-db", "off")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}

func TestBankList(t *testing.T) {
	dir := isolate(t)
	bank := writeBank(t, dir, testCSV)

	out, err := execute(t, "", "bank", "list", "--bank", bank)
	require.NoError(t, err)
	assert.Contains(t, out, "What is 1/2 + 1/2?")
	assert.Contains(t, out, "2 questions")

	out, err = execute(t, "", "bank", "list", "--bank", bank, "--concept", "Decimals")
	require.NoError(t, err)
	assert.NotContains(t, out, "What is 1/2 + 1/2?")
	assert.Contains(t, out, "1 questions")

	_, err = execute(t, "", "bank", "list", "--bank", bank, "--concept", "Geometry")
	require.Error(t, err)
}

func TestBankCheck(t *testing.T) {
	dir := isolate(t)

	clean := writeBank(t, dir, testCSV)
	out, err := execute(t, "", "bank", "check", "--bank", clean)
	require.NoError(t, err)
	assert.Contains(t, out, "2 questions across 2 concepts")
	assert.Contains(t, out, "No rows rejected.")

	dirty := writeBank(t, dir, testCSV+"3,Fractions,1,Q?,a,b,c,d,z,,\n")
	out, err = execute(t, "", "bank", "check", "--bank", dirty)
	require.Error(t, err)
	assert.Contains(t, out, "1 rows rejected:")
	assert.Contains(t, out, "row 4 (id 3): correct")
}

func TestBankCheck_StrictFails(t *testing.T) {
	dir := isolate(t)
	dirty := writeBank(t, dir, testCSV+"3,Fractions,1,Q?,a,b,c,d,z,,\n")

	_, err := execute(t, "", "bank", "check", "--bank", dirty, "--strict")
	require.Error(t, err)
}

func TestMissingBank(t *testing.T) {
	dir := isolate(t)
	_, err := execute(t, "", "bank", "list", "--bank", filepath.Join(dir, "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load bank")
}

func newLineSession(t *testing.T) (*questionbank.Bank, *session.State) {
	t.Helper()
	rows, err := questionbank.ReadCSV(strings.NewReader(testCSV))
	require.NoError(t, err)
	bank, err := questionbank.New(rows)
	require.NoError(t, err)
	return bank, session.New(bank, mastery.DefaultParams())
}

func TestRunLineQuiz_Prompts(t *testing.T) {
	bank, st := newLineSession(t)
	var out bytes.Buffer

	err := runLineQuiz(strings.NewReader("x\nn\na\nb\nn\n"), &out, bank, st, zap.NewNop())
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Answer with a, b, c or d")
	assert.Contains(t, got, "Answer with a-d or skip with s first.")
	assert.Contains(t, got, "Already answered. Enter n for the next question.")
	require.Len(t, st.History, 1)
	assert.Equal(t, "a", st.History[0].Answer)
	assert.Equal(t, 2, st.Current.ID)
}

func TestRunLineQuiz_SkipAndExhaust(t *testing.T) {
	bank, st := newLineSession(t)
	var out bytes.Buffer

	err := runLineQuiz(strings.NewReader("s\ns\nrec\n"), &out, bank, st, zap.NewNop())
	require.NoError(t, err)

	got := out.String()
	assert.Equal(t, 2, st.Skipped)
	assert.Nil(t, st.Current)
	assert.Contains(t, got, "No more questions.")
	assert.Contains(t, got, "Focus on:")
	assert.Contains(t, got, "https://example.org/fractions")
	assert.Contains(t, got, "skipped 2")
}

func TestRunLineQuiz_ResetAndHistory(t *testing.T) {
	bank, st := newLineSession(t)
	var out bytes.Buffer

	err := runLineQuiz(strings.NewReader("h\na\nh\nr\nq\n"), &out, bank, st, zap.NewNop())
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "No answers yet.")
	assert.Contains(t, got, "Fractions")
	assert.Contains(t, got, "Session reset.")
	assert.Empty(t, st.History)
	assert.Equal(t, 1, st.Current.ID)
}
