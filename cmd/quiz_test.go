package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/laban/internal/assessment"
)

func TestAnswerFor(t *testing.T) {
	opts := []assessment.Option{{Key: "A", Text: "Đi dự tiệc"}, {Key: "B", Text: "Ở nhà đọc sách"}}

	assert.Equal(t, assessment.Answer("A"), answerFor(opts, "a"))
	assert.Equal(t, assessment.Answer("B"), answerFor(opts, "  ở nhà ĐỌC sách "))
	assert.Equal(t, assessment.Answer("xyz"), answerFor(opts, "xyz"))
}

func TestAskQuiz(t *testing.T) {
	sc, err := assessment.Lookup("disc")
	require.NoError(t, err)
	n := len(sc.Questions())

	// One invalid line is re-asked, then every question gets "C".
	input := "Z\n" + strings.Repeat("c\n", n)
	var out bytes.Buffer
	res, err := askQuiz(sc, assessment.Student{Name: "Lan"}, strings.NewReader(input), &out)
	require.NoError(t, err)
	assert.Equal(t, "S", res.Classification.Code)
	assert.Contains(t, out.String(), "✗")
	assert.Contains(t, out.String(), "Câu 1/")
}

func TestAskQuizAbandon(t *testing.T) {
	sc, err := assessment.Lookup("eq")
	require.NoError(t, err)

	_, err = askQuiz(sc, assessment.Student{}, strings.NewReader("3\nq\n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, errQuizAbandoned)

	_, err = askQuiz(sc, assessment.Student{}, strings.NewReader("3\n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, errQuizAbandoned)
}
