package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerOptions(t *testing.T) {
	for _, s := range Scorers() {
		t.Run(string(s.Instrument()), func(t *testing.T) {
			for _, q := range s.Questions() {
				opts := AnswerOptions(s.Instrument(), q)
				require.NotEmpty(t, opts, q.ID)

				// Every offered key must be accepted by the scorer.
				for _, o := range opts {
					_, err := s.Apply(s.Empty(), q, Answer(o.Key))
					assert.NoError(t, err, "%s key %s", q.ID, o.Key)
				}
			}
		})
	}
}

func TestAnswerOptions_LikertKeys(t *testing.T) {
	holland := AnswerOptions(InstrumentHolland, Question{})
	require.Len(t, holland, 5)
	assert.Equal(t, "0", holland[0].Key)
	assert.Equal(t, "4", holland[4].Key)

	eq := AnswerOptions(InstrumentEQ, Question{})
	require.Len(t, eq, 5)
	assert.Equal(t, "1", eq[0].Key)
	assert.Equal(t, "Hoàn toàn đúng", eq[4].Text)

	assert.Nil(t, AnswerOptions(InstrumentIQ, Question{}))
}
