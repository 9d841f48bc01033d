package report

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/laban/internal/assessment"
)

func discResult(t *testing.T) assessment.Result {
	t.Helper()
	s, err := assessment.Lookup("disc")
	require.NoError(t, err)
	answers := assessment.Repeat("C", len(s.Questions()))
	r, err := assessment.Grade(s, answers, assessment.Student{Name: "Nguyễn Văn An", Class: "11A2"},
		time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return *r
}

func TestVisaNumber_Format(t *testing.T) {
	re := regexp.MustCompile(`^VN-[A-HJ-NP-Z2-9]{4}-[A-HJ-NP-Z2-9]{4}$`)
	for range 50 {
		assert.Regexp(t, re, VisaNumber())
	}
}

func TestVisaFrom_Deterministic(t *testing.T) {
	assert.Equal(t, "VN-AAAA-AAAA", visaFrom(func(int) int { return 0 }))

	i := 0
	seq := func(n int) int {
		i++
		return (i - 1) % n
	}
	assert.Equal(t, "VN-ABCD-EFGH", visaFrom(seq))
}

func TestComparable(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"v1.0.0", "v1.4.2", true},
		{"v1.0.0", "v2.0.0", false},
		{"v0.9.0", "v0.1.0", true},
		{"v1.0.0", "", false},
		{"1.0.0", "1.0.0", false},
		{"garbage", "v1.0.0", false},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Comparable(tt.a, tt.b))
		})
	}
}

func TestCurrent(t *testing.T) {
	r := discResult(t)
	assert.True(t, Current(r))

	r.BankVersion = "v0.3.0"
	assert.False(t, Current(r))
}

func TestBars_DiscAllC(t *testing.T) {
	r := discResult(t)
	bars := Bars(r)
	require.Len(t, bars, 4)

	assert.Equal(t, assessment.DiscD, bars[0].Category)
	assert.Equal(t, assessment.DiscS, bars[2].Category)
	assert.InDelta(t, 1.0, bars[2].Fraction(), 1e-9)
	assert.Zero(t, bars[0].Fraction())
	for _, b := range bars {
		assert.NotEmpty(t, b.Name)
		assert.Positive(t, b.Max)
	}
}

func TestBars_UnknownInstrument(t *testing.T) {
	r := discResult(t)
	r.Instrument = "astrology"
	assert.Nil(t, Bars(r))
}

func TestBar_FractionClamps(t *testing.T) {
	assert.Zero(t, Bar{Score: 3}.Fraction())
	assert.Equal(t, 1.0, Bar{Score: 12, Max: 10}.Fraction())
	assert.Zero(t, Bar{Score: -2, Max: 10}.Fraction())
	assert.Equal(t, 0.5, Bar{Score: 5, Max: 10}.Fraction())
}

func TestPassport_Content(t *testing.T) {
	r := discResult(t)
	card := Passport(r, PassportOptions{Visa: "VN-TEST-2026", Width: 64})

	assert.Contains(t, card, "HỘ CHIẾU NĂNG LỰC")
	assert.Contains(t, card, "Nguyễn Văn An")
	assert.Contains(t, card, "11A2")
	assert.Contains(t, card, r.Classification.Code)
	assert.Contains(t, card, "VN-TEST-2026")
	assert.Contains(t, card, r.CompletedAt.Local().Format("02/01/2006"))
	assert.Contains(t, card, "█")
	assert.NotContains(t, card, "không so sánh được")
}

func TestPassport_DefaultsAndStaleBank(t *testing.T) {
	r := discResult(t)
	r.BankVersion = "v0.1.0"
	r.Student = assessment.Student{}

	card := Passport(r, PassportOptions{})
	assert.Regexp(t, `VN-[A-Z2-9]{4}-[A-Z2-9]{4}`, card)
	assert.Contains(t, card, "không so sánh được")
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Chưa có kết quả nào.\n", Summary(nil))

	a := discResult(t)
	b := discResult(t)
	b.BankVersion = "v0.1.0"

	out := Summary([]assessment.Result{a, b})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, lines[0], "KẾT QUẢ")
	assert.Contains(t, lines[1], "DISC")
	assert.Contains(t, lines[1], "Nguyễn Văn An")
	assert.NotContains(t, lines[1], a.Classification.Code+"*")
	assert.Contains(t, lines[2], b.Classification.Code+"*")
	assert.Contains(t, out, "bộ câu hỏi cũ")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "Nguyễ…", truncate("Nguyễn Văn", 6))
}
