// Package report renders finished assessment results: the passport card
// shown in the TUI and CLI, and the plain summary table of every result.
package report

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/mod/semver"

	"github.com/abhisek/laban/internal/assessment"
	"github.com/abhisek/laban/internal/ui/theme"
)

// DefaultWidth is the passport card width when none is given.
const DefaultWidth = 60

const dateLayout = "02/01/2006"

// visaAlphabet skips characters that read alike (0/O, 1/I).
const visaAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// VisaNumber returns a random cosmetic visa number of the form
// VN-XXXX-XXXX. It plays no part in scoring.
func VisaNumber() string {
	return visaFrom(rand.IntN)
}

func visaFrom(intn func(int) int) string {
	var b strings.Builder
	b.WriteString("VN-")
	for i := range 8 {
		if i == 4 {
			b.WriteByte('-')
		}
		b.WriteByte(visaAlphabet[intn(len(visaAlphabet))])
	}
	return b.String()
}

// Comparable reports whether results graded under bank versions a and b
// can be compared. Versions must share a semver major.
func Comparable(a, b string) bool {
	if !semver.IsValid(a) || !semver.IsValid(b) {
		return false
	}
	return semver.Major(a) == semver.Major(b)
}

// Current reports whether r was graded under a bank comparable with the
// one compiled into this binary.
func Current(r assessment.Result) bool {
	return Comparable(r.BankVersion, assessment.BankVersion)
}

// Bar is one category line of a passport card.
type Bar struct {
	Category assessment.Category
	Name     string
	Score    float64
	Max      float64
}

// Fraction returns Score/Max clamped to [0,1].
func (b Bar) Fraction() float64 {
	if b.Max <= 0 {
		return 0
	}
	return min(max(b.Score/b.Max, 0), 1)
}

// Bars lists the result's categories in alphabet order, each scaled by
// the highest score reachable on the instrument. Unknown instruments
// yield nil.
func Bars(r assessment.Result) []Bar {
	s, err := assessment.Lookup(string(r.Instrument))
	if err != nil {
		return nil
	}
	out := make([]Bar, 0, len(s.Alphabet()))
	for _, cs := range r.Scores.Ordered(s.Alphabet()) {
		out = append(out, Bar{
			Category: cs.Category,
			Name:     assessment.Describe(r.Instrument, cs.Category),
			Score:    cs.Score,
			Max:      assessment.MaxScore(s, cs.Category),
		})
	}
	return out
}

// PassportOptions controls how a card is drawn.
type PassportOptions struct {
	// Visa is printed in the stamp. Empty draws a fresh VisaNumber.
	Visa string

	// Width is the outer card width. Zero means DefaultWidth.
	Width int
}

// Passport renders r as a passport page.
func Passport(r assessment.Result, opts PassportOptions) string {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	visa := opts.Visa
	if visa == "" {
		visa = VisaNumber()
	}
	inner := max(width-theme.Passport.GetHorizontalFrameSize(), 20)

	var lines []string
	lines = append(lines,
		theme.Title.Width(inner).Render("HỘ CHIẾU NĂNG LỰC"),
		theme.Subtitle.Width(inner).Render(r.Instrument.DisplayName()),
		"",
		field("Họ tên", orDash(r.Student.Name)),
		field("Lớp", orDash(r.Student.Class)),
		field("Trường", orDash(r.Student.School)),
		"",
		field("Kết quả", r.Classification.Code),
		field("Mô tả", r.Classification.Label),
		"",
	)

	bars := Bars(r)
	nameWidth := 0
	for _, b := range bars {
		nameWidth = max(nameWidth, lipgloss.Width(b.Name))
	}
	for _, b := range bars {
		lines = append(lines, barLine(b, nameWidth, inner))
	}

	stamp := theme.VisaStamp.Render("VISA " + visa)
	issued := theme.Label.Render("Ngày cấp ") + theme.Value.Render(r.CompletedAt.Local().Format(dateLayout))
	footer := lipgloss.JoinHorizontal(lipgloss.Center, issued, "   ", stamp)
	if !Current(r) {
		footer = lipgloss.JoinVertical(lipgloss.Left, footer,
			theme.Hint.Render(fmt.Sprintf("Bộ câu hỏi %s không so sánh được với %s", r.BankVersion, assessment.BankVersion)))
	}
	lines = append(lines, "", footer)

	return theme.Passport.Width(width).Render(strings.Join(lines, "\n"))
}

func field(label, value string) string {
	return theme.Label.Render(fmt.Sprintf("%-9s", label)) + theme.Value.Render(value)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func barLine(b Bar, nameWidth, inner int) string {
	score := fmt.Sprintf(" %g/%g", b.Score, b.Max)
	barWidth := max(inner-nameWidth-2-len(score), 4)
	filled := int(float64(barWidth)*b.Fraction() + 0.5)

	name := b.Name + strings.Repeat(" ", nameWidth-lipgloss.Width(b.Name))
	return theme.Body.Render(name) + "  " +
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled)) +
		theme.Label.Render(score)
}

// WriteSummary prints one row per result, oldest first as given. Rows
// graded under an incomparable bank are marked with '*'.
func WriteSummary(w io.Writer, results []assessment.Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "Chưa có kết quả nào.")
		return err
	}
	if _, err := fmt.Fprintf(w, "%-10s  %-16s  %-14s  %-20s  %s\n",
		"NGÀY", "BÀI", "KẾT QUẢ", "HỌC SINH", "MÔ TẢ"); err != nil {
		return err
	}
	stale := false
	for _, r := range results {
		mark := ""
		if !Current(r) {
			mark = "*"
			stale = true
		}
		if _, err := fmt.Fprintf(w, "%-10s  %-16s  %-14s  %-20s  %s\n",
			r.CompletedAt.Local().Format(dateLayout),
			r.Instrument.DisplayName(),
			r.Classification.Code+mark,
			truncate(orDash(r.Student.Name), 20),
			r.Classification.Label,
		); err != nil {
			return err
		}
	}
	if stale {
		_, err := fmt.Fprintf(w, "\n* chấm theo bộ câu hỏi cũ, không so sánh được với %s\n", assessment.BankVersion)
		return err
	}
	return nil
}

// Summary returns WriteSummary's output as a string.
func Summary(results []assessment.Result) string {
	var b strings.Builder
	_ = WriteSummary(&b, results)
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
