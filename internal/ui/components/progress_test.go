package components

import (
	"strings"
	"testing"
)

func TestProgressBar_Fill(t *testing.T) {
	v := ProgressBar{Percent: 0.5, Width: 10}.View()
	if got := strings.Count(v, "━"); got != 5 {
		t.Errorf("filled cells = %d, want 5", got)
	}
	if got := strings.Count(v, "─"); got != 5 {
		t.Errorf("empty cells = %d, want 5", got)
	}
}

func TestProgressBar_Clamps(t *testing.T) {
	v := ProgressBar{Percent: 1.7, Width: 8}.View()
	if strings.Contains(v, "─") {
		t.Error("over-full bar should have no empty cells")
	}
	v = ProgressBar{Percent: -1, Width: 8}.View()
	if strings.Contains(v, "━") {
		t.Error("negative bar should have no filled cells")
	}
	if got := strings.Count(ProgressBar{Width: 1}.View(), "─"); got != 4 {
		t.Errorf("narrow bar has %d cells, want 4", got)
	}
}

func TestProgressBar_Percent(t *testing.T) {
	v := StepProgress(5, 20, 60).View()
	if !strings.Contains(v, "Câu 6/20") || !strings.Contains(v, "25%") {
		t.Errorf("view = %q", v)
	}
}

func TestStepProgress(t *testing.T) {
	p := StepProgress(3, 20, 60)
	if p.Label != "Câu 4/20" {
		t.Errorf("Label = %q", p.Label)
	}
	if p.Percent != 0.15 {
		t.Errorf("Percent = %v", p.Percent)
	}

	done := StepProgress(20, 20, 60)
	if done.Label != "Câu 20/20" || done.Percent != 1 {
		t.Errorf("finished = %+v", done)
	}
	if empty := StepProgress(0, 0, 60); empty.Percent != 0 {
		t.Errorf("empty total Percent = %v", empty.Percent)
	}
}
