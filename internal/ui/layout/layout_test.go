package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestSummarize(t *testing.T) {
	st := Summarize([]int{5, 3, 2}, []int{85, 40, 0})
	if st.Decks != 3 || st.Cards != 10 || st.AvgMastery != 41 {
		t.Errorf("unexpected stats %+v", st)
	}

	empty := Summarize(nil, nil)
	if empty != (HeaderStats{}) {
		t.Errorf("expected zero stats, got %+v", empty)
	}
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("Library", HeaderStats{Decks: 1, Cards: 4, AvgMastery: 50}, 100)
	for _, want := range []string{"FlashMaster", "Library", "1 deck ", "4 cards", "50% avg"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("Home", HeaderStats{}, 80)
	footer := RenderFooter([]KeyHint{{"q", "Quit"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 30)
	if h := lipgloss.Height(frame); h != 30 {
		t.Errorf("expected frame height 30, got %d", h)
	}
}

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{80, 23, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
