package text

import "testing"

func TestBitmapMetrics_Advance(t *testing.T) {
	m := NewBitmapMetrics()
	tests := []struct {
		name  string
		r     rune
		style Style
		want  float64
	}{
		{"ascii", 'a', Style{}, 7},
		{"space", ' ', Style{}, 7},
		{"bold", 'a', Style{Bold: true}, 8},
		{"italic is not wider", 'a', Style{Italic: true}, 7},
		{"missing glyph", '中', Style{}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Advance(tt.r, tt.style); got != tt.want {
				t.Errorf("Advance(%q) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestBitmapMetrics_InLayout(t *testing.T) {
	b := &Builder{Legacy: NewBitmapMetrics()}
	st, err := b.Build(SplitRuns(NewStyledString("abc", Style{}).Append("de", Style{Bold: true}), nil), DirectionLTR)
	if err != nil {
		t.Fatal(err)
	}
	if got := st.Width(); got != 3*7+2*8 {
		t.Errorf("Width = %v, want %v", got, 3*7+2*8)
	}
	want := []float64{7, 7, 7, 8, 8}
	for i, adv := range st.Advances() {
		if adv != want[i] {
			t.Errorf("Advances()[%d] = %v, want %v", i, adv, want[i])
		}
	}
}
