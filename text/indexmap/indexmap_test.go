package indexmap

import "testing"

func TestForwardMap_Inf(t *testing.T) {
	var m ForwardMap
	m.Put(2, 20)
	m.Put(5, 50)
	m.Put(5, 55)
	m.Put(9, 90)

	if m.Len() != 3 {
		t.Fatalf("Len = %d, want 3", m.Len())
	}

	tests := []struct {
		key     int
		wantIdx int
		wantVal int
	}{
		{0, -1, 0},
		{2, -1, 0},
		{3, 0, 20},
		{5, 0, 20},
		{6, 1, 55},
		{6, 1, 55},
		{9, 1, 55},
		{100, 2, 90},
	}
	for _, tt := range tests {
		idx, val := m.Inf(tt.key)
		if idx != tt.wantIdx || val != tt.wantVal {
			t.Errorf("Inf(%d) = (%d, %d), want (%d, %d)", tt.key, idx, val, tt.wantIdx, tt.wantVal)
		}
	}
}

func TestForwardMap_FloorMatchesInf(t *testing.T) {
	var m ForwardMap
	for _, k := range []int{0, 0, 3, 4, 10} {
		m.Put(k, k*k+1)
	}
	for key := -1; key <= 12; key++ {
		fi, fv := m.Floor(key)
		ii, iv := m.Inf(key)
		if fi != ii || fv != iv {
			t.Errorf("key %d: Floor = (%d, %d), Inf = (%d, %d)", key, fi, fv, ii, iv)
		}
	}
}

func TestForwardMap_Panics(t *testing.T) {
	t.Run("decreasing Put", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		var m ForwardMap
		m.Put(3, 0)
		m.Put(2, 0)
	})

	t.Run("backward Inf", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		var m ForwardMap
		m.Put(3, 0)
		m.Inf(5)
		m.Inf(4)
	})

	t.Run("Reset allows rewind", func(t *testing.T) {
		var m ForwardMap
		m.Put(3, 7)
		m.Inf(5)
		m.Reset()
		if i, v := m.Inf(4); i != 0 || v != 7 {
			t.Errorf("Inf(4) after Reset = (%d, %d), want (0, 7)", i, v)
		}
	})
}

// markedHello is "§aHe§l§ollo": one marker before 'H' and two before the
// first 'l', each two units wide.
func markedHello() *Converter {
	return NewConverter([]int{0, 2, 2}, 2)
}

func TestConverter_ToFormatful(t *testing.T) {
	c := markedHello()
	if c.Markers() != 3 {
		t.Fatalf("Markers = %d, want 3", c.Markers())
	}

	want := []int{0, 3, 4, 9, 10, 11}
	for i, w := range want {
		if got := c.ToFormatful(i); got != w {
			t.Errorf("ToFormatful(%d) = %d, want %d", i, got, w)
		}
		if got := c.FormatfulAt(i); got != w {
			t.Errorf("FormatfulAt(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestConverter_ToFormatless(t *testing.T) {
	c := markedHello()

	// Positions inside a marker cluster map to the character after it.
	want := []int{0, 0, 0, 1, 2, 2, 2, 2, 2, 3, 4, 5}
	for j, w := range want {
		if got := c.ToFormatless(j); got != w {
			t.Errorf("ToFormatless(%d) = %d, want %d", j, got, w)
		}
	}
	for j := len(want) - 1; j >= 0; j-- {
		if got := c.FormatlessAt(j); got != want[j] {
			t.Errorf("FormatlessAt(%d) = %d, want %d", j, got, want[j])
		}
	}
}

func TestConverter_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		markers []int
		width   int
		length  int
	}{
		{"none", nil, 2, 5},
		{"leading", []int{0}, 2, 5},
		{"trailing", []int{5}, 2, 5},
		{"cluster", []int{2, 2, 2}, 2, 5},
		{"spread", []int{0, 1, 3, 3, 5}, 2, 5},
		{"wide markers", []int{1, 4, 4}, 3, 6},
		{"zero width", []int{1, 2}, 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConverter(tt.markers, tt.width)
			fwd := NewConverter(tt.markers, tt.width)
			for i := 0; i <= tt.length; i++ {
				j := c.ToFormatful(i)
				if got := fwd.ToFormatless(j); got != i {
					t.Errorf("ToFormatless(ToFormatful(%d) = %d) = %d", i, j, got)
				}
			}
		})
	}
}

func TestConverter_FormatfulRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		markers []int
		width   int
		length  int
	}{
		{"none", nil, 2, 5},
		{"zero width", []int{1, 2, 2}, 0, 4},
		{"leading", []int{0}, 2, 5},
		{"trailing", []int{5, 5}, 2, 5},
		{"interspersed", []int{0, 1, 3, 3, 5}, 2, 5},
		{"wide markers", []int{1, 4, 4}, 3, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A cluster starting at formatful k with n markers owns (k, k+width*n].
			owner := make(map[int]int)
			for i, count := 0, 0; i < len(tt.markers); {
				n := 0
				for i+n < len(tt.markers) && tt.markers[i+n] == tt.markers[i] {
					n++
				}
				k := tt.markers[i] + tt.width*count
				for j := k + 1; j <= k+tt.width*n; j++ {
					owner[j] = k
				}
				count += n
				i += n
			}

			c := NewConverter(tt.markers, tt.width)
			fwd := NewConverter(tt.markers, tt.width)
			back := NewConverter(tt.markers, tt.width)
			end := tt.length + tt.width*len(tt.markers)
			for j := 0; j <= end; j++ {
				want := j
				if k, ok := owner[j]; ok {
					want = k
				}
				if got := c.FormatfulAt(c.FormatlessAt(j)); got != want {
					t.Errorf("FormatfulAt(FormatlessAt(%d)) = %d, want %d", j, got, want)
				}
				if got := back.ToFormatful(fwd.ToFormatless(j)); got != want {
					t.Errorf("ToFormatful(ToFormatless(%d)) = %d, want %d", j, got, want)
				}
			}
			if got := c.FormatlessAt(end); got != tt.length {
				t.Errorf("FormatlessAt(%d) = %d, want %d", end, got, tt.length)
			}
		})
	}
}

// The formatful-to-formatless tie-break decides where positions between
// and right after markers land. These cases pin every boundary around a
// two-marker cluster at formatless 1 (formatful [1, 5)).
func TestConverter_ClusterBoundaries(t *testing.T) {
	c := NewConverter([]int{1, 1}, 2)
	tests := []struct {
		formatful int
		want      int
	}{
		{0, 0}, // 'a'
		{1, 1}, // cluster start
		{2, 1}, // inside first marker
		{3, 1}, // between markers
		{4, 1}, // inside second marker
		{5, 1}, // character after the cluster
		{6, 2},
	}
	for _, tt := range tests {
		if got := c.ToFormatless(tt.formatful); got != tt.want {
			t.Errorf("ToFormatless(%d) = %d, want %d", tt.formatful, got, tt.want)
		}
		if got := c.FormatlessAt(tt.formatful); got != tt.want {
			t.Errorf("FormatlessAt(%d) = %d, want %d", tt.formatful, got, tt.want)
		}
	}

	// Formatful positions inside the cluster do not survive a round trip.
	if got := c.FormatfulAt(c.FormatlessAt(3)); got != 1 {
		t.Errorf("FormatfulAt(FormatlessAt(3)) = %d, want cluster start 1", got)
	}
}

func TestConverter_Reset(t *testing.T) {
	c := markedHello()
	_ = c.ToFormatful(5)
	_ = c.ToFormatless(11)
	c.Reset()
	if got := c.ToFormatful(1); got != 3 {
		t.Errorf("ToFormatful(1) after Reset = %d, want 3", got)
	}
	if got := c.ToFormatless(3); got != 1 {
		t.Errorf("ToFormatless(3) after Reset = %d, want 1", got)
	}
}
