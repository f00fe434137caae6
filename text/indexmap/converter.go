package indexmap

import "fmt"

// Converter maps indices between the formatless space (plain text used
// for shaping) and the formatful space (the original text including
// fixed-width formatting markers).
//
// A cluster of n markers starting at formatful k owns the interior
// (k, k+width*n]: the positions after its first unit up to and including
// the character that follows it. Every interior position maps to the
// cluster's formatless position, which maps back to k. All other formatful
// positions survive FormatfulAt(FormatlessAt(j)) unchanged.
//
// ToFormatful and ToFormatless each keep their own forward cursor, so each
// must be called with non-decreasing arguments. FormatfulAt and
// FormatlessAt answer arbitrary queries without touching the cursors.
type Converter struct {
	width int

	// byFormatless: marker-cluster formatless position -> markers so far, inclusive.
	byFormatless ForwardMap

	// byFormatful: marker-cluster formatful start -> markers so far, inclusive.
	byFormatful ForwardMap

	// incs holds the number of markers in each cluster.
	incs []int
}

// NewConverter builds a converter from the formatless positions of every
// marker, in non-decreasing order. Markers sharing a position form one
// cluster. width is the formatful length of one marker.
func NewConverter(markerStarts []int, width int) *Converter {
	if width < 0 {
		panic(fmt.Sprintf("indexmap: negative marker width %d", width))
	}
	c := &Converter{width: width}
	count := 0
	for i := 0; i < len(markerStarts); {
		p := markerStarts[i]
		j := i
		for j < len(markerStarts) && markerStarts[j] == p {
			j++
		}
		inc := j - i
		c.byFormatful.Put(p+width*count, count+inc)
		count += inc
		c.byFormatless.Put(p, count)
		c.incs = append(c.incs, inc)
		i = j
	}
	return c
}

// Width returns the formatful length of one marker.
func (c *Converter) Width() int {
	return c.width
}

// Markers returns the total number of markers.
func (c *Converter) Markers() int {
	n := c.byFormatless.Len()
	if n == 0 {
		return 0
	}
	_, v := c.byFormatless.At(n - 1)
	return v
}

// ToFormatful maps a formatless index to the formatful index just before
// any markers sitting at it.
func (c *Converter) ToFormatful(i int) int {
	_, v := c.byFormatless.Inf(i)
	return i + c.width*v
}

// ToFormatless maps a formatful index to formatless space. Indices inside
// a marker cluster map to the character that follows the cluster.
func (c *Converter) ToFormatless(j int) int {
	idx, v := c.byFormatful.Inf(j)
	return c.formatless(j, idx, v)
}

// FormatfulAt is the stateless form of ToFormatful.
func (c *Converter) FormatfulAt(i int) int {
	_, v := c.byFormatless.Floor(i)
	return i + c.width*v
}

// FormatlessAt is the stateless form of ToFormatless.
func (c *Converter) FormatlessAt(j int) int {
	idx, v := c.byFormatful.Floor(j)
	return c.formatless(j, idx, v)
}

func (c *Converter) formatless(j, idx, v int) int {
	if idx < 0 {
		return j
	}
	k, _ := c.byFormatful.At(idx)
	inc := c.incs[idx]
	if j-k < c.width*inc {
		return k - c.width*(v-inc)
	}
	return j - c.width*v
}

// Reset rewinds both cursors.
func (c *Converter) Reset() {
	c.byFormatless.Reset()
	c.byFormatful.Reset()
}
