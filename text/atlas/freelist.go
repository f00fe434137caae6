package atlas

// freeRect is an unused area of one page.
type freeRect struct {
	x, y, w, h int
	page       int
}

// freeList implements guillotine rectangle packing over many pages.
//
// Free rectangles are searched from the most recently added one backwards
// and the first one large enough wins. The requested size is carved from
// the origin of the chosen rectangle; what remains below and to the right
// goes back on the list.
type freeList struct {
	rects []freeRect

	// Tracking for utilization
	usedArea int
}

// addPage makes a whole page available.
func (l *freeList) addPage(page, size int) {
	l.rects = append(l.rects, freeRect{w: size, h: size, page: page})
}

// allocate returns the position of a w×h rectangle, or false if no free
// rectangle is large enough.
func (l *freeList) allocate(w, h int) (freeRect, bool) {
	for i := len(l.rects) - 1; i >= 0; i-- {
		r := l.rects[i]
		if r.w < w || r.h < h {
			continue
		}
		l.rects = append(l.rects[:i], l.rects[i+1:]...)

		// Below spans the full width, right only the carved height.
		if r.h > h {
			l.rects = append(l.rects, freeRect{x: r.x, y: r.y + h, w: r.w, h: r.h - h, page: r.page})
		}
		if r.w > w && h > 0 {
			l.rects = append(l.rects, freeRect{x: r.x + w, y: r.y, w: r.w - w, h: h, page: r.page})
		}
		l.usedArea += w * h
		return freeRect{x: r.x, y: r.y, w: w, h: h, page: r.page}, true
	}
	return freeRect{}, false
}

// Len returns the number of free rectangles.
func (l *freeList) Len() int {
	return len(l.rects)
}
