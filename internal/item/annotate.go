package item

import "time"

// annotate fills the booking marks on a Detail from the item's booking
// windows, evaluated against a single instant.
//
// Last booking: the first window (in store order) straddling now; its end is
// exposed. Next booking: the window with the smallest start still ahead of
// now; its start is exposed. Either mark stays nil when nothing qualifies.
func annotate(d *Detail, windows []Window, now time.Time) {
	for _, w := range windows {
		if w.Start.Before(now) && w.End.After(now) {
			end := w.End
			d.LastBooking = &end
			break
		}
	}

	var next *Window
	for i := range windows {
		w := windows[i]
		if !w.Start.After(now) {
			continue
		}
		if next == nil || w.Start.Before(next.Start) {
			next = &w
		}
	}
	if next != nil {
		start := next.Start
		d.NextBooking = &start
	}
}
