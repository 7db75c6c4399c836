package hub

import (
	"fmt"
	"strings"
)

// Summary renders a plain-text snapshot of the hub's state, grounded on the
// source implementation's summary() debug method. No plotting library is
// wired (SPEC_FULL.md §4): this is the text half of that method only.
func (h *Hub) Summary() string {
	var b strings.Builder

	fmt.Fprintln(&b, "Source profiles:")
	for _, name := range h.SourceNames() {
		fmt.Fprintf(&b, " * %s (%d ticks)\n", name, len(h.sourceProfiles[name]))
	}

	fmt.Fprintln(&b, "Waiting requests:")
	for _, id := range h.waitingOrder {
		r := h.waitingByID[id]
		bk := h.book[id]
		fmt.Fprintf(&b, " * request #%d %q (timeout=%d, offset=%d, profile len=%d)\n",
			r.RequestID, r.DeviceName, bk.timeout, bk.offset, len(r.Profile))
	}

	fmt.Fprintln(&b, "Running jobs:")
	for _, j := range h.runningJobs {
		fmt.Fprintf(&b, " * job #%d %q (remaining=%d)\n", j.RequestID, j.DeviceName, len(j.Remaining()))
	}

	fmt.Fprintln(&b, "Plan:")
	for _, id := range h.waitingOrder {
		fmt.Fprintf(&b, " * request #%d -> +%d ticks\n", id, h.book[id].offset)
	}

	return b.String()
}
