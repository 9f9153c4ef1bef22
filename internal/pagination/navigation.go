package pagination

// DefaultSpan is how many numbered links are shown either side of the current page.
const DefaultSpan = 4

// Navigation holds link targets for one page. Zero means the link is hidden.
type Navigation struct {
	Current int
	Total   int
	Before  []int // ascending, at most span pages preceding Current
	After   []int // ascending, at most span pages following Current
	First   int   // "«", hidden on the first page
	Prev    int
	Next    int
	Last    int // "»", hidden on the last page
}

// Window computes the navigation for page current of total (both 1-based).
func Window(current, total, span int) Navigation {
	n := Navigation{Current: current, Total: total}
	if total < 1 || current < 1 || current > total {
		return n
	}

	for p := max(1, current-span); p < current; p++ {
		n.Before = append(n.Before, p)
	}
	for p := current + 1; p <= min(total, current+span); p++ {
		n.After = append(n.After, p)
	}
	if current > 1 {
		n.First = 1
		n.Prev = current - 1
	}
	if current < total {
		n.Next = current + 1
		n.Last = total
	}
	return n
}

// Windows computes navigation for every page of a thread.
func Windows(total, span int) []Navigation {
	navs := make([]Navigation, 0, max(total, 0))
	for p := 1; p <= total; p++ {
		navs = append(navs, Window(p, total, span))
	}
	return navs
}

// Targets lists every page number linked from n.
func (n Navigation) Targets() []int {
	targets := append([]int{}, n.Before...)
	targets = append(targets, n.After...)
	for _, t := range []int{n.First, n.Prev, n.Next, n.Last} {
		if t != 0 {
			targets = append(targets, t)
		}
	}
	return targets
}
