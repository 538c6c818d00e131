package cp

import "sort"

// BinPackingConstraint assigns items of given weights to bins under a
// per-bin load variable: assignment[i] names item i's bin, load[j] is
// bin j's total weight.
type BinPackingConstraint struct {
	assignment []*Variable
	load       []*Variable
	weight     []int
}

func NewBinPackingConstraint(assignment, load []*Variable, weight []int) *BinPackingConstraint {
	if len(assignment) != len(weight) {
		panicInvalidUsage("BinPackingConstraint: len(assignment) != len(weight)")
	}
	return &BinPackingConstraint{assignment: assignment, load: load, weight: weight}
}

func (c *BinPackingConstraint) Satisfied() bool {
	loads := make([]int, len(c.load))
	for i, v := range c.assignment {
		if !v.IsAssigned() {
			return false
		}
		loads[v.Value()] += c.weight[i]
	}
	for j, v := range c.load {
		if !v.IsAssigned() || loads[j] != v.Value() {
			return false
		}
	}
	return true
}

func (c *BinPackingConstraint) Failed() bool {
	for j, v := range c.load {
		required, possible := 0, 0
		for i, av := range c.assignment {
			if av.IsAssigned() {
				if av.Value() == j {
					required += c.weight[i]
				}
			} else if av.Possible(j) {
				possible += c.weight[i]
			}
		}
		possible += required
		if required > v.UB() || possible < v.LB() {
			return true
		}
	}
	return false
}

// install sorts items by descending weight, permuting assignment in
// lockstep, since the no-sum tests iterate candidate weights largest
// first. The permutation is applied to a private copy rather than
// mutating the caller's slice in place.
func (c *BinPackingConstraint) install(s *Search) {
	order := make([]int, len(c.weight))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return c.weight[order[a]] > c.weight[order[b]] })

	assignment := make([]*Variable, len(order))
	weight := make([]int, len(order))
	totalWeight := 0
	for pos, i := range order {
		assignment[pos] = c.assignment[i]
		weight[pos] = c.weight[i]
		totalWeight += c.weight[i]
	}

	p := &binPackingPropagator{assignment: assignment, load: c.load, weight: weight, totalWeight: totalWeight}
	p.propagatorBase = newPropagatorBase(0, false)
	s.registerPropagator(p)
}

type binPackingPropagator struct {
	propagatorBase
	assignment  []*Variable
	load        []*Variable
	weight      []int
	totalWeight int
}

func (p *binPackingPropagator) Listen(s *Search) {
	for _, v := range p.assignment {
		v.Subscribe(EventModified, p)
	}
	for _, v := range p.load {
		v.Subscribe(EventModified, p)
	}
}

func (p *binPackingPropagator) Unlisten(s *Search) {
	for _, v := range p.assignment {
		v.Unsubscribe(EventModified, p)
	}
	for _, v := range p.load {
		v.Unsubscribe(EventModified, p)
	}
}

// Propagate runs the full pipeline in a fixed order: per-bin load
// bounding, total-weight reasoning, commitment/exclusion, the no-sum
// load tightenings, single-item pruning, and the bin-count lower bound.
func (p *binPackingPropagator) Propagate(s *Search) PropagateStatus {
	items := len(p.assignment)
	bins := len(p.load)

	requiredSum := make([]int, bins)
	possibleSum := make([]int, bins)
	candidate := make([][]int, bins) // item indices still unassigned, candidate for bin j

	for i := 0; i < items; i++ {
		if v, ok := p.assignment[i].TryValue(); ok {
			requiredSum[v] += p.weight[i]
			possibleSum[v] += p.weight[i]
			continue
		}
		for _, j := range p.assignment[i].Domain().Values() {
			possibleSum[j] += p.weight[i]
			candidate[j] = append(candidate[j], i)
		}
	}

	// Step 2: per-bin load bounds from required/possible sums.
	for j := 0; j < bins; j++ {
		p.load[j].SetLB(requiredSum[j])
		p.load[j].SetUB(possibleSum[j])
	}

	// Step 3: total-weight reasoning.
	upperSum, lowerSum := 0, 0
	for j := 0; j < bins; j++ {
		upperSum += p.load[j].UB()
		lowerSum += p.load[j].LB()
	}
	for j := 0; j < bins; j++ {
		lb, ub := p.load[j].LB(), p.load[j].UB()
		p.load[j].SetLB(p.totalWeight - upperSum + ub)
		p.load[j].SetUB(p.totalWeight - lowerSum + lb)
	}

	// Step 4: commitment / exclusion.
	for j := 0; j < bins; j++ {
		ub, lb := p.load[j].UB(), p.load[j].LB()
		for _, i := range candidate[j] {
			if requiredSum[j]+p.weight[i] > ub {
				p.assignment[i].Remove(j)
			} else if possibleSum[j]+p.weight[i] < lb {
				p.assignment[i].Assign(j)
			}
		}
	}

	// Step 5: no-sum test per bin.
	for j := 0; j < bins; j++ {
		c := make([]int, len(candidate[j]))
		for k, i := range candidate[j] {
			c[k] = p.weight[i]
		}
		lb, ub := p.load[j].LB(), p.load[j].UB()
		if ok, _, _ := noSum(c, lb-requiredSum[j], ub-requiredSum[j]); ok {
			p.load[j].Fail()
			return StatusNormal
		}
		if ok, _, r1 := noSum(c, lb-requiredSum[j], lb-requiredSum[j]); ok {
			p.load[j].SetLB(requiredSum[j] + r1)
		}
		if ok, l1, _ := noSum(c, ub-requiredSum[j], ub-requiredSum[j]); ok {
			p.load[j].SetUB(requiredSum[j] + l1)
		}
	}

	// Step 6: single-item pruning.
	for j := 0; j < bins; j++ {
		lb, ub := p.load[j].LB(), p.load[j].UB()
		for pos, i := range candidate[j] {
			c := make([]int, 0, len(candidate[j])-1)
			for k, other := range candidate[j] {
				if k != pos {
					c = append(c, p.weight[other])
				}
			}
			if ok, _, _ := noSum(c, lb-requiredSum[j]-p.weight[i], ub-requiredSum[j]-p.weight[i]); ok {
				p.assignment[i].Remove(j)
			}
			if ok, _, _ := noSum(c, lb-requiredSum[j], ub-requiredSum[j]); ok {
				p.assignment[i].Assign(j)
			}
		}
	}

	// Step 7: L2-style lower bound on the number of bins needed.
	binCapacity := 0
	for j := 0; j < bins; j++ {
		binCapacity = max(binCapacity, p.load[j].UB())
	}
	var unpacked []int
	for i := 0; i < items; i++ {
		if !p.assignment[i].IsAssigned() {
			unpacked = append(unpacked, p.weight[i])
		}
	}
	var fake []int
	for j := 0; j < bins; j++ {
		w := requiredSum[j] + binCapacity - p.load[j].UB()
		if w > 0 {
			fake = append(fake, w)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(fake)))
	if len(unpacked) == 0 && len(fake) == 0 {
		return StatusNormal
	}
	all := mergeDescending(unpacked, fake)
	if binLowerBound(all, binCapacity) > bins {
		p.assignment[0].Fail()
	}
	return StatusNormal
}

// mergeDescending merges two already-descending slices into one
// descending slice, used to combine unpacked and fake items ahead of
// the bin-count bound scan.
func mergeDescending(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		if j == len(b) || (i < len(a) && a[i] >= b[j]) {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	return out
}

// noSum implements Shaw's no-sum test: s must be sorted descending. It
// reports whether no subset of s sums to a value in [l, r], and if so
// the tightest
// infeasible interval (l1, r1) with l1 < l <= r < r1 that any subset
// must either fall short of or overshoot.
//
// Callers must clamp l > 0 and r < sum(s); out-of-range calls return
// false without error.
func noSum(s []int, l, r int) (infeasible bool, l1, r1 int) {
	total := 0
	for _, w := range s {
		total += w
	}
	if l <= 0 || r >= total {
		return false, 0, 0
	}
	n := len(s)
	sa, sc := 0, 0
	k, k1 := 0, 0

	for sc+s[n-k1-1] < l {
		sc += s[n-k1-1]
		k1++
	}
	sb := s[n-k1-1]
	for sa < l && sb <= r {
		sa += s[k]
		k++
		if sa < l {
			k1--
			sc -= s[n-k1-1]
			sb += s[n-k1-1]
			for sa+sc >= l {
				k1--
				sb += s[n-k1-1] - s[n-k1-k-2]
				sc -= s[n-k1-1]
			}
		}
	}
	return sa < l, sa + sc, sb
}

// binLowerBound computes a classical three-class lower bound on the
// number of capacity-C bins needed for items (sorted descending):
// large items (> C/2) each need their own bin, pairs of medium items
// (> C/3) are greedily matched against large-item slack, and a scan
// over thresholds v in [0, C/3] refines the remaining small-item count.
func binLowerBound(items []int, capacity int) int {
	n := len(items)
	big := 0
	for big < n && 2*items[big] > capacity {
		big++
	}
	big2 := big
	for big2 < n && 3*items[big2] > capacity {
		big2++
	}
	h := 0
	ff := 0
	for i := big2 - 1; i >= big; i-- {
		for ff < big && items[ff]+items[i] > capacity {
			ff++
		}
		if ff < big {
			ff++
		} else {
			h++
		}
	}
	h = (h + 1) / 2

	mx := 0
	lptr, rptr := 0, n-1
	lsum, rsum := 0, 0
	sum := 0
	for _, w := range items {
		sum += w
	}
	for v := 0; v <= capacity/3; v++ {
		for lptr < big && items[lptr] > capacity-v {
			lsum += items[lptr]
			lptr++
		}
		for rptr >= big && items[rptr] < v {
			rsum += items[rptr]
			rptr--
		}
		curr := sum - lsum - rsum - capacity*(big-lptr+h)
		if curr >= 0 {
			curr = (curr + capacity - 1) / capacity
		} else {
			curr = 0
		}
		if curr > mx {
			mx = curr
		}
	}
	return mx + big + h
}
