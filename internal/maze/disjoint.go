package maze

// setRegistry tracks which carving set each cell of the current row belongs
// to. setOf is dense, so a lookup can never miss; order keeps surviving set
// ids in creation order so iteration is reproducible for a given seed.
type setRegistry struct {
	setOf   []int
	members map[int][]int
	order   []int
}

func newSetRegistry(cells int) *setRegistry {
	setOf := make([]int, cells)
	for i := range setOf {
		setOf[i] = -1
	}
	return &setRegistry{
		setOf:   setOf,
		members: make(map[int][]int),
	}
}

// ensure places cell in a singleton set keyed by its own index unless it
// was carried into a set from the row below. It reports whether a new set
// was created.
func (r *setRegistry) ensure(cell int) bool {
	if r.setOf[cell] >= 0 {
		return false
	}
	r.setOf[cell] = cell
	r.members[cell] = []int{cell}
	r.order = append(r.order, cell)
	return true
}

func (r *setRegistry) find(cell int) int {
	return r.setOf[cell]
}

// merge appends every member of from into to and discards from.
func (r *setRegistry) merge(from, to int) {
	for _, cell := range r.members[from] {
		r.setOf[cell] = to
	}
	r.members[to] = append(r.members[to], r.members[from]...)
	delete(r.members, from)

	for i, id := range r.order {
		if id == from {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// collapse replaces the members of set with the single cell carried up
// from the row below.
func (r *setRegistry) collapse(set, carried int) {
	r.members[set] = []int{carried}
	r.setOf[carried] = set
}

// sets returns surviving set ids in creation order.
func (r *setRegistry) sets() []int {
	return r.order
}

func (r *setRegistry) size(set int) int {
	return len(r.members[set])
}

func (r *setRegistry) member(set, n int) int {
	return r.members[set][n]
}
