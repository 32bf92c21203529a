package entities

import "iter"

// Traverse walks the graph below roots breadth-first and yields every distinct
// node exactly once. A node is marked as seen when it is yielded, before its
// children are queued, and seen nodes are never expanded again, so cycles and
// shared subgraphs terminate.
//
// The seen-set belongs to this call: the returned sequence is single-use and
// ranging over it again continues from where the previous loop stopped.
func Traverse(roots []*Dependency) iter.Seq[*Dependency] {
	seen := make(map[*Dependency]struct{})
	queue := make([]*Dependency, 0, len(roots))
	queue = append(queue, roots...)

	return func(yield func(*Dependency) bool) {
		for len(queue) > 0 {
			dependency := queue[0]
			queue[0] = nil
			queue = queue[1:]

			if dependency == nil {
				continue
			}
			if _, ok := seen[dependency]; ok {
				continue
			}
			seen[dependency] = struct{}{}
			queue = append(queue, dependency.Dependencies...)

			if !yield(dependency) {
				return
			}
		}
	}
}

// Flatten collects Traverse(roots) into a slice.
func Flatten(roots []*Dependency) []*Dependency {
	var result []*Dependency
	for dependency := range Traverse(roots) {
		result = append(result, dependency)
	}
	return result
}
