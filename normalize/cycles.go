package normalize

// DetectCycles performs a grey/black-coloring DFS over a dependency graph
// (node name -> names it depends on) and returns the back-edges that close a
// cycle. Per spec, cyclic edges are recorded, never removed from the graph.
func DetectCycles(graph map[string][]string) [][2]string {
	const (
		colorGrey  = 1
		colorBlack = 2
	)
	colors := make(map[string]int, len(graph))
	var cyclic [][2]string

	var visit func(node string)
	visit = func(node string) {
		colors[node] = colorGrey
		for _, dep := range graph[node] {
			switch colors[dep] {
			case colorGrey:
				cyclic = append(cyclic, [2]string{node, dep})
			case colorBlack:
				// fully explored elsewhere, no cycle through this edge
			default:
				visit(dep)
			}
		}
		colors[node] = colorBlack
	}

	for _, node := range sortedKeys(graph) {
		if colors[node] == 0 {
			visit(node)
		}
	}
	return cyclic
}

// TransitiveClosure computes, for every node in graph, the full set of nodes
// reachable by following dependency edges (not including the node itself
// unless it participates in a cycle back to itself). Results are memoized
// across sub-paths within each node's walk and returned in sorted order.
func TransitiveClosure(graph map[string][]string) map[string][]string {
	var memo map[string]map[string]struct{}
	inProgress := make(map[string]struct{})

	var resolve func(node string) map[string]struct{}
	resolve = func(node string) map[string]struct{} {
		if set, ok := memo[node]; ok {
			return set
		}
		if _, cycling := inProgress[node]; cycling {
			// Cycle: report an empty contribution here: the cycle-closing
			// edge itself is still present one level up in the direct graph.
			return map[string]struct{}{}
		}
		inProgress[node] = struct{}{}
		set := make(map[string]struct{})
		for _, dep := range graph[node] {
			set[dep] = struct{}{}
			for reached := range resolve(dep) {
				set[reached] = struct{}{}
			}
		}
		delete(inProgress, node)
		memo[node] = set
		return set
	}

	closure := make(map[string][]string, len(graph))
	for _, node := range sortedKeys(graph) {
		// A set memoized while a cycle was open lacks what is reachable only
		// through the open ancestor, so memo entries live for one walk only.
		memo = make(map[string]map[string]struct{}, len(graph))
		reached := resolve(node)
		names := make([]string, 0, len(reached))
		for name := range reached {
			names = append(names, name)
		}
		closure[node] = sortedStrings(names)
	}
	return closure
}

func sortedStrings(ss []string) []string {
	out := append([]string(nil), ss...)
	// insertion sort is fine: these sets are small (schema dependency counts)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
