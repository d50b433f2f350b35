package lattice

// Boundary returns every triangle that shares an edge with some member of X but is not itself a member.
//
// Each boundary triangle appears once, even when reachable from several members.
// The order is the order of discovery (deterministic for a given X) and carries no other meaning.
func Boundary(X Shape) []Triangle {
	members := make(map[Triangle]struct{}, len(X))
	for _, t := range X {
		members[t] = struct{}{}
	}

	seen := make(map[Triangle]struct{}, len(X)+2)
	border := make([]Triangle, 0, len(X)+2)
	for _, t := range X {
		for _, nb := range AdjacentTriangles(t) {
			if _, in := members[nb]; in {
				continue
			}
			if _, dupe := seen[nb]; dupe {
				continue
			}
			seen[nb] = struct{}{}
			border = append(border, nb)
		}
	}
	return border
}
