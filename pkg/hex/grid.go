package hex

// Neighbors returns the six positions adjacent to p, in Directions order.
func Neighbors(p Position) []Position {
	a := p.ToAxial()
	out := make([]Position, 0, len(Directions))
	for _, d := range Directions {
		out = append(out, AxialToPosition(a.Add(d)))
	}
	return out
}

// Ring returns the cells exactly k steps from center. The walk starts at
// the corner k steps along Directions[0] and runs counter-clockwise,
// corner to corner. A k of zero or less yields just center.
func Ring(center Position, k int) []Position {
	if k <= 0 {
		return []Position{center}
	}
	c := center.ToAxial()
	out := make([]Position, 0, 6*k)
	for side, d := range Directions {
		corner := c.Add(d.Mul(k))
		step := Directions[(side+2)%len(Directions)]
		for i := 0; i < k; i++ {
			out = append(out, AxialToPosition(corner.Add(step.Mul(i))))
		}
	}
	return out
}

// Disk returns all positions at distance <= r from center.
func Disk(center Position, r int) []Position {
	if r < 0 {
		return nil
	}
	c := center.ToAxial()
	res := make([]Position, 0, 1+3*r*(r+1))
	for q := -r; q <= r; q++ {
		for r2 := max(-r, -q-r); r2 <= min(r, -q+r); r2++ {
			res = append(res, AxialToPosition(c.Add(Axial{q, r2})))
		}
	}
	return res
}
