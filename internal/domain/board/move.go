package board

// LegalMove reports whether stone may be placed at (x, y). The ko rule is not
// checked here because a board keeps no history.
func (b *Board) LegalMove(stone Stone, x, y int) bool {
	if stone == Empty || !b.InBounds(x, y) || b.At(x, y) != Empty {
		return false
	}

	// A move that captures is legal even if it looks like self-capture, so
	// this has to run before the liberty check below.
	if len(b.captures(stone, x, y)) > 0 {
		return true
	}

	b.Set(x, y, stone)
	liberties := b.Liberties(x, y)
	b.Set(x, y, Empty)

	return liberties.Len() > 0
}

// MakeMove places stone at (x, y) and removes every opposing chain left
// without liberties. It returns false and leaves the board untouched when the
// move is illegal.
func (b *Board) MakeMove(stone Stone, x, y int) bool {
	if !b.InBounds(x, y) || b.At(x, y) != Empty || stone == Empty {
		return false
	}
	if !b.LegalMove(stone, x, y) {
		return false
	}

	for _, chain := range b.captures(stone, x, y) {
		for p := range chain {
			b.Set(p.X, p.Y, Empty)
		}
	}

	b.Set(x, y, stone)

	return true
}

// captures returns the opposing chains next to (x, y) whose only liberty is
// (x, y), evaluated on the board as it is before the stone is placed.
func (b *Board) captures(stone Stone, x, y int) []PointSet {
	target := Point{x, y}
	opponent := stone.Opponent()

	var chains []PointSet
	seen := PointSet{}

	for _, n := range b.Neighbours(x, y) {
		if b.At(n.X, n.Y) != opponent || seen.Contains(n) {
			continue
		}

		chain, liberties := b.flood(n.X, n.Y)
		for p := range chain {
			seen.Add(p)
		}

		if only, ok := liberties.Only(); ok && only == target {
			chains = append(chains, chain)
		}
	}

	return chains
}
