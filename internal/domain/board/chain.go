package board

// Neighbours returns the orthogonally adjacent positions of (x, y) that lie
// on the board.
func (b *Board) Neighbours(x, y int) []Point {
	points := make([]Point, 0, 4)

	if x > 0 {
		points = append(points, Point{x - 1, y})
	}
	if y > 0 {
		points = append(points, Point{x, y - 1})
	}
	if x < b.size-1 {
		points = append(points, Point{x + 1, y})
	}
	if y < b.size-1 {
		points = append(points, Point{x, y + 1})
	}

	return points
}

// ChainAt returns every position connected to the stone at (x, y) through
// stones of the same color. An empty intersection has no chain.
func (b *Board) ChainAt(x, y int) PointSet {
	chain, _ := b.flood(x, y)
	return chain
}

// Liberties returns the empty positions adjacent to the chain at (x, y).
func (b *Board) Liberties(x, y int) PointSet {
	_, liberties := b.flood(x, y)
	return liberties
}

// flood walks the chain at (x, y) with an explicit stack and collects both the
// chain and its liberties in one pass.
func (b *Board) flood(x, y int) (PointSet, PointSet) {
	chain := PointSet{}
	liberties := PointSet{}

	stone := b.At(x, y)
	if stone == Empty {
		return chain, liberties
	}

	start := Point{x, y}
	chain.Add(start)
	horizon := []Point{start}

	for len(horizon) > 0 {
		p := horizon[len(horizon)-1]
		horizon = horizon[:len(horizon)-1]

		for _, n := range b.Neighbours(p.X, p.Y) {
			switch b.At(n.X, n.Y) {
			case Empty:
				liberties.Add(n)
			case stone:
				if !chain.Contains(n) {
					chain.Add(n)
					horizon = append(horizon, n)
				}
			}
		}
	}

	return chain, liberties
}
