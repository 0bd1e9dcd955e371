// SPDX-License-Identifier: MIT

package hungarian

// workspace is the phase-3/4 working state. It is created by each solve or
// update call and never stored on the Solver.
type workspace struct {
	coveredRows []Cover
	coveredCols []Cover
	markedRows  []Mark
	// discoveredBy[j] is the marked row whose zero covered column j.
	// Meaningful only while coveredCols[j] == Covered.
	discoveredBy []int
}

func newWorkspace(n int) *workspace {
	return &workspace{
		coveredRows:  make([]Cover, n),
		coveredCols:  make([]Cover, n),
		markedRows:   make([]Mark, n),
		discoveredBy: make([]int, n),
	}
}

// reset starts a fresh phase-3 pass: assigned rows covered, unassigned rows
// uncovered and marked as search roots, all columns uncovered.
func (ws *workspace) reset(rowAssign []Slot) {
	for i := range rowAssign {
		ws.coveredCols[i] = Uncovered
		ws.discoveredBy[i] = 0
		if rowAssign[i].Valid {
			ws.coveredRows[i] = Covered
			ws.markedRows[i] = Unmarked
		} else {
			ws.coveredRows[i] = Uncovered
			ws.markedRows[i] = Marked
		}
	}
}

// nextMarked returns the lowest-index marked row.
func (ws *workspace) nextMarked() (int, bool) {
	for i, m := range ws.markedRows {
		if m == Marked {
			return i, true
		}
	}

	return 0, false
}

// augment is phase 3: grow alternating trees from every unassigned row over
// zero-slack cells in uncovered columns.
//
//   - zero in a matched column j: cover j, uncover and mark its row (tree grows);
//   - zero in a free column j: flip the path root→…→j, matching size +1, and
//     restart phase 3 with fresh covers;
//   - a fully scanned row is unmarked.
//
// When no marked row remains, covered rows + covered columns form a minimum
// vertex cover of the zero cells and phase 4 follows.
//
// Complexity: O(n²) per pass.
func (s *Solver) augment(ws *workspace) phase {
	var (
		n    = s.n
		i, j int
		ok   bool
	)
	ws.reset(s.rowAssign)

	for {
		if i, ok = ws.nextMarked(); !ok {
			return phaseAdjust
		}
		for j = 0; j < n; j++ {
			if s.slack[i*n+j] != 0 || ws.coveredCols[j] == Covered {
				continue
			}
			if owner := s.colAssign[j]; owner.Valid {
				ws.coveredCols[j] = Covered
				ws.coveredRows[owner.Index] = Uncovered
				ws.markedRows[owner.Index] = Marked
				ws.discoveredBy[j] = i
				continue
			}
			s.flip(ws, i, j)

			return phaseAugment
		}
		ws.markedRows[i] = Unmarked
	}
}

// flip matches row i to free column j and walks back to the tree root,
// shifting each displaced row's column to the row that discovered it.
// Every edge on the path is tight, so complementary slackness is preserved.
//
// Complexity: O(path length) ≤ O(n).
func (s *Solver) flip(ws *workspace, i, j int) {
	for {
		prev := s.rowAssign[i]
		s.rowAssign[i] = Slot{Index: j, Valid: true}
		s.colAssign[j] = Slot{Index: i, Valid: true}
		if !prev.Valid {
			// Reached an unassigned root.
			s.assignments++

			return
		}
		j = prev.Index
		i = ws.discoveredBy[j]
	}
}
