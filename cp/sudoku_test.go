package cp

import "testing"

// sudokuSolution is a known-valid completed grid (rows, columns, and
// 3x3 blocks are each a permutation of 1..9).
var sudokuSolution = [9][9]int{
	{5, 3, 4, 6, 7, 8, 9, 1, 2},
	{6, 7, 2, 1, 9, 5, 3, 4, 8},
	{1, 9, 8, 3, 4, 2, 5, 6, 7},
	{8, 5, 9, 7, 6, 1, 4, 2, 3},
	{4, 2, 6, 8, 5, 3, 7, 9, 1},
	{7, 1, 3, 9, 2, 4, 8, 5, 6},
	{9, 6, 1, 5, 3, 7, 2, 8, 4},
	{2, 8, 7, 4, 1, 9, 6, 3, 5},
	{3, 4, 5, 2, 8, 6, 1, 7, 9},
}

// buildSudoku installs row/column/3x3-block AllDifferent constraints
// over a 9x9 grid of variables, with every cell pinned to clue except
// the ones in blank (given as (row,col) pairs), which are left open.
func buildSudoku(blank map[[2]int]bool) (*Solver, [9][9]*Variable) {
	sv := NewSolver()
	var grid [9][9]*Variable
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if blank[[2]int{r, c}] {
				grid[r][c] = sv.NewVariable(1, 9, "")
			} else {
				grid[r][c] = sv.NewVariable(sudokuSolution[r][c], sudokuSolution[r][c], "")
			}
		}
	}
	for r := 0; r < 9; r++ {
		row := make([]*Variable, 9)
		copy(row, grid[r][:])
		sv.AddConstraint(NewAllDifferentConstraint(row))
	}
	for c := 0; c < 9; c++ {
		col := make([]*Variable, 9)
		for r := 0; r < 9; r++ {
			col[r] = grid[r][c]
		}
		sv.AddConstraint(NewAllDifferentConstraint(col))
	}
	for br := 0; br < 3; br++ {
		for bc := 0; bc < 3; bc++ {
			block := make([]*Variable, 0, 9)
			for r := br * 3; r < br*3+3; r++ {
				for c := bc * 3; c < bc*3+3; c++ {
					block = append(block, grid[r][c])
				}
			}
			sv.AddConstraint(NewAllDifferentConstraint(block))
		}
	}
	return sv, grid
}

// TestSudokuCompletesSingleBlankCellByPropagation exercises the
// row/column/block AllDifferent constraints against a single missing
// cell: the three constraints intersecting at (0,0) each independently
// exclude every other digit, so the cell is forced to 5 by fixpoint
// propagation alone, with no branching.
func TestSudokuCompletesSingleBlankCellByPropagation(t *testing.T) {
	sv, grid := buildSudoku(map[[2]int]bool{{0, 0}: true})
	stream := sv.Search(Config{})
	if !stream.Next() {
		t.Fatal("expected a solution")
	}
	if grid[0][0].Value() != 5 {
		t.Fatalf("grid[0][0] = %d, want 5", grid[0][0].Value())
	}
}

// TestSudokuSolutionIsPermutationInEveryUnit checks the classic
// invariant directly against the known-valid completed grid: every row,
// column, and 3x3 block is a permutation of 1..9.
func TestSudokuSolutionIsPermutationInEveryUnit(t *testing.T) {
	check := func(name string, unit []int) {
		seen := make(map[int]bool, 9)
		for _, v := range unit {
			if v < 1 || v > 9 || seen[v] {
				t.Fatalf("%s is not a permutation of 1..9: %v", name, unit)
			}
			seen[v] = true
		}
	}
	for r := 0; r < 9; r++ {
		check("row", sudokuSolution[r][:])
	}
	for c := 0; c < 9; c++ {
		col := make([]int, 9)
		for r := 0; r < 9; r++ {
			col[r] = sudokuSolution[r][c]
		}
		check("column", col)
	}
	for br := 0; br < 3; br++ {
		for bc := 0; bc < 3; bc++ {
			block := make([]int, 0, 9)
			for r := br * 3; r < br*3+3; r++ {
				for c := bc * 3; c < bc*3+3; c++ {
					block = append(block, sudokuSolution[r][c])
				}
			}
			check("block", block)
		}
	}
}

// TestSudokuCompletesSeveralBlankCells leaves five cells open, three of
// them in the top-left 3x3 block. Each is the only open cell in its row,
// so the row AllDifferent constraints fix every one of them during the
// root fixpoint; the test checks the completed cells against the known
// grid.
func TestSudokuCompletesSeveralBlankCells(t *testing.T) {
	blank := map[[2]int]bool{
		{0, 0}: true, {1, 1}: true, {2, 2}: true,
		{4, 5}: true, {8, 8}: true,
	}
	sv, grid := buildSudoku(blank)
	stream := sv.Search(Config{})
	if !stream.Next() {
		t.Fatal("expected a solution")
	}
	for rc := range blank {
		if grid[rc[0]][rc[1]].Value() != sudokuSolution[rc[0]][rc[1]] {
			t.Fatalf("grid[%d][%d] = %d, want %d", rc[0], rc[1], grid[rc[0]][rc[1]].Value(), sudokuSolution[rc[0]][rc[1]])
		}
	}
}
