package echelon

import (
	"testing"

	"github.com/mayo-pq/mayo/gf16"
)

// solveNaive performs ordinary (non-constant-time) forward Gaussian
// elimination on a copy of the matrix for comparison: each pivot row is
// scaled to a leading 1 and only the rows below it are eliminated.
func solveNaive(a []byte, nrows, ncols int) []byte {
	m := make([]byte, len(a))
	copy(m, a)
	row := func(r int) []byte { return m[r*ncols : (r+1)*ncols] }

	pivotRow := 0
	for col := 0; col < ncols && pivotRow < nrows; col++ {
		sel := -1
		for r := pivotRow; r < nrows; r++ {
			if row(r)[col] != 0 {
				sel = r
				break
			}
		}
		if sel == -1 {
			continue
		}
		m[sel*ncols], m[pivotRow*ncols] = m[pivotRow*ncols], m[sel*ncols]
		for c := 0; c < ncols; c++ {
			row(sel)[c], row(pivotRow)[c] = row(pivotRow)[c], row(sel)[c]
		}
		inv := gf16.Inv(row(pivotRow)[col])
		for c := 0; c < ncols; c++ {
			row(pivotRow)[c] = gf16.Mul(row(pivotRow)[c], inv)
		}
		for r := pivotRow + 1; r < nrows; r++ {
			factor := row(r)[col]
			if factor == 0 {
				continue
			}
			for c := 0; c < ncols; c++ {
				row(r)[c] = gf16.Add(row(r)[c], gf16.Mul(factor, row(pivotRow)[c]))
			}
		}
		pivotRow++
	}
	return m
}

func TestEFFullRank(t *testing.T) {
	nrows, ncols := 4, 6
	a := []byte{
		1, 2, 3, 4, 5, 6,
		0, 1, 1, 2, 3, 1,
		2, 0, 1, 1, 0, 4,
		3, 3, 0, 1, 2, 2,
	}
	want := solveNaive(a, nrows, ncols)
	got := make([]byte, len(a))
	copy(got, a)
	EF(got, nrows, ncols)

	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("mismatch at %d: got %d want %d\ngot=%v\nwant=%v", i, got[i], want[i], got, want)
		}
	}
}

func TestEFLeadingOnesAndZeroBelow(t *testing.T) {
	nrows, ncols := 3, 5
	a := []byte{
		2, 1, 0, 3, 1,
		1, 1, 1, 0, 2,
		3, 2, 1, 1, 0,
	}
	EF(a, nrows, ncols)

	pivotCol := 0
	for r := 0; r < nrows; r++ {
		for pivotCol < ncols && a[r*ncols+pivotCol] == 0 {
			pivotCol++
		}
		if pivotCol == ncols {
			break
		}
		if a[r*ncols+pivotCol] != 1 {
			t.Fatalf("row %d pivot at col %d is %d, want leading 1", r, pivotCol, a[r*ncols+pivotCol])
		}
		for below := r + 1; below < nrows; below++ {
			if a[below*ncols+pivotCol] != 0 {
				t.Fatalf("row %d col %d is %d, want 0 below pivot", below, pivotCol, a[below*ncols+pivotCol])
			}
		}
		pivotCol++
	}
}

func TestEFSingularDetected(t *testing.T) {
	nrows, ncols := 3, 4
	a := []byte{
		1, 2, 3, 6,
		2, 4, 6, 5,
		0, 0, 0, 1,
	}
	EF(a, nrows, ncols)
	var lastRowOr byte
	for c := 0; c < ncols-1; c++ {
		lastRowOr |= a[(nrows-1)*ncols+c]
	}
	if lastRowOr != 0 {
		t.Fatalf("expected singular system, last row non-zero: %v", a[(nrows-1)*ncols:])
	}
}
