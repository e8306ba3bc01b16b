package mayo

import (
	"os"

	"github.com/mayo-pq/mayo/echelon"
	"github.com/mayo-pq/mayo/gf16"
)

// sampleSolution finds x such that a*x = y, using r as the free-variable
// assignment, in place in time independent of a's, y's, and r's contents.
// a is mutated: its last column is overwritten with y-Ar and then reduced
// by echelon.EF. Returns false if the linear system is singular, in which
// case the caller must retry with a new r.
func sampleSolution(a []byte, y, r []byte, x []byte, k, o, m, aCols int) bool {
	ko := k * o
	copy(x[:ko], r[:ko])

	ar := make([]byte, m)
	for i := 0; i < m; i++ {
		a[ko+i*aCols] = 0
	}
	gf16.MatMul(a, r, ar, aCols, m, 1)

	for i := 0; i < m; i++ {
		a[ko+i*aCols] = gf16.Sub(y[i], ar[i])
	}

	rank := echelon.EF(a, m, aCols)
	dbg(os.Stderr, "[sample] echelon rank=%d of %d rows\n", rank, m)

	var fullRank byte
	for i := 0; i < aCols-1; i++ {
		fullRank |= a[(m-1)*aCols+i]
	}
	if fullRank == 0 {
		return false
	}

	for row := m - 1; row >= 0; row-- {
		var finished byte
		colUpperBound := row + 32/(m-row)
		if colUpperBound > ko {
			colUpperBound = ko
		}

		for col := row; col <= colUpperBound; col++ {
			correctColumn := echelon.CtCompare8(a[row*aCols+col], 0) & ^finished

			u := correctColumn & a[row*aCols+aCols-1]
			x[col] ^= u

			i := 0
			for i < row {
				end := i + 8
				if end > row {
					end = row
				}
				var tmp uint64
				for ii := i; ii < end; ii++ {
					tmp ^= uint64(a[ii*aCols+col]) << uint((ii - i) * 8)
				}
				tmp = gf16.MulFx8(u, tmp)

				for ii := i; ii < end; ii++ {
					a[ii*aCols+aCols-1] ^= byte((tmp >> uint((ii-i)*8)) & 0xf)
				}
				i += 8
			}

			finished |= correctColumn
		}
	}

	return true
}
