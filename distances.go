package neighborjoin

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Distances is a symmetric distance table keyed by node id. Ids are assigned
// sequentially from 0 and never reused, so the table is a growable
// lower-triangular arena: row i holds the entries for ids 0..i, and adding a
// node is an append.
//
// Each entry carries a defined marker. At fails for pairs that were never
// written, which is how an incomplete input matrix surfaces.
type Distances struct {
	rows    [][]float64
	defined [][]bool
	leaves  int
}

// NewDistances returns a store holding nodes 0..n-1 with a zero diagonal and
// no off-diagonal entries.
func NewDistances(n int) *Distances {
	d := &Distances{
		rows:    make([][]float64, 0, n),
		defined: make([][]bool, 0, n),
		leaves:  max(n, 0),
	}
	for id := 0; id < n; id++ {
		d.grow()
	}
	return d
}

// Len returns the number of nodes in the store. The next id AddNode accepts
// is Len().
func (d *Distances) Len() int { return len(d.rows) }

// Leaves returns the ids 0..n-1 the store was created with. Nodes added
// later through AddNode are not leaves.
func (d *Distances) Leaves() []int {
	ids := make([]int, d.leaves)
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// AddNode appends an empty row for id, which must equal Len().
// The diagonal entry is defined as 0.
func (d *Distances) AddNode(id int) error {
	if id != len(d.rows) {
		return fmt.Errorf("%w: cannot add node %d, next id is %d", ErrInconsistentMatrix, id, len(d.rows))
	}
	d.grow()
	return nil
}

func (d *Distances) grow() {
	id := len(d.rows)
	row := make([]float64, id+1)
	def := make([]bool, id+1)
	def[id] = true
	d.rows = append(d.rows, row)
	d.defined = append(d.defined, def)
}

// At returns D[i][j]. It returns a *MatrixError if either id is absent or
// the pair was never set.
func (d *Distances) At(i, j int) (float64, error) {
	if i < j {
		i, j = j, i
	}
	if j < 0 || i >= len(d.rows) || !d.defined[i][j] {
		return 0, &MatrixError{I: i, J: j}
	}
	return d.rows[i][j], nil
}

// Set writes D[i][j] and D[j][i]. Both ids must already exist.
func (d *Distances) Set(i, j int, v float64) error {
	if i < j {
		i, j = j, i
	}
	if j < 0 || i >= len(d.rows) {
		return &MatrixError{I: i, J: j}
	}
	d.rows[i][j] = v
	d.defined[i][j] = true
	return nil
}

// at is the unchecked lookup used inside the reducer once completeness
// has been established.
func (d *Distances) at(i, j int) float64 {
	if i < j {
		i, j = j, i
	}
	return d.rows[i][j]
}

func (d *Distances) set(i, j int, v float64) {
	if i < j {
		i, j = j, i
	}
	d.rows[i][j] = v
	d.defined[i][j] = true
}

// checkComplete returns a *MatrixError for the first undefined pair among
// ids 0..n-1.
func (d *Distances) checkComplete(n int) error {
	if n > len(d.rows) {
		return &MatrixError{I: n - 1, J: n - 1}
	}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			if !d.defined[i][j] {
				return &MatrixError{I: i, J: j}
			}
		}
	}
	return nil
}

// Clone returns a deep copy.
func (d *Distances) Clone() *Distances {
	c := &Distances{
		rows:    make([][]float64, len(d.rows)),
		defined: make([][]bool, len(d.defined)),
		leaves:  d.leaves,
	}
	for i := range d.rows {
		c.rows[i] = append([]float64(nil), d.rows[i]...)
		c.defined[i] = append([]bool(nil), d.defined[i]...)
	}
	return c
}

// Symmetric exports the store as a dense symmetric matrix. Undefined pairs
// are exported as NaN.
func (d *Distances) Symmetric() *mat.SymDense {
	n := len(d.rows)
	if n == 0 {
		return &mat.SymDense{}
	}
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			v := d.rows[i][j]
			if !d.defined[i][j] {
				v = math.NaN()
			}
			m.SetSym(i, j, v)
		}
	}
	return m
}

// DistancesFromSymmetric copies a gonum symmetric matrix into a new store.
// A SymDense only stores one triangle, so only the diagonal is checked.
func DistancesFromSymmetric(m mat.Symmetric) (*Distances, error) {
	n := m.SymmetricDim()
	return distancesFrom(n, m.At, 0)
}

// DistancesFromRows copies an n×n matrix given as rows into a new store,
// rejecting ragged rows, asymmetry and a non-zero diagonal.
func DistancesFromRows(rows [][]float64) (*Distances, error) {
	return distancesFromRows(rows, 0)
}

func distancesFromRows(rows [][]float64, tol float64) (*Distances, error) {
	n := len(rows)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimensionMismatch, i, len(row), n)
		}
	}
	return distancesFrom(n, func(i, j int) float64 { return rows[i][j] }, tol)
}

// DistancesFromFlat copies a flat row-major n×n matrix into a new store.
// flat[i*n+j] is the distance between points i and j.
func DistancesFromFlat(flat []float64, n int) (*Distances, error) {
	return distancesFromFlat(flat, n, 0)
}

func distancesFromFlat(flat []float64, n int, tol float64) (*Distances, error) {
	if !squareLength(len(flat), n) {
		return nil, fmt.Errorf("%w: flat length %d does not match n*n (n=%d)", ErrDimensionMismatch, len(flat), n)
	}
	return distancesFrom(n, func(i, j int) float64 { return flat[i*n+j] }, tol)
}

// squareLength reports whether length == n*n without computing n*n.
func squareLength(length, n int) bool {
	if n <= 0 {
		return n == 0 && length == 0
	}
	return length%n == 0 && length/n == n
}

// distancesFrom validates symmetry and the zero diagonal within tol and
// builds the store. Nothing else about the metric is checked.
func distancesFrom(n int, at func(i, j int) float64, tol float64) (*Distances, error) {
	d := NewDistances(n)
	for i := 0; i < n; i++ {
		if v := at(i, i); math.Abs(v) > tol || math.IsNaN(v) {
			return nil, fmt.Errorf("%w: D[%d][%d] = %g", ErrNonZeroDiagonal, i, i, v)
		}
		for j := 0; j < i; j++ {
			a, b := at(i, j), at(j, i)
			if math.Abs(a-b) > tol {
				return nil, fmt.Errorf("%w: D[%d][%d] = %g, D[%d][%d] = %g", ErrAsymmetric, i, j, a, j, i, b)
			}
			d.set(i, j, a)
		}
	}
	return d, nil
}
