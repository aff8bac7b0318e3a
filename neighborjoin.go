package neighborjoin

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Config controls tree construction.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Labels maps leaf ids to the names written in the Newick output.
	// Leaves without an entry are written as their decimal id. Names must
	// not contain whitespace or any of ()[]',:; . Default: nil.
	Labels map[int]string

	// Tolerance is the slack allowed when BuildPrecomputed and BuildSymmetric
	// check the input for symmetry and a zero diagonal. Must be >= 0.
	// Default: 0 (exact).
	Tolerance float64

	// Logger receives merge and rooting details at debug level, and a
	// warning when several edges tie for the root position.
	// Default: a no-op logger.
	Logger *zap.Logger
}

// Result contains the output of Build.
type Result struct {
	// Edges is the unrooted tree in the order the reducer produced it.
	Edges []Edge

	// Merges lists the agglomeration steps, one per internal node. Empty for
	// two leaves.
	Merges []Merge

	// Root is the synthetic root id, one past the last internal node.
	Root int

	// Split is the longest edge, which the root was inserted on.
	Split Edge

	// RootedEdges is Edges with Split replaced by the two root edges.
	RootedEdges []Edge

	// Tree is the rooted binary tree.
	Tree *Tree

	// Order is the breadth-first visit order, starting at Root.
	Order []int

	// Newick is the serialized tree, terminated by ';'.
	Newick string

	// Distances is the store extended with every internal node. It holds
	// no entries for Root.
	Distances *Distances
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Logger: zap.NewNop(),
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if cfg.Tolerance < 0 || math.IsNaN(cfg.Tolerance) {
		return fmt.Errorf("%w: Tolerance must be >= 0, got %g", ErrInvalidConfig, cfg.Tolerance)
	}
	for id, name := range cfg.Labels {
		if !validLabel(name) {
			return fmt.Errorf("%w: leaf %d: %q", ErrInvalidLabel, id, name)
		}
	}
	return nil
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// Build runs the whole pipeline on a complete leaf distance matrix: neighbor
// joining, rooting on the longest edge, assembly, breadth-first ordering and
// Newick serialization. d is cloned and never modified.
//
// Two leaves skip the reducer and form a single edge. Fewer than two fail
// with ErrInvalidInputSize.
func Build(d *Distances, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	n := d.Len()
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 leaves, got %d", ErrInvalidInputSize, n)
	}

	work := d.Clone()
	var edges []Edge
	var merges []Merge
	if n == 2 {
		if err := work.checkComplete(n); err != nil {
			return nil, err
		}
		edges = []Edge{{A: 0, B: 1}}
	} else {
		joining, err := Join(work, cfg.Logger)
		if err != nil {
			return nil, err
		}
		edges, merges = joining.Edges, joining.Merges
	}

	if err := ValidateEdges(edges); err != nil {
		return nil, err
	}
	return buildFromEdges(work, edges, merges, cfg)
}

// buildFromEdges roots, assembles and serializes an unrooted tree whose
// branch lengths are in d.
func buildFromEdges(d *Distances, edges []Edge, merges []Merge, cfg Config) (*Result, error) {
	rooting, err := MidpointRoot(edges, d)
	if err != nil {
		return nil, err
	}
	if rooting.Ties > 0 {
		cfg.Logger.Warn("longest edge is tied, rooting on the first",
			zap.Int("a", rooting.Split.A),
			zap.Int("b", rooting.Split.B),
			zap.Float64("length", rooting.Length),
			zap.Int("ties", rooting.Ties),
		)
	}
	cfg.Logger.Debug("rooted tree",
		zap.Int("root", rooting.Root),
		zap.Int("a", rooting.Split.A),
		zap.Int("b", rooting.Split.B),
		zap.Float64("length", rooting.Length),
	)

	tree, err := Assemble(rooting.Root, rooting.Edges)
	if err != nil {
		return nil, err
	}
	if tree.EdgeCount() != tree.Len()-1 {
		return nil, fmt.Errorf("%w: %d edges over %d nodes", ErrMalformedTree, tree.EdgeCount(), tree.Len())
	}

	newick, err := Newick(tree, d, cfg.Labels)
	if err != nil {
		return nil, err
	}

	order := tree.BFS()
	cfg.Logger.Debug("built tree",
		zap.Int("leaves", len(tree.Leaves())),
		zap.Int("nodes", tree.Len()),
		zap.Int("root", tree.Root()),
	)

	return &Result{
		Edges:       edges,
		Merges:      merges,
		Root:        rooting.Root,
		Split:       rooting.Split,
		RootedEdges: rooting.Edges,
		Tree:        tree,
		Order:       order,
		Newick:      newick,
		Distances:   d,
	}, nil
}

// BranchLength returns the length of the tree edge from parent to child as
// written in the Newick output: half the split edge below the root,
// D[parent][child] elsewhere.
func (r *Result) BranchLength(parent, child int) (float64, error) {
	n, ok := r.Tree.Node(parent)
	if !ok || n.Leaf || (n.Left != child && n.Right != child) {
		return 0, fmt.Errorf("%w: %d is not a child of %d", ErrMalformedTree, child, parent)
	}
	if parent == r.Root {
		split, err := r.Distances.At(n.Left, n.Right)
		if err != nil {
			return 0, err
		}
		return split / 2, nil
	}
	return r.Distances.At(parent, child)
}

// BuildPrecomputed runs Build on a flat []float64 of length n*n in row-major
// order, where distMatrix[i*n+j] is the distance between points i and j.
// The matrix must be symmetric with a zero diagonal within cfg.Tolerance.
func BuildPrecomputed(distMatrix []float64, n int, cfg Config) (*Result, error) {
	d, err := distancesFromFlat(distMatrix, n, max(cfg.Tolerance, 0))
	if err != nil {
		return nil, err
	}
	return Build(d, cfg)
}

// BuildSymmetric runs Build on a gonum symmetric matrix. The diagonal must
// be zero within cfg.Tolerance.
func BuildSymmetric(m mat.Symmetric, cfg Config) (*Result, error) {
	d, err := distancesFrom(m.SymmetricDim(), m.At, max(cfg.Tolerance, 0))
	if err != nil {
		return nil, err
	}
	return Build(d, cfg)
}

// BuildRows runs Build on an n×n matrix given as rows. The matrix must be
// symmetric with a zero diagonal within cfg.Tolerance.
func BuildRows(rows [][]float64, cfg Config) (*Result, error) {
	d, err := distancesFromRows(rows, max(cfg.Tolerance, 0))
	if err != nil {
		return nil, err
	}
	return Build(d, cfg)
}
