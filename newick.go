package neighborjoin

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// lengthPrecision is the number of decimal digits written for branch lengths.
const lengthPrecision = 6

// Newick serializes t in Newick format using branch lengths from d, the
// store extended by Join. The two branches below the root each get half of
// the split edge, D[left][right]/2; every other branch from a node to its
// child c has length D[node][c].
//
// Leaves are written as labels[id], or as the decimal id when labels is nil
// or has no entry for the leaf. A label holding whitespace or one of
// ()[]',:; fails with ErrInvalidLabel.
func Newick(t *Tree, d *Distances, labels map[int]string) (string, error) {
	w := newickWriter{t: t, d: d, labels: labels}
	if err := w.write(t.Root(), true); err != nil {
		return "", err
	}
	return w.b.String(), nil
}

// WriteNewick writes the Newick serialization of t to w.
func WriteNewick(w io.Writer, t *Tree, d *Distances, labels map[int]string) error {
	s, err := Newick(t, d, labels)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

type newickWriter struct {
	b      strings.Builder
	t      *Tree
	d      *Distances
	labels map[int]string
}

func (w *newickWriter) write(id int, first bool) error {
	n, ok := w.t.Node(id)
	if !ok {
		return fmt.Errorf("%w: node %d is not in the tree", ErrMalformedTree, id)
	}
	if n.Leaf {
		name, err := w.label(id)
		if err != nil {
			return err
		}
		w.b.WriteString(name)
		if first {
			w.b.WriteByte(';')
		}
		return nil
	}

	var leftLength, rightLength float64
	if first {
		split, err := w.d.At(n.Left, n.Right)
		if err != nil {
			return err
		}
		leftLength, rightLength = split/2, split/2
	} else {
		var err error
		if leftLength, err = w.d.At(id, n.Left); err != nil {
			return err
		}
		if rightLength, err = w.d.At(id, n.Right); err != nil {
			return err
		}
	}

	w.b.WriteByte('(')
	if err := w.write(n.Left, false); err != nil {
		return err
	}
	w.b.WriteByte(':')
	w.b.WriteString(formatLength(leftLength))
	w.b.WriteByte(',')
	if err := w.write(n.Right, false); err != nil {
		return err
	}
	w.b.WriteByte(':')
	w.b.WriteString(formatLength(rightLength))
	w.b.WriteByte(')')

	if first {
		w.b.WriteByte(';')
	}
	return nil
}

func (w *newickWriter) label(id int) (string, error) {
	name, ok := w.labels[id]
	if !ok {
		return strconv.Itoa(id), nil
	}
	if !validLabel(name) {
		return "", fmt.Errorf("%w: leaf %d: %q", ErrInvalidLabel, id, name)
	}
	return name, nil
}

// labelReserved holds the characters that end or delimit an unquoted Newick
// label.
const labelReserved = "()[]',:; \t\r\n"

// validLabel reports whether name can be written as an unquoted label.
func validLabel(name string) bool {
	return !strings.ContainsAny(name, labelReserved)
}

func formatLength(v float64) string {
	return strconv.FormatFloat(v, 'f', lengthPrecision, 64)
}
