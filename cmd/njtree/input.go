package main

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoMatrix is returned when the input has neither distances nor points.
	ErrNoMatrix = errors.New("input needs either distances or points")

	// ErrBothMatrices is returned when the input has both distances and points.
	ErrBothMatrices = errors.New("input has both distances and points")

	// ErrBadPoints is returned when points have differing or zero dimensions.
	ErrBadPoints = errors.New("points must all have the same non-zero dimension")

	// ErrLabelCount is returned when labels do not match the number of leaves.
	ErrLabelCount = errors.New("label count does not match leaf count")
)

// input is the document njtree reads. YAML is a superset of JSON, so both
// formats decode through yaml.v3.
type input struct {
	// Labels names the leaves in id order. Optional.
	Labels []string `yaml:"labels"`
	// Distances is a full n×n symmetric matrix with a zero diagonal.
	Distances [][]float64 `yaml:"distances"`
	// Points are coordinates; distances between them are Euclidean.
	Points [][]float64 `yaml:"points"`
}

func decodeInput(r io.Reader) (*input, error) {
	var in input
	if err := yaml.NewDecoder(r).Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoMatrix
		}
		return nil, fmt.Errorf("decode input: %w", err)
	}
	return &in, nil
}

func (in *input) leafCount() int {
	if in.Points != nil {
		return len(in.Points)
	}
	return len(in.Distances)
}

// labelMap converts the label list into the id→name form the library takes.
func (in *input) labelMap() (map[int]string, error) {
	if len(in.Labels) == 0 {
		return nil, nil
	}
	if len(in.Labels) != in.leafCount() {
		return nil, fmt.Errorf("%w: %d labels for %d leaves", ErrLabelCount, len(in.Labels), in.leafCount())
	}
	labels := make(map[int]string, len(in.Labels))
	for id, name := range in.Labels {
		labels[id] = name
	}
	return labels, nil
}

// pointDistances builds the Euclidean distance matrix for in.Points.
func (in *input) pointDistances() (*mat.SymDense, error) {
	n := len(in.Points)
	if n == 0 {
		return nil, ErrNoMatrix
	}
	dims := len(in.Points[0])
	for i, p := range in.Points {
		if len(p) != dims || dims == 0 {
			return nil, fmt.Errorf("%w: point %d has %d coordinates, want %d", ErrBadPoints, i, len(p), dims)
		}
	}

	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m.SetSym(i, j, floats.Distance(in.Points[i], in.Points[j], 2))
		}
	}
	return m, nil
}
