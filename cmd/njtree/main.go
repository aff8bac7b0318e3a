// Package main provides njtree, a command that builds a neighbor-joining
// tree from a distance matrix or a set of points and prints it in Newick
// format.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TrevorS/neighborjoin"
)

const (
	rootCmdUse   = "njtree [file]"
	rootCmdShort = "Build a neighbor-joining tree and print it in Newick format"
	rootCmdLong  = `njtree reads a YAML or JSON document from file (or stdin when file is
omitted or "-") holding either a distance matrix or a list of points:

  labels: [A, B, C]
  distances:
    - [0, 2, 3]
    - [2, 0, 3]
    - [3, 3, 0]

Points are converted to a Euclidean distance matrix. The tree is rooted at
the midpoint of its longest edge and written to stdout in Newick format.`
)

type options struct {
	order     bool
	edges     bool
	verbose   bool
	tolerance float64
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           rootCmdUse,
		Short:         rootCmdShort,
		Long:          rootCmdLong,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			logger, err := newLogger(opts.verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return run(in, cmd.OutOrStdout(), logger, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.order, "order", false, "also print the breadth-first visit order")
	cmd.Flags().BoolVar(&opts.edges, "edges", false, "also print a table of tree edges with branch lengths")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every merge to stderr")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", 0, "allowed asymmetry and diagonal deviation of the matrix")

	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(r io.Reader, w io.Writer, logger *zap.Logger, opts options) error {
	in, err := decodeInput(r)
	if err != nil {
		return err
	}
	labels, err := in.labelMap()
	if err != nil {
		return err
	}

	cfg := neighborjoin.DefaultConfig()
	cfg.Labels = labels
	cfg.Tolerance = opts.tolerance
	cfg.Logger = logger

	var result *neighborjoin.Result
	switch {
	case in.Points != nil && in.Distances != nil:
		return ErrBothMatrices
	case in.Points != nil:
		m, err := in.pointDistances()
		if err != nil {
			return err
		}
		result, err = neighborjoin.BuildSymmetric(m, cfg)
		if err != nil {
			return err
		}
	case in.Distances != nil:
		result, err = neighborjoin.BuildRows(in.Distances, cfg)
		if err != nil {
			return err
		}
	default:
		return ErrNoMatrix
	}

	if _, err := fmt.Fprintln(w, result.Newick); err != nil {
		return err
	}
	if opts.order {
		if _, err := fmt.Fprintln(w, formatOrder(result.Order)); err != nil {
			return err
		}
	}
	if opts.edges {
		tbl, err := edgeTable(result, labels)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, tbl); err != nil {
			return err
		}
	}
	return nil
}

func formatOrder(order []int) string {
	parts := make([]string, len(order))
	for i, id := range order {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " ")
}

// edgeTable renders the rooted tree's edges in breadth-first order.
func edgeTable(result *neighborjoin.Result, labels map[int]string) (string, error) {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Parent", "Child", "Length"})

	edges := result.Tree.Edges()
	for _, e := range edges {
		length, err := result.BranchLength(e.A, e.B)
		if err != nil {
			return "", err
		}
		child := strconv.Itoa(e.B)
		if name, ok := labels[e.B]; ok {
			child = name
		}
		tbl.AppendRow(table.Row{e.A, child, strconv.FormatFloat(length, 'f', 6, 64)})
	}
	tbl.AppendFooter(table.Row{"", "Total", fmt.Sprintf("%d edges", len(edges))})

	return tbl.Render(), nil
}
