package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/2x3systems/tri6/tri6"
	"github.com/2x3systems/tri6/canon"
	"github.com/2x3systems/tri6/catalog"
	"github.com/2x3systems/tri6/expr"
	"github.com/2x3systems/tri6/graph"
	"github.com/2x3systems/tri6/lattice"
	"github.com/2x3systems/tri6/render"
	"github.com/2x3systems/tri6/walker"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Params is a parsed command line.
type Params struct {
	Config tri6.Config
	Shape  string // if set, describe this shape expression rather than enumerating
	Script string // gpython script to run
	HasN   bool   // a size was given as the positional arg
}

func (params *Params) runREPL() bool {
	return len(params.Script) > 0 || (!params.HasN && len(params.Shape) == 0)
}

const usage = `usage: tri6 [flags] <n>

Enumerates every distinct polyiamond of n triangles (up to rotation and reflection),
verifies the count against the published sequence, and prints the shapes selected by -edges and -verts.
With no <n> and no -shape, a gpython REPL is started (with the _py6 module available).

`

func parseParams(args []string) (*Params, error) {
	var (
		configPath string
		params     Params
		flags      tri6.Config
	)

	fset := flag.NewFlagSet("tri6", flag.ContinueOnError)
	fset.Usage = func() {
		fmt.Fprint(fset.Output(), usage)
		fset.PrintDefaults()
	}
	fset.StringVar(&configPath, "config", "", "YAML file of params (flags override its values)")
	fset.BoolVar(&flags.Print.Display, "show", false, "draw each selected shape")
	fset.BoolVar(&flags.Print.Info, "info", false, "print vertex, edge, hole and symmetry counts of each selected shape")
	fset.IntVar(&flags.Edges, "edges", 0, "select only shapes having this many edges")
	fset.IntVar(&flags.Vertices, "verts", 0, "select only shapes having this many vertices")
	fset.IntVar(&flags.Enum.SizeMin, "min", 0, "also enumerate sizes min..n")
	fset.IntVar(&flags.Enum.Workers, "w", 1, "number of workers growing each generation")
	fset.StringVar(&flags.Graph6, "g6", "", "write the graph6 line of each selected shape to this file")
	fset.StringVar(&flags.Coords, "coords", "", "write vertex and edge coordinates of each distinct selected graph to this file")
	fset.StringVar(&flags.Catalog.DbPathName, "catalog", "", "add selected shapes to the catalog at this path")
	fset.StringVar(&params.Shape, "shape", "", "canonicalize and describe a single shape, e.g. \"^(0,0) v(0,0)\"")
	fset.StringVar(&params.Script, "py", "", "run this gpython script")

	// klog's flags (-v, -logtostderr, ...) parse alongside ours
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "2")

	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	params.Config = tri6.DefaultConfig()
	if len(configPath) > 0 {
		var err error
		if params.Config, err = tri6.LoadConfig(configPath); err != nil {
			return nil, err
		}
	}

	if fset.NArg() > 0 {
		n, err := strconv.Atoi(fset.Arg(0))
		if err != nil {
			return nil, errors.Wrapf(tri6.ErrBadConfig, "size %q is not an integer", fset.Arg(0))
		}
		params.HasN = true
		params.Config.Enum.SizeMax = max(n, 0)
		if len(configPath) == 0 {
			params.Config.Enum.SizeMin = params.Config.Enum.SizeMax
		}
	}

	cfg := &params.Config
	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "show":
			cfg.Print.Display = flags.Print.Display
		case "info":
			cfg.Print.Info = flags.Print.Info
		case "edges":
			cfg.Edges = flags.Edges
		case "verts":
			cfg.Vertices = flags.Vertices
		case "min":
			cfg.Enum.SizeMin = flags.Enum.SizeMin
		case "w":
			cfg.Enum.Workers = flags.Enum.Workers
		case "g6":
			cfg.Graph6 = flags.Graph6
		case "coords":
			cfg.Coords = flags.Coords
		case "catalog":
			cfg.Catalog.DbPathName = flags.Catalog.DbPathName
		}
	})
	cfg.Print.Render = render.ShapeToDisplayForm

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &params, nil
}

// run carries out everything params asks for except the gpython REPL or script, writing its report to out.
func run(params *Params, out io.Writer) error {
	if len(params.Shape) > 0 {
		if err := describeShape(params, out); err != nil {
			return err
		}
		if !params.HasN {
			return nil
		}
	}

	cfg := &params.Config
	stream, err := walker.EnumShapes(cfg.Enum)
	if err != nil {
		return err
	}
	shapes := stream.Collect()
	if err = stream.Err(); err != nil {
		return err
	}

	mismatch := reportCounts(cfg, shapes, out)

	selected := tri6.StreamShapes(shapes...).Select(cfg.Selector()).Collect()
	fmt.Fprintf(out, "selected: %d\n", len(selected))

	if err = writeShapes(cfg, selected, out); err != nil {
		return err
	}
	if err = writeGraphs(cfg, selected); err != nil {
		return err
	}
	if len(cfg.Catalog.DbPathName) > 0 {
		if err = addToCatalog(cfg, selected, out); err != nil {
			return err
		}
	}
	return mismatch
}

// reportCounts prints the count, verification, and edge distribution of each size enumerated.
//
// A count that differs from the published count is returned as an error.
func reportCounts(cfg *tri6.Config, shapes []lattice.Shape, out io.Writer) error {
	var mismatch error

	for size := max(cfg.Enum.SizeMin, 1); size <= cfg.Enum.SizeMax; size++ {
		var ofSize []lattice.Shape
		for _, X := range shapes {
			if len(X) == size {
				ofSize = append(ofSize, X)
			}
		}

		fmt.Fprintf(out, "n=%d: %d polyiamonds", size, len(ofSize))
		if known, ok := tri6.KnownCount(size); ok {
			if known == int64(len(ofSize)) {
				fmt.Fprintf(out, " (matches known count)\n")
			} else {
				fmt.Fprintf(out, " (MISMATCH: known count is %d)\n", known)
				if mismatch == nil {
					mismatch = errors.Errorf("size %d: enumerated %d, known count is %d", size, len(ofSize), known)
				}
			}
		} else {
			fmt.Fprintf(out, "\n")
		}

		fmt.Fprintf(out, "  edges: %v\n", graph.EdgeCounts(ofSize))
	}
	return mismatch
}

func writeShapes(cfg *tri6.Config, selected []lattice.Shape, out io.Writer) error {
	if !cfg.Print.Expr && !cfg.Print.Info && !cfg.Print.Display {
		return nil
	}
	stream := tri6.StreamShapes(selected...).Print(out, cfg.Print)
	stream.PullAll()
	return stream.Err()
}

func createFile(pathname string) (*os.File, error) {
	file, err := os.OpenFile(pathname, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "creating %q", pathname)
	}
	return file, nil
}

// writeGraphs writes the graph6 and coordinate files named in cfg (if any).
func writeGraphs(cfg *tri6.Config, selected []lattice.Shape) error {
	if len(cfg.Graph6) > 0 {
		file, err := createFile(cfg.Graph6)
		if err != nil {
			return err
		}
		w := bufio.NewWriter(file)
		var line []byte
		for _, X := range selected {
			line = append(line[:0], graph.EncodeGraph6(graph.ToGraph(X))...)
			line = append(line, '\n')
			w.Write(line)
		}
		err = w.Flush()
		file.Close()
		if err != nil {
			return errors.Wrapf(err, "writing %q", cfg.Graph6)
		}
		klog.V(2).Infof("wrote %d graph6 lines to %q", len(selected), cfg.Graph6)
	}

	if len(cfg.Coords) > 0 {
		file, err := createFile(cfg.Coords)
		if err != nil {
			return err
		}
		cw := graph.NewCoordsWriter(file)
		for _, X := range selected {
			if _, err = cw.Write(graph.ToGraph(X)); err != nil {
				break
			}
		}
		file.Close()
		if err != nil {
			return errors.Wrapf(err, "writing %q", cfg.Coords)
		}
		klog.V(2).Infof("wrote %d distinct graphs to %q", cw.Count(), cfg.Coords)
	}
	return nil
}

func addToCatalog(cfg *tri6.Config, selected []lattice.Shape, out io.Writer) error {
	ctx := tri6.NewCatalogContext()
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	cat, err := catalog.OpenCatalog(ctx, cfg.Catalog)
	if err != nil {
		return err
	}
	added := tri6.StreamShapes(selected...).AddTo(cat).PullAll()
	fmt.Fprintf(out, "catalog: %d added\n", added)
	return cat.Close()
}

func describeShape(params *Params, out io.Writer) error {
	X, err := expr.ParseShape(params.Shape)
	if err != nil {
		return err
	}
	Xc := canon.Canonicalize(X)
	info := tri6.GetInfo(Xc)

	fmt.Fprintf(out, "canonical: %v\n", expr.Format(Xc))
	fmt.Fprintf(out, "n=%d v=%d e=%d holes=%d symmetries=%d\n", info.Size, info.NumVertices, info.NumEdges, info.Holes, info.Symmetries)
	fmt.Fprintf(out, "graph6: %s\n", graph.EncodeGraph6(graph.ToGraph(Xc)))
	if params.Config.Print.Display {
		fmt.Fprintf(out, "%s\n", render.ShapeToDisplayForm(Xc))
	}
	return nil
}
