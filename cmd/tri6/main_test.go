package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/2x3systems/tri6/tri6"
	"github.com/2x3systems/tri6/catalog"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/stretchr/testify/require"
)

func runArgs(t *testing.T, args ...string) string {
	t.Helper()
	params, err := parseParams(args)
	require.NoError(t, err)
	require.False(t, params.runREPL())

	out := &strings.Builder{}
	require.NoError(t, run(params, out))
	return out.String()
}

func TestEnumerate(t *testing.T) {
	out := runArgs(t, "6")
	require.Contains(t, out, "n=6: 12 polyiamonds (matches known count)")
	require.Contains(t, out, "selected: 12\n")
	require.NotContains(t, out, "n=5:")

	out = runArgs(t, "-min", "3", "-w", "2", "5")
	require.Contains(t, out, "n=3: 1 polyiamonds (matches known count)")
	require.Contains(t, out, "n=4: 3 polyiamonds (matches known count)")
	require.Contains(t, out, "  edges: 9:3\n")
	require.Contains(t, out, "n=5: 4 polyiamonds (matches known count)")
}

func TestFilters(t *testing.T) {
	// the hexagon is the only hexiamond with 7 vertices
	out := runArgs(t, "-verts", "7", "-info", "6")
	require.Contains(t, out, "selected: 1\n")
	require.Contains(t, out, ",n=6,v=7,e=12,holes=0,sym=12")

	out = runArgs(t, "-edges", "5", "-show", "2")
	require.Contains(t, out, "selected: 1\n")
	require.Contains(t, out, "▽")

	out = runArgs(t, "0")
	require.Equal(t, "selected: 0\n", out)
}

func TestDescribeShape(t *testing.T) {
	out := runArgs(t, "-shape", "v(2,2) ^(3,2) v(3,2)", "-show")
	require.Contains(t, out, "n=3 v=5 e=7 holes=0 symmetries=2")
	require.Contains(t, out, "graph6: ")

	params, err := parseParams([]string{"-shape", "^(0,0) ^(4,4)"})
	require.NoError(t, err)
	err = run(params, &strings.Builder{})
	require.True(t, errors.Is(err, tri6.ErrBadShapeExpr), "got %v", err)
}

func TestGraphFiles(t *testing.T) {
	dir := t.TempDir()
	g6Path := filepath.Join(dir, "t4.g6")
	coordsPath := filepath.Join(dir, "t4.coords")
	runArgs(t, "-g6", g6Path, "-coords", coordsPath, "4")

	buf, err := os.ReadFile(g6Path)
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSpace(string(buf)), "\n"), 3)

	buf, err = os.ReadFile(coordsPath)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(buf), "GRAPH 1\nVERTICES 6\n"))
}

func TestCatalogFlag(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog")
	out := runArgs(t, "-catalog", dbPath, "-min", "1", "5")
	require.Contains(t, out, "catalog: 10 added\n")

	out = runArgs(t, "-catalog", dbPath, "5")
	require.Contains(t, out, "catalog: 0 added\n")

	ctx := tri6.NewCatalogContext()
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()
	cat, err := catalog.OpenCatalog(ctx, tri6.CatalogOpts{DbPathName: dbPath, ReadOnly: true})
	require.NoError(t, err)
	require.Equal(t, int64(4), cat.NumShapes(5))
}

func TestParams(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tri6.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("enum:\n  size_min: 2\n  workers: 3\nedges: 7\n"), 0644))

	params, err := parseParams([]string{"-config", cfgPath, "-edges", "9", "4"})
	require.NoError(t, err)
	cfg := params.Config
	require.Equal(t, 2, cfg.Enum.SizeMin)
	require.Equal(t, 4, cfg.Enum.SizeMax)
	require.Equal(t, 3, cfg.Enum.Workers)
	require.Equal(t, 9, cfg.Edges, "flags override the config file")

	params, err = parseParams(nil)
	require.NoError(t, err)
	require.True(t, params.runREPL())

	_, err = parseParams([]string{"-min", "5", "3"})
	require.True(t, errors.Is(err, tri6.ErrBadConfig), "got %v", err)

	_, err = parseParams([]string{"six"})
	require.True(t, errors.Is(err, tri6.ErrBadConfig), "got %v", err)
}

func TestLogFlags(t *testing.T) {
	params, err := parseParams([]string{"-v", "0", "4"})
	require.NoError(t, err)
	require.True(t, params.HasN)
	require.False(t, params.runREPL())
	require.Equal(t, 4, params.Config.Enum.SizeMax)
	require.False(t, bool(klog.V(1)))

	// defaults are restored on the next parse
	_, err = parseParams([]string{"4"})
	require.NoError(t, err)
	require.True(t, bool(klog.V(2)))

	_, err = parseParams([]string{"-vv", "4"})
	require.Error(t, err)
}
