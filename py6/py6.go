package py6

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/2x3systems/tri6/tri6"
	"github.com/2x3systems/tri6/canon"
	"github.com/2x3systems/tri6/catalog"
	"github.com/2x3systems/tri6/expr"
	"github.com/2x3systems/tri6/graph"
	"github.com/2x3systems/tri6/lattice"
	"github.com/2x3systems/tri6/render"
	"github.com/2x3systems/tri6/walker"
	"github.com/go-python/gpython/py"
)

var (
	LIB_VERSION = "v1.2026.1"
)

var (
	pyShapeType       = py.NewType("Shape", "a polyiamond: one or more edge-connected triangles of the triangular lattice")
	pyShapeStreamType = py.NewType("ShapeStream", "tri6.ShapeStream")
	pyCatalogType     = py.NewType("Catalog", "tri6.Catalog")
	pyWorkspaceType   = py.NewType("Workspace", "collects active session resources and catalogs")
)

const (
	READ_ONLY = 0x01

	kWorkspaceAttr = "_Workspace"
)

// Arg 1 (int): size_min
// Arg 2 (int): size_max
// Arg 3 (int, optional): workers
func py_EnumShapes(module py.Object, args py.Tuple) (py.Object, error) {
	var sizeMin, sizeMax, workers py.Object
	err := py.ParseTuple(args, "ii|i", &sizeMin, &sizeMax, &workers)
	if err != nil {
		return nil, err
	}

	opts := tri6.EnumOpts{
		SizeMin: int(sizeMin.(py.Int)),
		SizeMax: int(sizeMax.(py.Int)),
		Workers: 1,
		Verify:  true,
	}
	if workers != nil {
		opts.Workers = int(workers.(py.Int))
	}

	stream, err := walker.EnumShapes(opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return wrapShapeStream(stream), nil
}

func py_ParseShape(module py.Object, args py.Tuple) (py.Object, error) {
	var exprObj py.Object
	err := py.ParseTuple(args, "s", &exprObj)
	if err != nil {
		return nil, err
	}

	X, err := expr.ParseShape(string(exprObj.(py.String)))
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return pyShape{X}, nil
}

func py_KnownCount(module py.Object, args py.Tuple) (py.Object, error) {
	var n py.Object
	err := py.ParseTuple(args, "i", &n)
	if err != nil {
		return nil, err
	}
	count, known := tri6.KnownCount(int(n.(py.Int)))
	if !known {
		return py.None, nil
	}
	return py.Int(count), nil
}

func getShapeFromObj(obj py.Object) (pyShape, error) {
	X, ok := obj.(pyShape)
	if !ok {
		return X, py.ExceptionNewf(py.TypeError, "expected Shape object (got %v)", obj.Type().Name)
	}
	return X, nil
}

type pyShape struct {
	lattice.Shape
}

func (X pyShape) Type() *py.Type {
	return pyShapeType
}

func (X pyShape) M__str__() (py.Object, error) {
	return py.String(expr.Format(X.Shape)), nil
}

func (X pyShape) M__repr__() (py.Object, error) {
	return py.String(fmt.Sprintf("Shape(%q)", expr.Format(X.Shape))), nil
}

func py_Shape_Size(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyShape)
	return py.Int(len(X.Shape)), nil
}

func py_Shape_Canonize(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyShape)
	return pyShape{canon.Canonicalize(X.Shape)}, nil
}

func py_Shape_Equiv(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyShape)
	var obj py.Object
	err := py.UnpackTuple(args, nil, "Equiv", 1, 1, &obj)
	if err != nil {
		return nil, err
	}
	Y, err := getShapeFromObj(obj)
	if err != nil {
		return nil, err
	}
	return py.NewBool(canon.Equal(canon.Canonicalize(X.Shape), canon.Canonicalize(Y.Shape))), nil
}

func py_Shape_Info(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyShape)
	info := tri6.GetInfo(X.Shape)
	return py.StringDict{
		"size":       py.Int(info.Size),
		"verts":      py.Int(info.NumVertices),
		"edges":      py.Int(info.NumEdges),
		"holes":      py.Int(info.Holes),
		"symmetries": py.Int(info.Symmetries),
	}, nil
}

func py_Shape_Graph6(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyShape)
	return py.String(graph.EncodeGraph6(graph.ToGraph(X.Shape))), nil
}

func py_Shape_Display(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyShape)
	return py.String(render.ShapeToDisplayForm(X.Shape)), nil
}

func py_Shape_Stream(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyShape)
	next := tri6.StreamShapes(X.Shape)
	return wrapShapeStream(next), nil
}

type Workspace struct {
	CatalogCtx tri6.CatalogContext
}

func (ws *Workspace) Close() {
	ws.CatalogCtx.Close()
	<-ws.CatalogCtx.Done()
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func py_GetWorkspace(module py.Object, args py.Tuple) (py.Object, error) {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		wsObj = &Workspace{
			CatalogCtx: tri6.NewCatalogContext(),
		}
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj, nil
}

func py_Workspace_CatalogExists(self py.Object, args py.Tuple) (py.Object, error) {
	_ = self.(*Workspace)

	var pathname string
	err := py.LoadTuple(args, []interface{}{&pathname})
	if err != nil {
		return nil, err
	}
	_, err = os.Stat(pathname)
	if os.IsNotExist(err) {
		return py.False, nil
	}
	return py.True, nil
}

// Arg 1 (str): catalog pathname ("" for an in-memory catalog)
// Arg 2 (int, optional): flags (READ_ONLY)
func py_Workspace_OpenCatalog(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)

	var pathname string
	var flags int32
	err := py.LoadTuple(args, []interface{}{&pathname, &flags})
	if err != nil {
		return nil, err
	}

	opts := tri6.CatalogOpts{
		ReadOnly:   (flags & READ_ONLY) != 0,
		DbPathName: pathname,
	}

	cat, err := catalog.OpenCatalog(ws.CatalogCtx, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}

	return pyCatalog{cat}, nil
}

type pyCatalog struct {
	tri6.Catalog
}

func (cat pyCatalog) Type() *py.Type {
	return pyCatalogType
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if cat.Catalog != nil {
		if err := cat.Close(); err != nil {
			return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
		}
	}
	return py.None, nil
}

func py_Catalog_Select(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	var selObj py.Object
	err := py.UnpackTuple(args, nil, "Select", 0, 1, &selObj)
	if err != nil {
		return nil, err
	}
	sel := tri6.DefaultShapeSelector
	if selObj != nil {
		if err = getShapeSelector(selObj, &sel); err != nil {
			return nil, err
		}
	}

	next := tri6.SelectFromCatalog(cat, sel)
	return wrapShapeStream(next), nil
}

func py_Catalog_NumShapes(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)

	var size py.Object
	err := py.ParseTuple(args, "i", &size)
	if err != nil {
		return nil, err
	}
	return py.Int(cat.NumShapes(int(size.(py.Int)))), nil
}

type shapeStream struct {
	*tri6.ShapeStream
}

func (stream shapeStream) Type() *py.Type {
	return pyShapeStreamType
}

func wrapShapeStream(stream *tri6.ShapeStream) py.Object {
	return py.Object(shapeStream{stream})
}

// streamErr converts an error recorded on a drained stream into a python exception.
func streamErr(stream shapeStream) error {
	if err := stream.Err(); err != nil {
		return py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return nil
}

func py_ShapeStream_Go(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(shapeStream)
	count := stream.PullAll()
	if err := streamErr(stream); err != nil {
		return nil, err
	}
	return py.Int(count), nil
}

func py_ShapeStream_Shapes(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(shapeStream)
	collected := stream.Collect()
	shapes := make(py.Tuple, len(collected))
	for i, X := range collected {
		shapes[i] = pyShape{X}
	}
	if err := streamErr(stream); err != nil {
		return nil, err
	}
	return shapes, nil
}

var gOutCount = int32(0)

func kwargString(kwargs py.StringDict, key string, dst *string) {
	if v, ok := kwargs[key].(py.String); ok {
		*dst = string(v)
	}
}

func kwargBool(kwargs py.StringDict, key string, dst *bool) {
	switch v := kwargs[key].(type) {
	case py.Bool:
		*dst = bool(v)
	case py.Int:
		*dst = v != 0
	}
}

// Print prints each shape from the stream, to stdout or to kwargs["file"].
//
// Arg 1 (str, optional): label
// kwargs: label, file, expr, info, display
func py_ShapeStream_Print(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	stream := self.(shapeStream)
	var pathname string

	opts := tri6.DefaultPrintOpts
	opts.Render = render.ShapeToDisplayForm

	py.LoadTuple(args, []interface{}{&opts.Label})
	if opts.Label == "" {
		kwargString(kwargs, "label", &opts.Label)
	}

	outCount := atomic.AddInt32(&gOutCount, 1)
	if opts.Label == "" {
		opts.Label = fmt.Sprintf("out[%d]", outCount)
	}

	kwargBool(kwargs, "expr", &opts.Expr)
	kwargBool(kwargs, "info", &opts.Info)
	kwargBool(kwargs, "display", &opts.Display)
	kwargString(kwargs, "file", &pathname)

	var out io.Writer = os.Stdout
	var file *os.File
	if len(pathname) > 0 {
		os.MkdirAll(filepath.Dir(pathname), 0700)

		var err error
		file, err = os.OpenFile(pathname, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0600)
		if err != nil {
			return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
		}
		out = file
	}

	next := stream.Print(out, opts)
	if file != nil {
		next = next.Finally(func() { file.Close() })
	}
	return wrapShapeStream(next), nil
}

func py_ShapeStream_AddTo(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(shapeStream)
	var catObj py.Object
	err := py.UnpackTuple(args, nil, "AddTo", 1, 1, &catObj)
	if err != nil {
		return nil, err
	}
	cat, ok := catObj.(pyCatalog)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "expected Catalog object (got %v)", catObj.Type().Name)
	}
	if cat.IsReadOnly() {
		return nil, py.ExceptionNewf(py.PermissionError, "%v", tri6.ErrReadOnly)
	}
	next := stream.AddTo(cat)
	return wrapShapeStream(next), nil
}

// DropDupes passes on only the first of each set of equivalent shapes.
//
// kwargs: lsm (bool) keeps the seen set in an in-memory badger LSM tree rather than hash buckets.
func py_ShapeStream_DropDupes(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	stream := self.(shapeStream)

	useLSM := false
	kwargBool(kwargs, "lsm", &useLSM)

	// A memory resident set that is released once the stream drains
	var set canon.CanonicSet
	if useLSM {
		set = canon.NewLSMSet()
	} else {
		set = canon.NewDropDupes(canon.DropDupeOpts{})
	}
	next := stream.AddTo(set).Finally(set.Close)
	return wrapShapeStream(next), nil
}

func py_ShapeStream_Canonize(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(shapeStream)
	next := stream.Canonize()
	return wrapShapeStream(next), nil
}

func py_ShapeStream_Select(self py.Object, args py.Tuple) (py.Object, error) {
	var selObj py.Object
	err := py.UnpackTuple(args, nil, "Select", 1, 1, &selObj)
	if err != nil {
		return nil, err
	}
	sel := tri6.DefaultShapeSelector
	if err = getShapeSelector(selObj, &sel); err != nil {
		return nil, err
	}
	stream := self.(shapeStream)
	next := stream.Select(sel)
	return wrapShapeStream(next), nil
}

func init() {

	/////////////////////////////////
	// Shape
	{
		pyShapeType.Dict["Size"] = py.MustNewMethod("Size", py_Shape_Size, 0, "returns the number of triangles in this Shape")
		pyShapeType.Dict["Canonize"] = py.MustNewMethod("Canonize", py_Shape_Canonize, 0, "returns the canonical form of this Shape")
		pyShapeType.Dict["Equiv"] = py.MustNewMethod("Equiv", py_Shape_Equiv, 0, "")
		pyShapeType.Dict["Info"] = py.MustNewMethod("Info", py_Shape_Info, 0, "returns a dict of size, verts, edges, holes, symmetries")
		pyShapeType.Dict["Graph6"] = py.MustNewMethod("Graph6", py_Shape_Graph6, 0, "")
		pyShapeType.Dict["Display"] = py.MustNewMethod("Display", py_Shape_Display, 0, "")
		pyShapeType.Dict["Stream"] = py.MustNewMethod("Stream", py_Shape_Stream, 0, "")
	}

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["Select"] = py.MustNewMethod("Select", py_Catalog_Select, 0, "")
		pyCatalogType.Dict["NumShapes"] = py.MustNewMethod("NumShapes", py_Catalog_NumShapes, 0, "")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["OpenCatalog"] = py.MustNewMethod("OpenCatalog", py_Workspace_OpenCatalog, 0, "")
		pyWorkspaceType.Dict["CatalogExists"] = py.MustNewMethod("CatalogExists", py_Workspace_CatalogExists, 0, "")
	}

	/////////////////////////////////
	// ShapeStream
	{
		pyShapeStreamType.Dict["Go"] = py.MustNewMethod("Go", py_ShapeStream_Go, 0, "counts the number of shapes output from the ShapeStream")
		pyShapeStreamType.Dict["Shapes"] = py.MustNewMethod("Shapes", py_ShapeStream_Shapes, 0, "returns a tuple of every shape output from the ShapeStream")
		pyShapeStreamType.Dict["Print"] = py.MustNewMethod("Print", py_ShapeStream_Print, 0, "prints each shape from the ShapeStream")
		pyShapeStreamType.Dict["AddTo"] = py.MustNewMethod("AddTo", py_ShapeStream_AddTo, 0, "")
		pyShapeStreamType.Dict["Canonize"] = py.MustNewMethod("Canonize", py_ShapeStream_Canonize, 0, "")
		pyShapeStreamType.Dict["DropDupes"] = py.MustNewMethod("DropDupes", py_ShapeStream_DropDupes, 0, "drops shapes equivalent to one already seen (lsm=True for an LSM-backed set)")
		pyShapeStreamType.Dict["Select"] = py.MustNewMethod("Select", py_ShapeStream_Select, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("EnumShapes", py_EnumShapes, 0, "streams every distinct polyiamond of size_min..size_max"),
			py.MustNewMethod("ParseShape", py_ParseShape, 0, ""),
			py.MustNewMethod("KnownCount", py_KnownCount, 0, "returns the published count for size n, or None"),
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION": py.String(LIB_VERSION),
			"MAX_SIZE":    py.Int(tri6.MaxSize),
			"READ_ONLY":   py.Int(READ_ONLY),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_py6",
				Doc:  "polyiamond enumeration gpython module",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(*Workspace).Close()
				}
			},
		})
	}
}

func intAttr(obj py.Object, key string, min, max int64) int64 {
	attr, err := py.GetAttrString(obj, key)
	if err != nil {
		return min
	}
	val, _ := py.GetInt(attr)
	intVal := int64(val)
	if intVal < min {
		intVal = min
	}
	if intVal > max {
		intVal = max
	}
	return intVal
}

func exportShapeInfo(shapeInfo py.Object, dflt tri6.ShapeInfo) tri6.ShapeInfo {
	attr := func(key string, dflt int32) int32 {
		if _, err := py.GetAttrString(shapeInfo, key); err != nil {
			return dflt
		}
		return int32(intAttr(shapeInfo, key, 0, tri6.MaxEdges))
	}
	return tri6.ShapeInfo{
		Size:        attr("size", dflt.Size),
		NumVertices: attr("verts", dflt.NumVertices),
		NumEdges:    attr("edges", dflt.NumEdges),
		Holes:       attr("holes", dflt.Holes),
		Symmetries:  attr("symmetries", dflt.Symmetries),
	}
}

// getShapeSelector reads a selector object having "min" and "max" attributes, each of which may carry
// any of size, verts, edges, holes, symmetries.  Absent fields leave the corresponding bound open.
func getShapeSelector(shapeSelector py.Object, sel *tri6.ShapeSelector) error {
	info, err := py.GetAttrString(shapeSelector, "min")
	if err != nil {
		return err
	}
	sel.Min = exportShapeInfo(info, sel.Min)

	info, err = py.GetAttrString(shapeSelector, "max")
	if err != nil {
		return err
	}
	sel.Max = exportShapeInfo(info, sel.Max)

	if sel.Min.Size > sel.Max.Size {
		return py.ExceptionNewf(py.ValueError, "%v", tri6.ErrBadConfig)
	}
	return nil
}
