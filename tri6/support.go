package tri6

import (
	"sync"

	"github.com/2x3systems/tri6/canon"
	"github.com/2x3systems/tri6/lattice"
)

// GetInfo computes the summary of X.
func GetInfo(X lattice.Shape) ShapeInfo {
	V, E := X.CountVerticesEdges()
	info := ShapeInfo{
		Size:        int32(len(X)),
		NumVertices: int32(V),
		NumEdges:    int32(E),
	}
	if len(X) > 0 {
		info.Holes = int32(1 - V + E - len(X))
		info.Symmetries = int32(canon.Symmetries(X))
	}
	return info
}

// SelectsShape is a convenience function used to see if a shape is selected according to a ShapeSelector.
func (sel *ShapeSelector) SelectsShape(X lattice.Shape) bool {
	info := GetInfo(X)
	return sel.SelectsInfo(&info)
}

// SelectsInfo reports whether a shape having the given info falls within this selector's bounds.
func (sel *ShapeSelector) SelectsInfo(info *ShapeInfo) bool {
	if info.Size < sel.Min.Size || info.NumVertices < sel.Min.NumVertices || info.NumEdges < sel.Min.NumEdges || info.Holes < sel.Min.Holes || info.Symmetries < sel.Min.Symmetries {
		return false
	}
	if info.Size > sel.Max.Size || info.NumVertices > sel.Max.NumVertices || info.NumEdges > sel.Max.NumEdges || info.Holes > sel.Max.Holes || info.Symmetries > sel.Max.Symmetries {
		return false
	}
	return true
}

// SelectSize narrows this selector to shapes of size lo..hi.
func (sel *ShapeSelector) SelectSize(lo, hi int) {
	sel.Min.Size = max(sel.Min.Size, int32(lo))
	sel.Max.Size = min(sel.Max.Size, int32(hi))
}

func NewCatalogContext() CatalogContext {
	ctx := &catalogContext{
		openCatalogs: make(map[Catalog]struct{}),
		closing:      make(chan struct{}),
		closed:       make(chan struct{}),
	}
	ctx.openCount.Add(1)
	go func() {
		<-ctx.Closing()
		ctx.openCount.Done()
		ctx.openCount.Wait()
		close(ctx.closed)
	}()
	return ctx
}

type catalogContext struct {
	mu           sync.Mutex
	openCount    sync.WaitGroup
	openCatalogs map[Catalog]struct{}
	closing      chan struct{}
	closed       chan struct{}
	closeOnce    sync.Once
}

func (ctx *catalogContext) AttachCatalog(cat Catalog) {
	ctx.openCount.Add(1)
	ctx.mu.Lock()
	ctx.openCatalogs[cat] = struct{}{}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) DetachCatalog(cat Catalog) {
	ctx.mu.Lock()
	if _, exists := ctx.openCatalogs[cat]; exists {
		delete(ctx.openCatalogs, cat)
		ctx.openCount.Done()
	}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) Closing() <-chan struct{} {
	return ctx.closing
}

func (ctx *catalogContext) Done() <-chan struct{} {
	return ctx.closed
}

func (ctx *catalogContext) Close() {
	ctx.closeOnce.Do(func() {
		close(ctx.closing)
		ctx.mu.Lock()
		for cat := range ctx.openCatalogs {
			go cat.Close()
		}
		ctx.mu.Unlock()
	})
}
