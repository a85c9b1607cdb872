// Package mesh assembles vertex and index buffers into triangles and
// dispatches them onto a raster.Raster.
package mesh

import (
	"github.com/cpuforge/raster3d"
	"github.com/cpuforge/raster3d/pool"
	"github.com/cpuforge/raster3d/raster"
)

// Primitive controls how index data is assembled into triangles.
type Primitive int

const (
	// TriangleList reads every three indices as one independent
	// triangle.
	TriangleList Primitive = iota
	// TriangleStrip reads every three consecutive indices, sharing two
	// vertices with the triangle before it, as one triangle.
	TriangleStrip
)

// Mesh holds a vertex buffer and an index buffer, along with the
// Primitive mode used to assemble them into triangles.
type Mesh[P any] struct {
	Vertices  []P
	Indices   []int
	Primitive Primitive
}

// New builds a Mesh in TriangleStrip mode, the default assembly mode.
// A Mesh literal that leaves Primitive unset gets the zero value,
// TriangleList, instead.
func New[P any](vertices []P, indices []int) *Mesh[P] {
	return &Mesh[P]{Vertices: vertices, Indices: indices, Primitive: TriangleStrip}
}

// NewWithPrimitive builds a Mesh using the given assembly mode.
func NewWithPrimitive[P any](vertices []P, indices []int, primitive Primitive) *Mesh[P] {
	return &Mesh[P]{Vertices: vertices, Indices: indices, Primitive: primitive}
}

func (m *Mesh[P]) dispatchTriangleList(emit func(p0, p1, p2 P)) {
	if len(m.Indices)%3 != 0 {
		raster3d.Logger().Warn("mesh in triangle list mode has a trailing partial triangle",
			"ignored_indices", len(m.Indices)%3)
	}
	if len(m.Indices)/3 == 0 {
		raster3d.Logger().Warn("mesh submitted with no completable triangle list work")
		return
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		p0 := m.Vertices[m.Indices[i+0]]
		p1 := m.Vertices[m.Indices[i+1]]
		p2 := m.Vertices[m.Indices[i+2]]
		emit(p0, p1, p2)
	}
}

func (m *Mesh[P]) dispatchTriangleStrip(emit func(p0, p1, p2 P)) {
	if len(m.Indices)/3 == 0 {
		raster3d.Logger().Warn("mesh submitted with no completable triangle strip work")
		return
	}
	for i := 0; i+2 < len(m.Indices); i++ {
		p0 := m.Vertices[m.Indices[i+0]]
		p1 := m.Vertices[m.Indices[i+1]]
		p2 := m.Vertices[m.Indices[i+2]]
		emit(p0, p1, p2)
	}
}

func (m *Mesh[P]) assemble(emit func(p0, p1, p2 P)) {
	switch m.Primitive {
	case TriangleList:
		m.dispatchTriangleList(emit)
	case TriangleStrip:
		m.dispatchTriangleStrip(emit)
	}
}

// Dispatch assembles m's geometry into triangles and submits each one
// to r, returning every triangle's futures without waiting for any of
// them to finish.
func Dispatch[P any, S raster3d.Slope[P]](m *Mesh[P], r *raster.Raster[P, S]) []*pool.Future {
	var futures []*pool.Future
	m.assemble(func(p0, p1, p2 P) {
		futures = append(futures, r.Dispatch(p0, p1, p2)...)
	})
	return futures
}

// Draw assembles m's geometry into triangles, submits each one to r,
// and blocks until every one of them has finished rendering. The first
// error reported by any triangle's future is returned; other triangles
// still run to completion.
func Draw[P any, S raster3d.Slope[P]](m *Mesh[P], r *raster.Raster[P, S]) error {
	futures := Dispatch(m, r)
	var firstErr error
	for _, f := range futures {
		if err := f.Wait(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
