// Package asset loads textures and models from the engine's binary map
// format: a little-endian stream of a texture bank followed by a model
// bank, each model carrying its own object-to-world transform and
// point/index buffers ready to hand to mesh.Mesh.
package asset

import (
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"

	"github.com/cpuforge/raster3d"
	"github.com/cpuforge/raster3d/mesh"
)

// Codec names the optional stream compression a map file may be wrapped
// in. Map files are not compressed by the format itself; this exists so
// hosts that store maps compressed at rest don't need a separate
// decompression pass before calling LoadMap.
type Codec int

const (
	// CodecNone reads data as a raw, uncompressed stream.
	CodecNone Codec = iota
	// CodecGzip wraps data in a gzip reader.
	CodecGzip
	// CodecZstd wraps data in a zstd reader.
	CodecZstd
)

// Model is a self-contained set of points and indices together with
// the object-to-world transform computed from the stream's translation,
// scale and pitch/yaw/roll rotation fields.
type Model struct {
	Points    []Point
	Indices   []int
	Primitive mesh.Primitive
	Transform Mat4
}

// Mesh returns m's points and indices as a mesh.Mesh ready to dispatch.
func (m *Model) Mesh() *mesh.Mesh[Point] {
	return mesh.NewWithPrimitive(m.Points, m.Indices, m.Primitive)
}

// Map is a bank of textures and models loaded from a single map file.
// Texture index 0 is always the built-in null texture: a single opaque
// black pixel, present so a model with no real texture still has a
// valid TextureIndex to reference.
type Map struct {
	Textures []*raster3d.Plane[raster3d.Pixel]
	Models   []*Model
}

// Texture returns the texture at index, which must be in [0,
// len(Textures)).
func (m *Map) Texture(index uint32) (*raster3d.Plane[raster3d.Pixel], error) {
	if int(index) >= len(m.Textures) {
		return nil, &raster3d.OutOfRangeError{X: int(index), Y: 0, Width: len(m.Textures), Height: 1}
	}
	return m.Textures[index], nil
}

// LoadMap reads a map from r, decompressing it first according to
// codec.
func LoadMap(r io.Reader, codec Codec) (*Map, error) {
	switch codec {
	case CodecGzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("asset: opening gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	case CodecZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("asset: opening zstd stream: %w", err)
		}
		defer zr.Close()
		r = zr
	}
	return loadMapRaw(r)
}

func loadMapRaw(r io.Reader) (*Map, error) {
	textureCount, err := readUint32LE(r)
	if err != nil {
		return nil, fmt.Errorf("asset: reading texture count: %w", err)
	}
	modelCount, err := readUint32LE(r)
	if err != nil {
		return nil, fmt.Errorf("asset: reading model count: %w", err)
	}

	m := &Map{
		Textures: make([]*raster3d.Plane[raster3d.Pixel], 0, textureCount+1),
		Models:   make([]*Model, 0, modelCount),
	}

	null := raster3d.NewPlane[raster3d.Pixel](1, 1)
	null.SetUnchecked(0, 0, raster3d.Black)
	m.Textures = append(m.Textures, null)

	for i := uint32(0); i < textureCount; i++ {
		tex, err := loadTexture(r)
		if err != nil {
			return nil, fmt.Errorf("asset: reading texture %d: %w", i, err)
		}
		m.Textures = append(m.Textures, tex)
	}

	for i := uint32(0); i < modelCount; i++ {
		model, err := loadModel(r)
		if err != nil {
			return nil, fmt.Errorf("asset: reading model %d: %w", i, err)
		}
		m.Models = append(m.Models, model)
	}

	raster3d.Logger().Debug("loaded map", "textures", textureCount, "models", modelCount)
	return m, nil
}

func loadTexture(r io.Reader) (*raster3d.Plane[raster3d.Pixel], error) {
	width, err := readUint32LE(r)
	if err != nil {
		return nil, err
	}
	height, err := readUint32LE(r)
	if err != nil {
		return nil, err
	}

	plane := raster3d.NewPlane[raster3d.Pixel](int(width), int(height))
	pixel := make([]byte, 4)
	for y := 0; y < int(height); y++ {
		for x := 0; x < int(width); x++ {
			if _, err := io.ReadFull(r, pixel); err != nil {
				return nil, ErrTruncatedStream
			}
			plane.SetUnchecked(x, y, raster3d.Pixel{R: pixel[0], G: pixel[1], B: pixel[2], A: pixel[3]})
		}
	}
	raster3d.Logger().Debug("loaded texture", "width", width, "height", height)
	return plane, nil
}

func loadModel(r io.Reader) (*Model, error) {
	mode, err := readUint32LE(r)
	if err != nil {
		return nil, err
	}
	pointCount, err := readUint32LE(r)
	if err != nil {
		return nil, err
	}
	indexCount, err := readUint32LE(r)
	if err != nil {
		return nil, err
	}

	components := make([]float64, 9)
	for i := range components {
		v, err := readFloat32LE(r)
		if err != nil {
			return nil, err
		}
		components[i] = v
	}
	x, y, z := components[0], components[1], components[2]
	sx, sy, sz := components[3], components[4], components[5]
	pitch, yaw, roll := components[6], components[7], components[8]

	var primitive mesh.Primitive
	switch mode {
	case 0:
		primitive = mesh.TriangleList
	case 1:
		primitive = mesh.TriangleStrip
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidPrimitiveMode, mode)
	}

	points := make([]Point, 0, pointCount)
	for i := uint32(0); i < pointCount; i++ {
		p, err := loadPoint(r)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	indices := make([]int, 0, indexCount)
	for i := uint32(0); i < indexCount; i++ {
		idx, err := readUint32LE(r)
		if err != nil {
			return nil, err
		}
		indices = append(indices, int(idx))
	}

	raster3d.Logger().Debug("loaded model", "points", pointCount, "indices", indexCount)

	return &Model{
		Points:    points,
		Indices:   indices,
		Primitive: primitive,
		Transform: composeModelTransform(x, y, z, sx, sy, sz, pitch, yaw, roll),
	}, nil
}

func loadPoint(r io.Reader) (Point, error) {
	textureIndex, err := readUint32LE(r)
	if err != nil {
		return Point{}, err
	}

	fields := make([]float64, 9)
	for i := range fields {
		v, err := readFloat32LE(r)
		if err != nil {
			return Point{}, err
		}
		fields[i] = v
	}

	return Point{
		TextureIndex: textureIndex,
		Sampler:      Vec2{X: fields[0], Y: fields[1]},
		Color:        Vec3{X: fields[2], Y: fields[3], Z: fields[4]},
		Position:     Vec4{X: fields[5], Y: fields[6], Z: fields[7], W: fields[8]},
	}, nil
}

func readUint32LE(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, ErrTruncatedStream
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readFloat32LE(r io.Reader) (float64, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, ErrTruncatedStream
	}
	bits := binary.LittleEndian.Uint32(buf[:])
	return float64(math.Float32frombits(bits)), nil
}
