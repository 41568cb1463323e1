package meshing

import (
	"fmt"
	"math"
	"strings"

	"TerrainVision/shared/terrain"
	"TerrainVision/shared/util"

	"github.com/go-gl/mathgl/mgl32"
)

// ShadingMode escolhe entre normais/cores por triângulo ou por vértice.
type ShadingMode int

const (
	ShadingFlat   ShadingMode = iota // Uma normal e uma cor por triângulo (low-poly)
	ShadingSmooth                    // Normais médias e cores por vértice, interpoladas
)

func (m ShadingMode) String() string {
	switch m {
	case ShadingFlat:
		return "flat"
	case ShadingSmooth:
		return "smooth"
	}
	return fmt.Sprintf("ShadingMode(%d)", int(m))
}

// ParseShading converte "flat" ou "smooth" em ShadingMode.
func ParseShading(name string) (ShadingMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "flat", "lowpoly", "low-poly":
		return ShadingFlat, nil
	case "smooth":
		return ShadingSmooth, nil
	}
	return ShadingFlat, fmt.Errorf("modo de sombreamento desconhecido %q", name)
}

// Options são os parâmetros de renderização consumidos pelo Build.
type Options struct {
	Shading  ShadingMode
	CellSize float32 // Espaçamento em unidades de mundo entre pontos vizinhos
	Palette  Palette
}

// DefaultOptions retorna sombreamento flat, célula de 0.5 e a paleta padrão.
func DefaultOptions() Options {
	return Options{Shading: ShadingFlat, CellSize: 0.5, Palette: DefaultPalette}
}

// Vertex é um ponto da grade em espaço de mundo com a cor derivada da altura.
type Vertex struct {
	Position mgl32.Vec3
	Color    [4]uint8
}

// Triangle referencia três vértices da malha. Normal é sempre a normal da face;
// Color só é usada no modo flat.
type Triangle struct {
	Indices [3]int
	Normal  mgl32.Vec3
	Color   [4]uint8
}

// Mesh é a superfície triangulada derivada de exatamente um HeightField.
type Mesh struct {
	Size          int
	CellSize      float32
	Shading       ShadingMode
	Vertices      []Vertex
	Triangles     []Triangle
	VertexNormals []mgl32.Vec3 // Apenas no modo suave, um por vértice
	MinHeight     float32
	MaxHeight     float32
}

// Stats resume a malha para o HUD e para os logs.
type Stats struct {
	Vertices  int
	Triangles int
	MinHeight float32
	MaxHeight float32
}

// Stats retorna contagens e extremos de altura.
func (m *Mesh) Stats() Stats {
	return Stats{
		Vertices:  len(m.Vertices),
		Triangles: len(m.Triangles),
		MinHeight: m.MinHeight,
		MaxHeight: m.MaxHeight,
	}
}

// Build transforma o campo de alturas em malha. Função pura do campo e das opções.
//
// Cada quad (i,j)-(i+1,j+1) vira os triângulos (a,b,c) e (b,d,c), com
// a=(i,j) b=(i,j+1) c=(i+1,j) d=(i+1,j+1). A diagonal b-c é a mesma na grade
// inteira e, com essa ordem, (v1-v0)×(v2-v0) tem componente Y = cellSize² > 0
// para qualquer altura. Grades com N < 2 resultam numa malha vazia.
func Build(field *terrain.HeightField, opts Options) *Mesh {
	cell := opts.CellSize
	if cell <= 0 || math.IsNaN(float64(cell)) || math.IsInf(float64(cell), 0) {
		cell = 1
	}

	n := field.Size()
	lo, hi := field.Bounds()
	m := &Mesh{
		Size:      n,
		CellSize:  cell,
		Shading:   opts.Shading,
		MinHeight: float32(lo),
		MaxHeight: float32(hi),
	}
	if n < 2 {
		return m
	}

	normalize := func(h float32) float32 {
		if hi <= lo {
			return 0.5
		}
		return (h - float32(lo)) / float32(hi-lo)
	}

	m.Vertices = make([]Vertex, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			h := float32(field.At(i, j))
			m.Vertices[util.GridCoord{I: i, J: j}.Index(n)] = Vertex{
				Position: mgl32.Vec3{float32(i) * cell, h, float32(j) * cell},
				Color:    opts.Palette.Lookup(normalize(h)),
			}
		}
	}

	quads := (n - 1) * (n - 1)
	m.Triangles = make([]Triangle, 0, 2*quads)
	var accum []mgl32.Vec3
	if opts.Shading == ShadingSmooth {
		accum = make([]mgl32.Vec3, len(m.Vertices))
	}

	emit := func(i0, i1, i2 int) {
		p0, p1, p2 := m.Vertices[i0].Position, m.Vertices[i1].Position, m.Vertices[i2].Position
		raw := p1.Sub(p0).Cross(p2.Sub(p0))
		tri := Triangle{Indices: [3]int{i0, i1, i2}, Normal: safeNormalize(raw)}

		if opts.Shading == ShadingSmooth {
			// Produto vetorial sem normalizar: faces maiores pesam mais
			accum[i0] = accum[i0].Add(raw)
			accum[i1] = accum[i1].Add(raw)
			accum[i2] = accum[i2].Add(raw)
		} else {
			mean := (p0.Y() + p1.Y() + p2.Y()) / 3
			tri.Color = opts.Palette.Lookup(normalize(mean))
		}
		m.Triangles = append(m.Triangles, tri)
	}

	for i := 0; i < n-1; i++ {
		for j := 0; j < n-1; j++ {
			a := util.GridCoord{I: i, J: j}.Index(n)
			b := util.GridCoord{I: i, J: j + 1}.Index(n)
			c := util.GridCoord{I: i + 1, J: j}.Index(n)
			d := util.GridCoord{I: i + 1, J: j + 1}.Index(n)
			emit(a, b, c)
			emit(b, d, c)
		}
	}

	if accum != nil {
		m.VertexNormals = make([]mgl32.Vec3, len(accum))
		for k, v := range accum {
			m.VertexNormals[k] = safeNormalize(v)
		}
	}
	return m
}

// safeNormalize evita NaN em triângulos degenerados, devolvendo +Y.
func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return v.Normalize()
}

// Geometry achata a malha em buffers não indexados para upload na GPU.
func (m *Mesh) Geometry() GeometryData {
	buf := GetMeshBuffer()
	defer PutMeshBuffer(buf)

	for _, tri := range m.Triangles {
		v0 := m.Vertices[tri.Indices[0]]
		v1 := m.Vertices[tri.Indices[1]]
		v2 := m.Vertices[tri.Indices[2]]

		if m.Shading == ShadingSmooth && m.VertexNormals != nil {
			buf.AddTriangleSmooth(
				[3][3]float32{v0.Position, v1.Position, v2.Position},
				[3][3]float32{
					m.VertexNormals[tri.Indices[0]],
					m.VertexNormals[tri.Indices[1]],
					m.VertexNormals[tri.Indices[2]],
				},
				[3][4]uint8{v0.Color, v1.Color, v2.Color},
			)
			continue
		}
		buf.AddTriangle(v0.Position, v1.Position, v2.Position, tri.Normal, tri.Color)
	}

	return buf.Geometry.Clone()
}
