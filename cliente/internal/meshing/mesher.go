package meshing

import (
	"fmt"
	"sync"

	"TerrainVision/shared/noise"
	"TerrainVision/shared/terrain"
)

// GeometryData contém os buffers de vértices para uma malha, prontos para a GPU.
// Não indexado: cada triângulo ocupa 3 vértices consecutivos.
type GeometryData struct {
	Vertices []float32
	Normals  []float32
	Colors   []uint8
}

// TriangleCount retorna quantos triângulos os buffers descrevem.
func (g GeometryData) TriangleCount() int {
	return len(g.Vertices) / 9
}

// Clone cria uma cópia profunda dos dados para evitar corrupção de memória.
func (g GeometryData) Clone() GeometryData {
	clone := GeometryData{}
	if len(g.Vertices) > 0 {
		clone.Vertices = make([]float32, len(g.Vertices))
		copy(clone.Vertices, g.Vertices)
	}
	if len(g.Normals) > 0 {
		clone.Normals = make([]float32, len(g.Normals))
		copy(clone.Normals, g.Normals)
	}
	if len(g.Colors) > 0 {
		clone.Colors = make([]uint8, len(g.Colors))
		copy(clone.Colors, g.Colors)
	}
	return clone
}

// Request representa um pedido de geração de terreno completo (campo + malha).
type Request struct {
	Size    int
	Noise   noise.Config
	Options Options
}

// Key identifica o pedido no cache e na fila de pendentes.
func (r Request) Key() string {
	return fmt.Sprintf("%d|%s|%s|%g|%s", r.Size, r.Noise, r.Options.Shading, r.Options.CellSize, r.Options.Palette.Name)
}

// Result contém o par campo/malha gerado para um pedido. Nunca é alterado
// depois de publicado: regenerar produz um Result novo.
type Result struct {
	Request  Request
	Field    *terrain.HeightField
	Mesh     *Mesh
	Geometry GeometryData
	Err      error
}

// Mesher é a interface para geradores de malha em segundo plano.
type Mesher interface {
	Enqueue(req Request) bool
	EnqueueLatest(req Request) bool
	Results() <-chan Result
	Pending() int
	Stop()
}

// Global Poll para reciclar MeshBuffers e evitar alocação excessiva (GC Pressure)
var meshBufferPool = sync.Pool{
	New: func() interface{} {
		return &MeshBuffer{
			Geometry: GeometryData{
				Vertices: make([]float32, 0, 4096),
				Normals:  make([]float32, 0, 4096),
				Colors:   make([]uint8, 0, 4096),
			},
		}
	},
}

// GetMeshBuffer aloca ou recicla um buffer vazio para meshing.
func GetMeshBuffer() *MeshBuffer {
	return meshBufferPool.Get().(*MeshBuffer)
}

// PutMeshBuffer zera os slices e devolve a memória para o Pool.
func PutMeshBuffer(b *MeshBuffer) {
	if b == nil {
		return
	}
	b.Geometry.Vertices = b.Geometry.Vertices[:0]
	b.Geometry.Normals = b.Geometry.Normals[:0]
	b.Geometry.Colors = b.Geometry.Colors[:0]
	meshBufferPool.Put(b)
}

// MeshBuffer auxilia na construção de malhas dinâmicas.
type MeshBuffer struct {
	Geometry GeometryData
}

// AddTriangle adiciona um triângulo com normal e cor únicas (low-poly).
func (b *MeshBuffer) AddTriangle(v1, v2, v3 [3]float32, n [3]float32, c [4]uint8) {
	b.addVertex(v1, n, c)
	b.addVertex(v2, n, c)
	b.addVertex(v3, n, c)
}

// AddTriangleSmooth adiciona um triângulo com normal e cor por vértice.
func (b *MeshBuffer) AddTriangleSmooth(v [3][3]float32, n [3][3]float32, c [3][4]uint8) {
	for k := 0; k < 3; k++ {
		b.addVertex(v[k], n[k], c[k])
	}
}

func (b *MeshBuffer) addVertex(v [3]float32, n [3]float32, c [4]uint8) {
	b.Geometry.Vertices = append(b.Geometry.Vertices, v[0], v[1], v[2])
	b.Geometry.Normals = append(b.Geometry.Normals, n[0], n[1], n[2])
	b.Geometry.Colors = append(b.Geometry.Colors, c[0], c[1], c[2], c[3])
}
