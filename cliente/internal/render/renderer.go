package render

/*
#include <stdlib.h>
*/
import "C"

import (
	"log"
	"sync"
	"unsafe"

	"TerrainVision/cliente/internal/meshing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	ambientLight = 0.3
	diffuseLight = 0.7
)

// Renderer mantém o modelo do terreno atual na GPU.
type Renderer struct {
	mu      sync.RWMutex
	Current *TerrainModel

	TerrainShader rl.Shader
	lightDirLoc   int32
	ambientLoc    int32
	diffuseLoc    int32

	LightDir  rl.Vector3
	Wireframe bool
}

// NewRenderer cria o renderizador. Precisa de uma janela já aberta para os shaders.
func NewRenderer() *Renderer {
	r := &Renderer{
		LightDir: rl.Vector3{X: 0.3, Y: 1.0, Z: 0.2}, // Luz de cima, levemente inclinada
	}

	if rl.IsWindowReady() {
		r.TerrainShader = rl.LoadShaderFromMemory(terrainVertexShader, terrainFragmentShader)

		// Locs é um ponteiro bruto (*int32) que aponta para um array em C (32 ints)
		locs := unsafe.Slice(r.TerrainShader.Locs, 32)
		locs[12] = rl.GetShaderLocation(r.TerrainShader, "colDiffuse") // SHADER_LOC_COLOR_DIFFUSE

		r.lightDirLoc = rl.GetShaderLocation(r.TerrainShader, "lightDir")
		r.ambientLoc = rl.GetShaderLocation(r.TerrainShader, "ambient")
		r.diffuseLoc = rl.GetShaderLocation(r.TerrainShader, "diffuse")

		rl.SetShaderValue(r.TerrainShader, r.ambientLoc, []float32{ambientLight}, rl.ShaderUniformFloat)
		rl.SetShaderValue(r.TerrainShader, r.diffuseLoc, []float32{diffuseLight}, rl.ShaderUniformFloat)
	}

	log.Printf("[Renderer] Inicializado (shader=%d)", r.TerrainShader.ID)
	return r
}

// Upload converte o resultado da geração em um modelo Raylib na GPU,
// substituindo o anterior. Deve rodar na thread da janela.
func (r *Renderer) Upload(res *meshing.Result) {
	if !rl.IsWindowReady() || res == nil || res.Mesh == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.unloadCurrent()

	st := res.Mesh.Stats()
	half := float32(res.Mesh.Size-1) * res.Mesh.CellSize / 2
	tm := &TerrainModel{
		Offset: rl.Vector3{X: -half, Y: 0, Z: -half},
		Stats:  st,
		Key:    res.Request.Key(),
	}

	// Grades com N < 2 não têm triângulos: nada vai para a GPU
	if len(res.Geometry.Vertices) > 0 {
		mesh := r.geometryToMesh(res.Geometry)
		rl.UploadMesh(&mesh, false)
		tm.Model = rl.LoadModelFromMesh(mesh)
		if tm.Model.MaterialCount > 0 && r.TerrainShader.ID != 0 {
			materials := unsafe.Slice(tm.Model.Materials, tm.Model.MaterialCount)
			materials[0].Shader = r.TerrainShader
		}
		tm.Active = true
	}

	r.Current = tm
	log.Printf("[Renderer] Terreno enviado para a GPU: %d vértices, %d triângulos", st.Vertices, st.Triangles)
}

func (r *Renderer) geometryToMesh(data meshing.GeometryData) rl.Mesh {
	var mesh rl.Mesh
	vCount := int32(len(data.Vertices) / 3)
	mesh.VertexCount = vCount
	mesh.TriangleCount = vCount / 3

	if len(data.Vertices) > 0 {
		mesh.Vertices = (*float32)(r.copyToC(unsafe.Pointer(&data.Vertices[0]), len(data.Vertices)*4))
	}
	if len(data.Normals) > 0 {
		mesh.Normals = (*float32)(r.copyToC(unsafe.Pointer(&data.Normals[0]), len(data.Normals)*4))
	}
	if len(data.Colors) > 0 {
		mesh.Colors = (*uint8)(r.copyToC(unsafe.Pointer(&data.Colors[0]), len(data.Colors)))
	}
	return mesh
}

// copyToC copia para memória C: o Raylib libera esses buffers com free() no UnloadModel.
func (r *Renderer) copyToC(data unsafe.Pointer, size int) unsafe.Pointer {
	if size <= 0 || data == nil {
		return nil
	}
	ptr := C.malloc(C.size_t(size))
	if ptr == nil {
		return nil
	}
	cSlice := unsafe.Slice((*byte)(ptr), size)
	goSlice := unsafe.Slice((*byte)(data), size)
	copy(cSlice, goSlice)
	return ptr
}

// Draw renderiza o terreno atual. Deve ser chamado entre BeginMode3D/EndMode3D.
func (r *Renderer) Draw() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tm := r.Current
	if tm == nil || !tm.Active {
		return
	}

	if r.TerrainShader.ID != 0 {
		dir := rl.Vector3Normalize(r.LightDir)
		rl.SetShaderValue(r.TerrainShader, r.lightDirLoc, []float32{dir.X, dir.Y, dir.Z}, rl.ShaderUniformVec3)
	}

	if r.Wireframe {
		rl.DrawModelWires(tm.Model, tm.Offset, 1.0, rl.DarkGray)
		return
	}
	rl.DrawModel(tm.Model, tm.Offset, 1.0, rl.White)
}

// CurrentModel retorna o modelo em uso (ou nil antes do primeiro Upload).
func (r *Renderer) CurrentModel() *TerrainModel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.Current
}

func (r *Renderer) unloadCurrent() {
	if r.Current != nil && r.Current.Active {
		rl.UnloadModel(r.Current.Model)
	}
	r.Current = nil
}

// Unload libera o modelo e o shader.
func (r *Renderer) Unload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unloadCurrent()
	if r.TerrainShader.ID != 0 {
		rl.UnloadShader(r.TerrainShader)
		r.TerrainShader = rl.Shader{}
	}
}
