package render

import (
	"TerrainVision/cliente/internal/meshing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TerrainModel representa a geometria renderizável de um terreno gerado.
type TerrainModel struct {
	Model  rl.Model
	Offset rl.Vector3 // Translação que centraliza a grade na origem
	Stats  meshing.Stats
	Key    string // Request.Key() do resultado que originou o modelo
	Active bool
}

// Center retorna o ponto médio do terreno em espaço de mundo (já centralizado).
func (m *TerrainModel) Center() rl.Vector3 {
	return rl.Vector3{X: 0, Y: (m.Stats.MinHeight + m.Stats.MaxHeight) / 2, Z: 0}
}
