package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// statusDuration é por quantos segundos a mensagem de rodapé fica visível.
const statusDuration = 4.0

// draw renderiza a cena.
func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(skyColor)

	a.drawScene()
	if a.State == StateLoading {
		a.drawLoading()
	}
	a.drawHUD()
	a.drawStatus()

	rl.EndDrawing()
}

// drawScene renderiza a cena 3D.
func (a *App) drawScene() {
	rl.BeginMode3D(a.Cam.RLCamera)

	// Grid de referência do tamanho do terreno
	if a.Config.ShowGrid {
		slices := int32(a.Request.Size)
		if slices < 2 {
			slices = 2
		}
		rl.DrawGrid(slices, a.Request.Options.CellSize)
	}

	if a.renderer != nil {
		a.renderer.Draw()
	}

	rl.EndMode3D()
}

// drawHUD desenha a interface sobreposta.
func (a *App) drawHUD() {
	if !a.Config.ShowDebugInfo {
		return
	}

	width := int32(340)
	height := int32(230)
	x := int32(rl.GetScreenWidth()) - width - 10
	y := int32(10)

	rl.DrawRectangle(x, y, width, height, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(x, y, width, height, rl.NewColor(50, 50, 50, 255))

	// FPS
	fps := rl.GetFPS()
	fpsColor := rl.Green
	if fps < 30 {
		fpsColor = rl.Red
	} else if fps < 50 {
		fpsColor = rl.Yellow
	}
	rl.DrawText(fmt.Sprintf("FPS: %d", fps), x+10, y+10, 20, fpsColor)
	rl.DrawText(kindTitle(a.Request.Noise.Kind), x+215, y+10, 20, rl.SkyBlue)

	rl.DrawLine(x+10, y+35, x+width-10, y+35, rl.NewColor(100, 100, 100, 100))

	// Parâmetros do ruído
	n := a.Request.Noise
	rl.DrawText("RUÍDO", x+10, y+45, 12, rl.Gray)
	rl.DrawText(fmt.Sprintf("Seed: %d | Oitavas: %d", n.Seed, n.Octaves), x+10, y+60, 16, rl.White)
	rl.DrawText(fmt.Sprintf("Pers: %.2f  Lac: %.2f  Escala: %.3f  Altura: %.2f",
		n.Persistence, n.Lacunarity, n.Scale, n.HeightScale), x+10, y+80, 12, rl.LightGray)

	rl.DrawLine(x+10, y+100, x+width-10, y+100, rl.NewColor(100, 100, 100, 100))

	// Malha
	st := a.currentStats()
	rl.DrawText("MALHA", x+10, y+110, 12, rl.Gray)
	rl.DrawText(fmt.Sprintf("Grade: %dx%d | %s", a.Request.Size, a.Request.Size, a.Request.Options.Shading), x+10, y+125, 14, rl.White)
	rl.DrawText(fmt.Sprintf("Vértices: %d | Triângulos: %d", st.Vertices, st.Triangles), x+10, y+142, 14, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Altura: %.2f .. %.2f | Cache: %d | Fila: %d", st.MinHeight, st.MaxHeight, a.resultStore.Len(), a.worker.Pending()), x+10, y+159, 14, rl.LightGray)

	rl.DrawLine(x+10, y+178, x+width-10, y+178, rl.NewColor(100, 100, 100, 100))

	// Atalhos Rápidos
	rl.DrawText("Setas: Girar | +/-: Zoom | E: Reset | Q: Mouse", x+10, y+188, 12, rl.LightGray)

	wireframeExtra := ""
	if a.renderer.Wireframe {
		wireframeExtra = " [WIREFRAME]"
	}
	rl.DrawText(fmt.Sprintf("R: Seed | N: Ruído | F: Sombra | F5: Salvar%s", wireframeExtra), x+10, y+205, 12, rl.SkyBlue)
}

// drawLoading mostra o aviso enquanto o primeiro terreno é gerado.
func (a *App) drawLoading() {
	msg := "Gerando terreno..."
	w := rl.MeasureText(msg, 24)
	rl.DrawText(msg, (int32(rl.GetScreenWidth())-w)/2, int32(rl.GetScreenHeight())/2-12, 24, rl.DarkGray)
}

// drawStatus desenha a última mensagem de status no rodapé por alguns segundos.
func (a *App) drawStatus() {
	if a.statusMsg == "" || rl.GetTime()-a.statusTime > statusDuration {
		return
	}
	rl.DrawText(a.statusMsg, 10, int32(rl.GetScreenHeight())-30, 18, rl.Maroon)
}
