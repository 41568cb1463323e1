package app

import (
	"log"

	"TerrainVision/cliente/internal/meshing"
	"TerrainVision/shared/noise"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// updateCamera atualiza a câmera baseado no input.
func (a *App) updateCamera() {
	dt := rl.GetFrameTime()

	// Processa input (setas, zoom, mouse capturado)
	a.Cam.HandleInput(dt, a.mouseCaptured)

	// E: volta ao enquadramento inicial
	if rl.IsKeyPressed(rl.KeyE) {
		a.Cam.Reset()
		log.Println("[Camera] Vista reiniciada")
	}

	// Q: captura/libera o mouse para orbitar
	if rl.IsKeyPressed(rl.KeyQ) {
		a.mouseCaptured = !a.mouseCaptured
		if a.mouseCaptured {
			rl.DisableCursor()
		} else {
			rl.EnableCursor()
		}
	}

	a.Cam.Update(dt)
}

// updateInput processa entradas de teclado gerais.
func (a *App) updateInput() {
	// R: nova seed aleatória
	if rl.IsKeyPressed(rl.KeyR) {
		a.Request.Noise = a.Request.Noise.WithSeed(noise.RandomSeed(a.rng))
		a.regenerate()
	}

	// N: próximo tipo de ruído
	if rl.IsKeyPressed(rl.KeyN) {
		a.Request.Noise.Kind = a.Request.Noise.Kind.Next()
		a.regenerate()
	}

	// F: alterna flat/smooth
	if rl.IsKeyPressed(rl.KeyF) {
		if a.Request.Options.Shading == meshing.ShadingFlat {
			a.Request.Options.Shading = meshing.ShadingSmooth
		} else {
			a.Request.Options.Shading = meshing.ShadingFlat
		}
		a.regenerate()
	}

	// Toggle grid
	if rl.IsKeyPressed(rl.KeyG) {
		a.Config.ShowGrid = !a.Config.ShowGrid
	}

	// Toggle debug info
	if rl.IsKeyPressed(rl.KeyF3) {
		a.Config.ShowDebugInfo = !a.Config.ShowDebugInfo
	}

	// Toggle wireframe
	if rl.IsKeyPressed(rl.KeyF4) {
		a.renderer.Wireframe = !a.renderer.Wireframe
	}

	// F5: salva a configuração atual como preset
	if rl.IsKeyPressed(rl.KeyF5) {
		a.savePreset(LastPresetName)
	}

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
}
