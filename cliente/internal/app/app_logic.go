package app

import (
	"fmt"
	"log"

	"TerrainVision/cliente/internal/meshing"
	"TerrainVision/shared/presets"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// LastPresetName é o preset gravado com F5.
const LastPresetName = "ultimo"

// regenerate envia o pedido atual para o worker.
func (a *App) regenerate() {
	req := a.Request
	if a.worker.EnqueueLatest(req) {
		log.Printf("[App] Gerando terreno %dx%d: %s (%s)", req.Size, req.Size, req.Noise, req.Options.Shading)
	}
	rl.SetWindowTitle(a.windowTitle())
}

// processResults consome resultados do worker e troca o terreno exibido.
// Em caso de erro o terreno anterior continua na tela.
func (a *App) processResults() {
	for {
		select {
		case res := <-a.worker.Results():
			if res.Err != nil {
				log.Printf("[App] Falha ao gerar terreno (%s): %v", res.Request.Noise, res.Err)
				a.setStatus(fmt.Sprintf("Erro: %v", res.Err))
				continue
			}
			// Resultados atrasados de pedidos já substituídos são descartados
			if res.Request.Key() != a.Request.Key() {
				continue
			}

			a.current.Store(&res)
			a.renderer.Upload(&res)
			if tm := a.renderer.CurrentModel(); tm != nil {
				a.Cam.SetTarget(tm.Center())
			}
			a.State = StateViewing
		default:
			return
		}
	}
}

// savePreset grava o pedido atual no banco de presets.
func (a *App) savePreset(name string) {
	if a.presets == nil {
		a.setStatus("Banco de presets indisponível")
		return
	}
	p := presets.Preset{Name: name, Noise: a.Request.Noise, GridSize: a.Request.Size}
	if err := a.presets.Save(p); err != nil {
		a.setStatus(fmt.Sprintf("Erro ao salvar preset: %v", err))
		return
	}
	a.setStatus(fmt.Sprintf("Preset %q salvo (seed %d)", name, a.Request.Noise.Seed))
}

func (a *App) setStatus(msg string) {
	a.statusMsg = msg
	a.statusTime = rl.GetTime()
}

// Stats do terreno exibido, ou zero antes do primeiro resultado.
func (a *App) currentStats() meshing.Stats {
	if res := a.Current(); res != nil && res.Mesh != nil {
		return res.Mesh.Stats()
	}
	return meshing.Stats{}
}
