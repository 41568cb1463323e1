package app

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"TerrainVision/cliente/internal/camera"
	"TerrainVision/cliente/internal/meshing"
	"TerrainVision/cliente/internal/render"
	"TerrainVision/shared/config"
	"TerrainVision/shared/noise"
	"TerrainVision/shared/presets"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// AppState representa os estados possíveis da aplicação.
type AppState int

const (
	StateLoading AppState = iota // Esperando o primeiro terreno
	StateViewing                 // Visualizando o terreno
)

// skyColor é o azul claro (0.7, 0.8, 0.9) do fundo.
var skyColor = rl.NewColor(179, 204, 230, 255)

// App é a aplicação principal do TerrainVision.
type App struct {
	Config *config.Config
	State  AppState

	Cam *camera.CameraController

	// Pedido atual: mudar qualquer campo e chamar regenerate() gera um terreno novo
	Request meshing.Request

	// Terreno exibido. Só é trocado por inteiro quando um resultado novo chega;
	// o par campo/malha anterior nunca é alterado.
	current atomic.Pointer[meshing.Result]

	worker      meshing.Mesher
	resultStore *meshing.ResultStore
	renderer    *render.Renderer
	presets     *presets.Store // Pode ser nil se o banco não abriu

	rng           *rand.Rand
	mouseCaptured bool
	frameCount    int

	// Mensagem temporária no rodapé (erros, preset salvo)
	statusMsg  string
	statusTime float64
}

// New cria uma nova instância da aplicação. store pode ser nil.
func New(cfg *config.Config, req meshing.Request, store *presets.Store) *App {
	return &App{
		Config:  cfg,
		State:   StateLoading,
		Request: req,
		presets: store,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run inicia o loop principal da aplicação.
func (a *App) Run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Erro fatal recuperado: %v", r)
			panic(r)
		}
	}()

	// Inicializar janela raylib
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(a.Config.WindowWidth, a.Config.WindowHeight, a.windowTitle())
	rl.SetTraceLogLevel(rl.LogWarning) // Reduz ruído no terminal

	if a.Config.Fullscreen {
		rl.ToggleFullscreen()
	}
	rl.SetTargetFPS(a.Config.TargetFPS)

	a.Cam = camera.New(a.Config)

	log.Println("[App] Janela inicializada com sucesso")
	log.Printf("[App] Resolução: %dx%d", a.Config.WindowWidth, a.Config.WindowHeight)

	a.resultStore = meshing.NewResultStore(meshing.DefaultStoreCapacity)
	a.worker = meshing.NewWorker(a.resultStore)
	a.renderer = render.NewRenderer()
	a.renderer.Wireframe = a.Config.WireframeMode

	a.regenerate()

	// Loop principal (ESC fecha a janela)
	for !rl.WindowShouldClose() {
		a.update()
		a.draw()
	}

	a.shutdown()
	rl.CloseWindow()
}

// update atualiza a lógica a cada frame.
func (a *App) update() {
	a.frameCount++
	a.updateCamera()
	a.updateInput()
	a.processResults()
}

// Current retorna o terreno exibido, ou nil antes do primeiro resultado.
func (a *App) Current() *meshing.Result {
	return a.current.Load()
}

func (a *App) windowTitle() string {
	return fmt.Sprintf("%s - %s Noise", a.Config.WindowTitle, kindTitle(a.Request.Noise.Kind))
}

// kindTitle capitaliza o nome do kernel para o título ("perlin" → "Perlin").
func kindTitle(k noise.Kind) string {
	s := k.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// shutdown realiza a limpeza de recursos.
func (a *App) shutdown() {
	log.Println("[App] Finalizando aplicação...")

	a.worker.Stop()
	a.renderer.Unload()

	if a.presets != nil {
		if err := a.presets.Close(); err != nil {
			log.Printf("[Presets] Erro ao fechar banco: %v", err)
		}
	}

	// Persistimos a última configuração usada para a próxima execução
	a.Config.ApplyNoise(a.Request.Noise)
	a.Config.GridSize = a.Request.Size
	a.Config.Shading = a.Request.Options.Shading.String()
	a.Config.WireframeMode = a.renderer.Wireframe
	if err := a.Config.Save(); err != nil {
		log.Printf("[App] Erro ao salvar configurações: %v", err)
	}
}
