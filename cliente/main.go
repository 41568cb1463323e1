package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"TerrainVision/cliente/internal/app"
	"TerrainVision/cliente/internal/assets"
	"TerrainVision/cliente/internal/cli"
	"TerrainVision/shared/config"
	"TerrainVision/shared/presets"
)

func main() {
	// Raylib/OpenGL exige rodar na thread principal do SO
	runtime.LockOSThread()

	// Flags de linha de comando
	var terrainFlags cli.TerrainFlags
	terrainFlags.Register(flag.CommandLine)
	savePreset := flag.String("save-preset", "", "Salvar a configuração resultante como preset")
	listPresets := flag.Bool("list-presets", false, "Listar presets salvos e sair")
	presetsDB := flag.String("presets-db", "", "Caminho do banco SQLite de presets (padrão: ao lado do executável)")
	fullscreen := flag.Bool("fullscreen", false, "Iniciar em tela cheia")
	debug := flag.Bool("debug", false, "Mostrar informações de debug")
	width := flag.Int("width", 0, "Largura da janela")
	height := flag.Int("height", 0, "Altura da janela")
	flag.Parse()
	terrainFlags.Visit(flag.CommandLine)

	// Configurar Log em Arquivo
	f, err := os.OpenFile("debug_tv.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err == nil {
		log.SetOutput(f)
		log.Println("--- INICIANDO TERRAIN VISION ---")
	}
	log.SetFlags(log.Ltime | log.Lshortfile)

	// Carregar configurações
	cfg := config.Load()

	// Aplicar flags de linha de comando (sobrescrevem o config salvo)
	if *fullscreen {
		cfg.Fullscreen = true
	}
	if *debug {
		cfg.ShowDebugInfo = true
	}
	if *width > 0 {
		cfg.WindowWidth = int32(*width)
	}
	if *height > 0 {
		cfg.WindowHeight = int32(*height)
	}

	// Banco e paletas ficam ao lado do executável, como o config.json
	dbPath := cfg.PresetsPath()
	if *presetsDB != "" {
		dbPath = *presetsDB
	}
	store, err := presets.Open(dbPath)
	if err != nil {
		log.Printf("[Presets] Banco indisponível: %v", err)
	}

	if *listPresets {
		os.Exit(printPresets(store))
	}

	palettes, err := assets.NewManager(cfg.AssetsPath())
	if err != nil {
		log.Printf("[Assets] Paletas personalizadas ignoradas: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	req, err := cli.BuildRequest(cfg, store, palettes, rng, &terrainFlags)
	if err != nil {
		fail(store, err)
	}
	log.Printf("[App] Seed em uso: %d (reproduza com -seed %d)", req.Noise.Seed, req.Noise.Seed)

	if *savePreset != "" {
		if store == nil {
			fail(store, cli.ErrNoPresets)
		}
		if err := store.Save(presets.Preset{Name: *savePreset, Noise: req.Noise, GridSize: req.Size}); err != nil {
			fail(store, err)
		}
	}

	// Criar e rodar a aplicação
	application := app.New(cfg, req, store)
	application.Run()
}

func printPresets(store *presets.Store) int {
	if store == nil {
		fmt.Fprintln(os.Stderr, cli.ErrNoPresets)
		return 1
	}
	defer store.Close()

	list, err := store.List()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, p := range list {
		fmt.Printf("%-16s grade=%-4d %s\n", p.Name, p.GridSize, p.Noise)
	}
	return 0
}

func fail(store *presets.Store, err error) {
	log.Printf("[App] Erro: %v", err)
	fmt.Fprintln(os.Stderr, "erro:", err)
	if store != nil {
		store.Close()
	}
	os.Exit(1)
}
