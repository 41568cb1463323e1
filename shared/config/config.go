package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"TerrainVision/shared/noise"
)

// Config armazena as configurações do TerrainVision.
type Config struct {
	// Janela
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	WindowTitle  string `json:"window_title"`
	Fullscreen   bool   `json:"fullscreen"`
	TargetFPS    int32  `json:"target_fps"`

	// Terreno (valores iniciais; a seed vem da linha de comando ou é sorteada)
	GridSize    int     `json:"grid_size"`
	CellSize    float32 `json:"cell_size"`
	NoiseKind   string  `json:"noise_kind"`
	Octaves     int     `json:"octaves"`
	Persistence float64 `json:"persistence"`
	Lacunarity  float64 `json:"lacunarity"`
	Scale       float64 `json:"scale"`
	HeightScale float64 `json:"height_scale"`
	Shading     string  `json:"shading"` // "flat" ou "smooth"
	Palette     string  `json:"palette"` // "default" ou "grey"

	// Presets e paletas personalizadas (AssetsDir/palettes.json)
	PresetsDB string `json:"presets_db"`
	AssetsDir string `json:"assets_dir"`

	// Câmera
	CameraDistance    float32 `json:"camera_distance"`
	MinDistance       float32 `json:"min_distance"`
	MaxDistance       float32 `json:"max_distance"`
	ZoomStep          float32 `json:"zoom_step"`
	RotateSpeed       float32 `json:"rotate_speed"` // Graus por segundo com as setas
	CameraSensitivity float32 `json:"camera_sensitivity"`
	FOV               float32 `json:"fov"`

	// Debug
	ShowDebugInfo bool `json:"show_debug_info"`
	ShowGrid      bool `json:"show_grid"`
	WireframeMode bool `json:"wireframe_mode"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	n := noise.DefaultConfig()
	return &Config{
		WindowWidth:  800,
		WindowHeight: 600,
		WindowTitle:  "Procedural Terrain Simulation",
		Fullscreen:   false,
		TargetFPS:    60,

		GridSize:    25,
		CellSize:    0.5,
		NoiseKind:   n.Kind.String(),
		Octaves:     n.Octaves,
		Persistence: n.Persistence,
		Lacunarity:  n.Lacunarity,
		Scale:       n.Scale,
		HeightScale: n.HeightScale,
		Shading:     "flat",
		Palette:     "default",

		PresetsDB: "presets.db",
		AssetsDir: "assets",

		CameraDistance:    10.0,
		MinDistance:       2.0,
		MaxDistance:       20.0,
		ZoomStep:          0.5,
		RotateSpeed:       60.0,
		CameraSensitivity: 0.3,
		FOV:               45.0,

		ShowDebugInfo: false,
		ShowGrid:      false,
		WireframeMode: false,
	}
}

// NoiseConfig monta a configuração de ruído a partir dos campos do arquivo.
func (c *Config) NoiseConfig(seed int64) (noise.Config, error) {
	kind, err := noise.ParseKind(c.NoiseKind)
	if err != nil {
		return noise.Config{}, err
	}
	cfg := noise.Config{
		Kind:        kind,
		Seed:        seed,
		Octaves:     c.Octaves,
		Persistence: c.Persistence,
		Lacunarity:  c.Lacunarity,
		Scale:       c.Scale,
		HeightScale: c.HeightScale,
	}
	if err := cfg.Validate(); err != nil {
		return noise.Config{}, err
	}
	return cfg, nil
}

// ApplyNoise copia os parâmetros de ruído (exceto a seed) para o arquivo.
func (c *Config) ApplyNoise(n noise.Config) {
	c.NoiseKind = n.Kind.String()
	c.Octaves = n.Octaves
	c.Persistence = n.Persistence
	c.Lacunarity = n.Lacunarity
	c.Scale = n.Scale
	c.HeightScale = n.HeightScale
}

// execDir retorna o diretório do executável, ou "" se não for possível descobrir.
func execDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exe)
}

// resolveFrom ancora um caminho relativo em base. Caminhos absolutos e vazios passam direto.
func resolveFrom(base, path string) string {
	if base == "" || path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// configPath retorna o caminho do arquivo de configuração.
func configPath() string {
	return resolveFrom(execDir(), "config.json")
}

// PresetsPath retorna o banco de presets, relativo ao executável como o config.json.
func (c *Config) PresetsPath() string {
	return resolveFrom(execDir(), c.PresetsDB)
}

// AssetsPath retorna o diretório de paletas, relativo ao executável.
func (c *Config) AssetsPath() string {
	return resolveFrom(execDir(), c.AssetsDir)
}

// Load carrega as configurações do arquivo ao lado do executável.
// Se o arquivo não existir, retorna as configurações padrão.
func Load() *Config {
	cfg, _ := LoadFrom(configPath())
	return cfg
}

// LoadFrom carrega as configurações de um arquivo JSON. Sempre retorna uma
// configuração utilizável: em caso de erro, os padrões acompanham o erro.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("config %s inválido: %w", path, err)
	}

	return cfg, nil
}

// Save salva as configurações ao lado do executável.
func (c *Config) Save() error {
	return c.SaveTo(configPath())
}

// SaveTo salva as configurações em um arquivo JSON.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
