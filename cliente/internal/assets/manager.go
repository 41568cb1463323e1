package assets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"TerrainVision/cliente/internal/meshing"
)

// --- Estruturas JSON ---

// StopEntry é um ponto da rampa de cores: altura normalizada e cor RGBA.
type StopEntry struct {
	T     float32  `json:"t"`
	Color [4]uint8 `json:"color"`
}

// PaletteEntry define uma paleta nomeada.
type PaletteEntry struct {
	Name    string      `json:"name"`
	Stops   []StopEntry `json:"stops"`
	Comment string      `json:"comment,omitempty"`
}

// PaletteConfig é o root do palettes.json
type PaletteConfig struct {
	Palettes []PaletteEntry `json:"palettes"`
}

// --- Manager ---

// Manager guarda as paletas embutidas e as carregadas de arquivo.
type Manager struct {
	palettes map[string]meshing.Palette
}

// NewManager cria o gerenciador com as paletas embutidas e, se existir,
// carrega configDir/palettes.json. Paletas do arquivo sobrescrevem as embutidas.
func NewManager(configDir string) (*Manager, error) {
	m := &Manager{palettes: make(map[string]meshing.Palette)}
	m.add(meshing.DefaultPalette)
	m.add(meshing.GreyPalette)

	data, err := os.ReadFile(filepath.Join(configDir, "palettes.json"))
	if err != nil {
		// Fallback silencioso se o arquivo não existir (opcional)
		if os.IsNotExist(err) {
			return m, nil
		}
		return m, fmt.Errorf("falha ao ler palettes.json: %w", err)
	}

	var conf PaletteConfig
	if err := json.Unmarshal(data, &conf); err != nil {
		return m, fmt.Errorf("falha ao parsear palettes.json: %w", err)
	}
	for _, entry := range conf.Palettes {
		p, err := entry.toPalette()
		if err != nil {
			return m, err
		}
		m.add(p)
	}
	return m, nil
}

func (m *Manager) add(p meshing.Palette) {
	m.palettes[normalizeName(p.Name)] = p
}

func normalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "gray" {
		return "grey"
	}
	if n == "" {
		return "default"
	}
	return n
}

func (e PaletteEntry) toPalette() (meshing.Palette, error) {
	if strings.TrimSpace(e.Name) == "" {
		return meshing.Palette{}, fmt.Errorf("paleta sem nome")
	}
	if len(e.Stops) == 0 {
		return meshing.Palette{}, fmt.Errorf("paleta %q sem cores", e.Name)
	}
	p := meshing.Palette{Name: normalizeName(e.Name)}
	for k, s := range e.Stops {
		if s.T < 0 || s.T > 1 {
			return meshing.Palette{}, fmt.Errorf("paleta %q: t=%v fora de [0, 1]", e.Name, s.T)
		}
		if k > 0 && s.T < e.Stops[k-1].T {
			return meshing.Palette{}, fmt.Errorf("paleta %q: cores fora de ordem em t=%v", e.Name, s.T)
		}
		p.Stops = append(p.Stops, meshing.ColorStop{T: s.T, Color: s.Color})
	}
	return p, nil
}

// --- Consultas Públicas ---

// Palette retorna a paleta com o nome dado (sem diferenciar maiúsculas).
func (m *Manager) Palette(name string) (meshing.Palette, error) {
	p, ok := m.palettes[normalizeName(name)]
	if !ok {
		return meshing.Palette{}, fmt.Errorf("paleta desconhecida %q (disponíveis: %s)", name, strings.Join(m.Names(), ", "))
	}
	return p, nil
}

// Names lista as paletas disponíveis em ordem alfabética.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.palettes))
	for n := range m.palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
