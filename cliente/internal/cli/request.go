package cli

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"

	"TerrainVision/cliente/internal/assets"
	"TerrainVision/cliente/internal/meshing"
	"TerrainVision/shared/config"
	"TerrainVision/shared/noise"
	"TerrainVision/shared/presets"
)

// ErrNoPresets indica que um preset foi pedido mas o banco não abriu.
var ErrNoPresets = errors.New("banco de presets indisponível")

// TerrainFlags são as flags de linha de comando que descrevem o terreno.
// Só as flags informadas pelo usuário sobrescrevem o config e o preset,
// e entram exatamente como digitadas (inclusive zero e negativos).
type TerrainFlags struct {
	Kind        string
	Seed        int64
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Scale       float64
	HeightScale float64
	Size        int
	CellSize    float64
	Shading     string
	Palette     string
	Preset      string

	set map[string]bool
}

// Register declara as flags de terreno em fs.
func (f *TerrainFlags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Kind, "noise", "", "Tipo de ruído: perlin, simplex, value, ridged, billow, voronoi, combined")
	fs.Int64Var(&f.Seed, "seed", 0, "Seed do ruído (padrão: aleatória em [0, 10000])")
	fs.IntVar(&f.Octaves, "octaves", 0, "Número de oitavas fractais")
	fs.Float64Var(&f.Persistence, "persistence", 0, "Decaimento de amplitude por oitava")
	fs.Float64Var(&f.Lacunarity, "lacunarity", 0, "Crescimento de frequência por oitava")
	fs.Float64Var(&f.Scale, "scale", 0, "Frequência espacial por célula da grade")
	fs.Float64Var(&f.HeightScale, "height-scale", 0, "Multiplicador de altura")
	fs.IntVar(&f.Size, "size", 0, "Pontos por lado da grade")
	fs.Float64Var(&f.CellSize, "cell-size", 0, "Espaçamento entre pontos em unidades de mundo")
	fs.StringVar(&f.Shading, "shading", "", "Sombreamento: flat ou smooth")
	fs.StringVar(&f.Palette, "palette", "", "Paleta de cores: default, grey ou uma de assets/palettes.json")
	fs.StringVar(&f.Preset, "preset", "", "Carregar preset salvo")
}

// Visit registra quais flags foram informadas. Chamar depois de fs.Parse.
func (f *TerrainFlags) Visit(fs *flag.FlagSet) {
	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})
}

// IsSet diz se a flag name apareceu na linha de comando.
func (f *TerrainFlags) IsSet(name string) bool {
	return f.set[name]
}

// BuildRequest combina config, preset e flags, nessa ordem de prioridade crescente.
// Valores inválidos retornam noise.ErrInvalidConfig; nada é corrigido em silêncio.
// Sem seed no preset nem na linha de comando, uma seed é sorteada com rng.
func BuildRequest(cfg *config.Config, store *presets.Store, palettes *assets.Manager, rng *rand.Rand, f *TerrainFlags) (meshing.Request, error) {
	kindName := cfg.NoiseKind
	if f.IsSet("noise") {
		kindName = f.Kind
	}
	kind, err := noise.ParseKind(kindName)
	if err != nil {
		return meshing.Request{}, err
	}

	n := noise.Config{
		Kind:        kind,
		Octaves:     cfg.Octaves,
		Persistence: cfg.Persistence,
		Lacunarity:  cfg.Lacunarity,
		Scale:       cfg.Scale,
		HeightScale: cfg.HeightScale,
	}
	gridSize := cfg.GridSize
	seedSet := false

	if f.Preset != "" {
		if store == nil {
			return meshing.Request{}, ErrNoPresets
		}
		p, err := store.Load(f.Preset)
		if err != nil {
			return meshing.Request{}, err
		}
		n, gridSize, seedSet = p.Noise, p.GridSize, true
		log.Printf("[Presets] Preset %q carregado: %s", p.Name, p.Noise)
		if f.IsSet("noise") {
			n.Kind = kind
		}
	}

	if f.IsSet("seed") {
		n.Seed, seedSet = f.Seed, true
	}
	if !seedSet {
		n.Seed = noise.RandomSeed(rng)
	}
	if f.IsSet("octaves") {
		n.Octaves = f.Octaves
	}
	if f.IsSet("persistence") {
		n.Persistence = f.Persistence
	}
	if f.IsSet("lacunarity") {
		n.Lacunarity = f.Lacunarity
	}
	if f.IsSet("scale") {
		n.Scale = f.Scale
	}
	if f.IsSet("height-scale") {
		n.HeightScale = f.HeightScale
	}
	if f.IsSet("size") {
		gridSize = f.Size
	}
	if err := n.Validate(); err != nil {
		return meshing.Request{}, err
	}
	if gridSize < 0 {
		return meshing.Request{}, fmt.Errorf("%w: tamanho da grade negativo (%d)", noise.ErrInvalidConfig, gridSize)
	}

	opts := meshing.DefaultOptions()
	opts.CellSize = cfg.CellSize
	if f.IsSet("cell-size") {
		if !(f.CellSize > 0) || math.IsInf(f.CellSize, 0) {
			return meshing.Request{}, fmt.Errorf("%w: cell-size deve ser positivo e finito (recebido %v)", noise.ErrInvalidConfig, f.CellSize)
		}
		opts.CellSize = float32(f.CellSize)
	}

	shadingName := cfg.Shading
	if f.IsSet("shading") {
		shadingName = f.Shading
	}
	if opts.Shading, err = meshing.ParseShading(shadingName); err != nil {
		return meshing.Request{}, err
	}

	paletteName := cfg.Palette
	if f.IsSet("palette") {
		paletteName = f.Palette
	}
	if opts.Palette, err = palettes.Palette(paletteName); err != nil {
		return meshing.Request{}, err
	}

	return meshing.Request{Size: gridSize, Noise: n, Options: opts}, nil
}
