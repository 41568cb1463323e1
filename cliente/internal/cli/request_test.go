package cli

import (
	"errors"
	"flag"
	"io"
	"math/rand"
	"path/filepath"
	"testing"

	"TerrainVision/cliente/internal/assets"
	"TerrainVision/cliente/internal/meshing"
	"TerrainVision/shared/config"
	"TerrainVision/shared/noise"
	"TerrainVision/shared/presets"
)

func parseFlags(t *testing.T, args ...string) *TerrainFlags {
	t.Helper()
	fs := flag.NewFlagSet("terrainvision", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &TerrainFlags{}
	f.Register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	f.Visit(fs)
	return f
}

func newPalettes(t *testing.T) *assets.Manager {
	t.Helper()
	m, err := assets.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestBuildRequestAppliesFlagsAsGiven(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, req meshing.Request)
	}{
		{"sem flags usa o config", nil, func(t *testing.T, req meshing.Request) {
			want := noise.DefaultConfig()
			if req.Noise.Octaves != want.Octaves || req.Noise.Scale != want.Scale || req.Size != 25 {
				t.Errorf("pedido = %+v", req)
			}
			if req.Noise.Seed < 0 || req.Noise.Seed > noise.MaxRandomSeed {
				t.Errorf("seed sorteada %d fora de [0, %d]", req.Noise.Seed, noise.MaxRandomSeed)
			}
		}},
		{"seed negativa", []string{"-seed", "-7"}, func(t *testing.T, req meshing.Request) {
			if req.Noise.Seed != -7 {
				t.Errorf("Seed = %d, esperado -7", req.Noise.Seed)
			}
		}},
		{"seed zero", []string{"-seed", "0"}, func(t *testing.T, req meshing.Request) {
			if req.Noise.Seed != 0 {
				t.Errorf("Seed = %d, esperado 0", req.Noise.Seed)
			}
		}},
		{"height-scale zero", []string{"-height-scale", "0"}, func(t *testing.T, req meshing.Request) {
			if req.Noise.HeightScale != 0 {
				t.Errorf("HeightScale = %v, esperado 0", req.Noise.HeightScale)
			}
		}},
		{"persistence zero", []string{"-persistence", "0"}, func(t *testing.T, req meshing.Request) {
			if req.Noise.Persistence != 0 {
				t.Errorf("Persistence = %v, esperado 0", req.Noise.Persistence)
			}
		}},
		{"grade vazia", []string{"-size", "0"}, func(t *testing.T, req meshing.Request) {
			if req.Size != 0 {
				t.Errorf("Size = %d, esperado 0", req.Size)
			}
		}},
		{"ruído, sombreamento e paleta", []string{"-noise", "ridged", "-shading", "smooth", "-palette", "gray", "-cell-size", "2"}, func(t *testing.T, req meshing.Request) {
			if req.Noise.Kind != noise.KindRidged || req.Options.Shading != meshing.ShadingSmooth {
				t.Errorf("Kind = %s, Shading = %s", req.Noise.Kind, req.Options.Shading)
			}
			if req.Options.Palette.Name != "grey" || req.Options.CellSize != 2 {
				t.Errorf("Palette = %q, CellSize = %v", req.Options.Palette.Name, req.Options.CellSize)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parseFlags(t, tt.args...)
			req, err := BuildRequest(config.DefaultConfig(), nil, newPalettes(t), rand.New(rand.NewSource(1)), f)
			if err != nil {
				t.Fatalf("BuildRequest: %v", err)
			}
			tt.check(t, req)
		})
	}
}

func TestBuildRequestRejectsInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"octaves zero", []string{"-octaves", "0"}, noise.ErrInvalidConfig},
		{"octaves negativo", []string{"-octaves", "-2"}, noise.ErrInvalidConfig},
		{"tamanho negativo", []string{"-size", "-3"}, noise.ErrInvalidConfig},
		{"cell-size zero", []string{"-cell-size", "0"}, noise.ErrInvalidConfig},
		{"lacunarity NaN", []string{"-lacunarity", "NaN"}, noise.ErrInvalidConfig},
		{"ruído desconhecido", []string{"-noise", "fractal"}, noise.ErrInvalidConfig},
		{"preset sem banco", []string{"-preset", "montanhas"}, ErrNoPresets},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parseFlags(t, tt.args...)
			_, err := BuildRequest(config.DefaultConfig(), nil, newPalettes(t), rand.New(rand.NewSource(1)), f)
			if !errors.Is(err, tt.want) {
				t.Fatalf("erro = %v, esperado %v", err, tt.want)
			}
		})
	}

	// Shading e paleta desconhecidos também falham, com erro próprio
	for _, args := range [][]string{{"-shading", "phong"}, {"-palette", "neon"}} {
		f := parseFlags(t, args...)
		if _, err := BuildRequest(config.DefaultConfig(), nil, newPalettes(t), rand.New(rand.NewSource(1)), f); err == nil {
			t.Errorf("%v: esperado erro", args)
		}
	}
}

func TestBuildRequestDoesNotChangeConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	f := parseFlags(t, "-noise", "voronoi", "-octaves", "3")
	if _, err := BuildRequest(cfg, nil, newPalettes(t), rand.New(rand.NewSource(1)), f); err != nil {
		t.Fatal(err)
	}
	if *cfg != *config.DefaultConfig() {
		t.Errorf("config alterado: %+v", cfg)
	}
}

func TestBuildRequestPresetThenFlags(t *testing.T) {
	store, err := presets.Open(filepath.Join(t.TempDir(), "presets.db"))
	if err != nil {
		t.Fatalf("presets.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	saved := noise.Config{Kind: noise.KindBillow, Seed: 99, Octaves: 4, Persistence: 0.4, Lacunarity: 2.5, Scale: 0.1, HeightScale: 3}
	if err := store.Save(presets.Preset{Name: "colinas", Noise: saved, GridSize: 40}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	f := parseFlags(t, "-preset", "colinas", "-octaves", "2")
	req, err := BuildRequest(config.DefaultConfig(), store, newPalettes(t), rand.New(rand.NewSource(1)), f)
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	want := saved
	want.Octaves = 2
	if req.Noise != want || req.Size != 40 {
		t.Errorf("pedido = %+v (grade %d), esperado %+v (grade 40)", req.Noise, req.Size, want)
	}

	f = parseFlags(t, "-preset", "nao-existe")
	if _, err := BuildRequest(config.DefaultConfig(), store, newPalettes(t), rand.New(rand.NewSource(1)), f); !errors.Is(err, presets.ErrNotFound) {
		t.Errorf("erro = %v, esperado presets.ErrNotFound", err)
	}
}
