package terrain

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"TerrainVision/shared/noise"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := noise.Config{Kind: noise.KindPerlin, Seed: 42, Octaves: 1, Persistence: 0.5, Lacunarity: 2, Scale: 5, HeightScale: 2}

	a, err := Generate(4, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, _ := Generate(4, cfg)

	if a.Size() != 4 || len(a.Heights()) != 16 {
		t.Fatalf("Size() = %d, len = %d", a.Size(), len(a.Heights()))
	}
	for i := range 4 {
		for j := range 4 {
			if math.Float64bits(a.At(i, j)) != math.Float64bits(b.At(i, j)) {
				t.Fatalf("(%d, %d) difere entre execuções: %v != %v", i, j, a.At(i, j), b.At(i, j))
			}
		}
	}

	c, _ := Generate(4, cfg.WithSeed(43))
	same := true
	for i := range 4 {
		for j := range 4 {
			if c.At(i, j) != a.At(i, j) {
				same = false
			}
			if math.Abs(c.At(i, j)) > 2 {
				t.Fatalf("seed 43: (%d, %d) = %v fora de [-2, 2]", i, j, c.At(i, j))
			}
		}
	}
	if same {
		t.Error("seed 43 gerou o mesmo campo que seed 42")
	}
}

func TestGenerateMatchesSequentialSampling(t *testing.T) {
	cfg := noise.DefaultConfig()
	cfg.Kind = noise.KindCombined
	cfg.Seed = 2024

	hf, err := Generate(33, cfg)
	if err != nil {
		t.Fatal(err)
	}
	f, _ := noise.NewField(cfg)
	for i := 0; i < 33; i++ {
		for j := 0; j < 33; j++ {
			if hf.At(i, j) != f.Sample(i, j) {
				t.Fatalf("(%d, %d): paralelo %v != sequencial %v", i, j, hf.At(i, j), f.Sample(i, j))
			}
		}
	}
}

func TestGenerateBounds(t *testing.T) {
	hf, err := Generate(16, noise.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	lo, hi := hf.Bounds()
	for _, v := range hf.Heights() {
		if v < lo || v > hi {
			t.Fatalf("altura %v fora de Bounds() [%v, %v]", v, lo, hi)
		}
	}
	if hf.Config() != noise.DefaultConfig() {
		t.Error("Config() não devolve a configuração usada")
	}
}

func TestGenerateEmptyGrids(t *testing.T) {
	for _, size := range []int{0, 1} {
		hf, err := Generate(size, noise.DefaultConfig())
		if err != nil {
			t.Fatalf("Generate(%d): %v", size, err)
		}
		if hf.Size() != size || len(hf.Heights()) != size*size {
			t.Errorf("Generate(%d): Size() = %d, %d alturas", size, hf.Size(), len(hf.Heights()))
		}
	}
}

func TestGenerateInvalidConfig(t *testing.T) {
	bad := noise.DefaultConfig()
	bad.Octaves = 0

	nan := noise.DefaultConfig()
	nan.Lacunarity = math.NaN()

	tests := []struct {
		name string
		size int
		cfg  noise.Config
	}{
		{"tamanho negativo", -1, noise.DefaultConfig()},
		{"octaves zero", 8, bad},
		{"lacunarity NaN", 8, nan},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.size, tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("erro = %v, esperado ErrInvalidConfig", err)
			}
			if !errors.Is(err, noise.ErrInvalidConfig) {
				t.Fatalf("erro = %v não casa com noise.ErrInvalidConfig", err)
			}
		})
	}
}

func TestGenerateRejectsNonFiniteHeights(t *testing.T) {
	cfg := noise.DefaultConfig()
	cfg.HeightScale = math.MaxFloat64
	cfg.Persistence = math.MaxFloat64
	cfg.Octaves = 3

	_, err := Generate(8, cfg)
	if !errors.Is(err, ErrNonFiniteHeight) {
		t.Fatalf("erro = %v, esperado ErrNonFiniteHeight", err)
	}
}

func TestFromHeights(t *testing.T) {
	if _, err := FromHeights(2, []float64{0, 1, 2}, noise.DefaultConfig()); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("tamanho incoerente: erro = %v", err)
	}
	_, err := FromHeights(2, []float64{0, 1, math.Inf(1), 2}, noise.DefaultConfig())
	if !errors.Is(err, ErrNonFiniteHeight) {
		t.Errorf("altura infinita: erro = %v", err)
	} else if !strings.Contains(err.Error(), "(1, 0)") {
		t.Errorf("erro não indica o ponto (1, 0): %v", err)
	}

	src := []float64{1, 2, 3, 4}
	hf, err := FromHeights(2, src, noise.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	src[0] = 99
	if hf.At(0, 0) != 1 {
		t.Error("FromHeights não copiou as alturas")
	}
	if hf.At(1, 0) != 3 || hf.At(0, 1) != 2 {
		t.Errorf("ordem row-major errada: At(1,0)=%v At(0,1)=%v", hf.At(1, 0), hf.At(0, 1))
	}
}

func TestGenerateContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := GenerateContext(ctx, 16, noise.DefaultConfig()); !errors.Is(err, context.Canceled) {
		t.Fatalf("erro = %v, esperado context.Canceled", err)
	}
}
