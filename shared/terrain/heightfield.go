package terrain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"TerrainVision/shared/noise"
	"TerrainVision/shared/util"

	"github.com/dgravesa/go-parallel/parallel"
)

// ErrInvalidConfig é o mesmo erro do pacote noise, para que o chamador
// trate tamanho inválido e parâmetros de ruído inválidos da mesma forma.
var ErrInvalidConfig = noise.ErrInvalidConfig

// ErrNonFiniteHeight indica que alguma amostra saiu NaN ou infinita
// (ex: persistence tão grande que a soma das oitavas estoura).
var ErrNonFiniteHeight = errors.New("altura não finita no campo de alturas")

// HeightField é uma grade N×N de alturas, imutável após Generate.
type HeightField struct {
	size    int
	heights []float64 // row-major: índice i*size + j
	cfg     noise.Config
	min     float64
	max     float64
}

// Generate amostra o ruído em cada ponto inteiro (i, j) de uma grade size×size.
func Generate(size int, cfg noise.Config) (*HeightField, error) {
	return GenerateContext(context.Background(), size, cfg)
}

// GenerateContext é Generate com cancelamento entre linhas da grade.
// As linhas são amostradas em paralelo; cada linha escreve apenas na sua
// fatia, então o resultado é idêntico ao de uma execução sequencial.
func GenerateContext(ctx context.Context, size int, cfg noise.Config) (*HeightField, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: tamanho da grade negativo (%d)", ErrInvalidConfig, size)
	}

	field, err := noise.NewField(cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	heights := make([]float64, size*size)

	if size > 0 {
		parallel.For(size, func(i, _ int) {
			if ctx.Err() != nil {
				return
			}
			row := heights[i*size : (i+1)*size]
			for j := range row {
				row[j] = field.Sample(i, j)
			}
		})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hf := &HeightField{size: size, heights: heights, cfg: cfg}
	if err := hf.computeBounds(); err != nil {
		return nil, err
	}

	log.Printf("[Terreno] Campo %dx%d gerado em %v (%s)", size, size, time.Since(start).Round(time.Microsecond), cfg)
	return hf, nil
}

// FromHeights constrói um campo a partir de alturas já calculadas (row-major).
// Usado por ferramentas e testes; aplica as mesmas validações de Generate.
func FromHeights(size int, heights []float64, cfg noise.Config) (*HeightField, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: tamanho da grade negativo (%d)", ErrInvalidConfig, size)
	}
	if len(heights) != size*size {
		return nil, fmt.Errorf("%w: esperado %d alturas, recebido %d", ErrInvalidConfig, size*size, len(heights))
	}
	hf := &HeightField{size: size, heights: append([]float64(nil), heights...), cfg: cfg}
	if err := hf.computeBounds(); err != nil {
		return nil, err
	}
	return hf, nil
}

func (h *HeightField) computeBounds() error {
	h.min, h.max = 0, 0
	for idx, v := range h.heights {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: ponto %v = %v", ErrNonFiniteHeight, util.GridCoordFromIndex(idx, h.size), v)
		}
		if idx == 0 || v < h.min {
			h.min = v
		}
		if idx == 0 || v > h.max {
			h.max = v
		}
	}
	return nil
}

// Size retorna N, a dimensão da grade.
func (h *HeightField) Size() int {
	return h.size
}

// Config retorna a configuração de ruído que gerou o campo.
func (h *HeightField) Config() noise.Config {
	return h.cfg
}

// At retorna a altura no ponto (i, j). Entra em pânico fora da grade, como um slice.
func (h *HeightField) At(i, j int) float64 {
	c := util.GridCoord{I: i, J: j}
	if !c.In(h.size) {
		panic(fmt.Sprintf("terrain: ponto %v fora da grade %dx%d", c, h.size, h.size))
	}
	return h.heights[c.Index(h.size)]
}

// Bounds retorna a menor e a maior altura. Um campo vazio retorna (0, 0).
func (h *HeightField) Bounds() (min, max float64) {
	return h.min, h.max
}

// Heights retorna uma cópia das alturas em ordem row-major.
func (h *HeightField) Heights() []float64 {
	return append([]float64(nil), h.heights...)
}
