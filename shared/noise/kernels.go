package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Kernel é a capacidade comum a todos os ruídos base: um valor em [-1, 1]
// para uma coordenada contínua. Implementações são somente leitura após a
// construção e podem ser usadas por várias goroutines.
type Kernel interface {
	Noise2D(x, y float64) float64
}

// newKernel escolhe a implementação do kernel para a seed informada.
// A escolha acontece uma única vez, na construção do Field.
func newKernel(kind Kind, seed int64) Kernel {
	switch kind {
	case KindSimplex:
		return newSimplexKernel(seed)
	case KindValue:
		return valueKernel{seed: seed}
	case KindRidged:
		return ridgedKernel{base: newSimplexKernel(seed)}
	case KindBillow:
		return billowKernel{base: newPerlinKernel(seed)}
	case KindVoronoi:
		return voronoiKernel{seed: seed}
	case KindCombined:
		return combinedKernel{a: newPerlinKernel(seed), b: newSimplexKernel(seed)}
	default:
		return newPerlinKernel(seed)
	}
}

// perlinKernel usa uma única oitava do go-perlin; as oitavas são somadas pelo Field.
type perlinKernel struct {
	p *perlin.Perlin
}

func newPerlinKernel(seed int64) perlinKernel {
	// alpha e beta só importam com n > 1
	return perlinKernel{p: perlin.NewPerlin(2, 2, 1, seed)}
}

func (k perlinKernel) Noise2D(x, y float64) float64 {
	return clampUnit(k.p.Noise2D(x, y))
}

type simplexKernel struct {
	n opensimplex.Noise
}

func newSimplexKernel(seed int64) simplexKernel {
	return simplexKernel{n: opensimplex.New(seed)}
}

func (k simplexKernel) Noise2D(x, y float64) float64 {
	return clampUnit(k.n.Eval2(x, y))
}

// valueKernel interpola valores pseudoaleatórios dos cantos da célula.
type valueKernel struct {
	seed int64
}

func (k valueKernel) Noise2D(x, y float64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := fade(x - x0)
	fy := fade(y - y0)

	ix, iy := int64(x0), int64(y0)
	v00 := latticeValue(ix, iy, k.seed)
	v10 := latticeValue(ix+1, iy, k.seed)
	v01 := latticeValue(ix, iy+1, k.seed)
	v11 := latticeValue(ix+1, iy+1, k.seed)

	v := lerp(lerp(v00, v10, fx), lerp(v01, v11, fx), fy)
	return v*2 - 1
}

type ridgedKernel struct {
	base Kernel
}

func (k ridgedKernel) Noise2D(x, y float64) float64 {
	r := 1 - math.Abs(k.base.Noise2D(x, y))
	return r * r
}

type billowKernel struct {
	base Kernel
}

func (k billowKernel) Noise2D(x, y float64) float64 {
	return math.Abs(k.base.Noise2D(x, y))
}

type combinedKernel struct {
	a, b Kernel
}

func (k combinedKernel) Noise2D(x, y float64) float64 {
	return (k.a.Noise2D(x, y) + k.b.Noise2D(x, y)) * 0.5
}

// voronoiKernel mede a distância ao ponto de característica mais próximo,
// um ponto por célula inteira, procurando nas 3x3 células vizinhas.
type voronoiKernel struct {
	seed int64
}

func (k voronoiKernel) Noise2D(x, y float64) float64 {
	cx := int64(math.Floor(x))
	cy := int64(math.Floor(y))

	minDist := math.MaxFloat64
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			px, py := cx+dx, cy+dy
			fx := float64(px) + latticeValue(px, py, k.seed)
			fy := float64(py) + latticeValue(px, py, k.seed^0x5bd1e995)
			d := math.Hypot(fx-x, fy-y)
			if d < minDist {
				minDist = d
			}
		}
	}

	if minDist > 1 {
		minDist = 1
	}
	return minDist*2 - 1
}

// fade é a curva quíntica 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// mix64 é o finalizador do SplitMix64.
func mix64(v uint64) uint64 {
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

func hash2(x, y, seed int64) uint64 {
	v := uint64(x)*0x8CB92BA72F3D8DD7 + uint64(y)*0xD6E8FEB86659FD93 + uint64(seed)*0x9E3779B97F4A7C15
	return mix64(v)
}

// latticeValue mapeia um ponto inteiro do reticulado em [0, 1).
func latticeValue(x, y, seed int64) float64 {
	return float64(hash2(x, y, seed)>>11) / (1 << 53)
}
