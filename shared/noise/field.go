package noise

import "math"

// Field é um campo de ruído pronto para amostragem: kernel semeado,
// deslocamento derivado da seed e constante de normalização calculados uma vez.
// Seguro para uso concorrente.
type Field struct {
	cfg     Config
	kernel  Kernel
	offsetX float64
	offsetZ float64
	norm    float64
}

// NewField valida a configuração e prepara o kernel correspondente.
func NewField(cfg Config) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// O deslocamento fracionário tira as coordenadas inteiras dos pontos do
	// reticulado, onde o Perlin vale sempre zero.
	h := mix64(uint64(cfg.Seed))
	f := &Field{
		cfg:     cfg,
		kernel:  newKernel(cfg.Kind, cfg.Seed),
		offsetX: float64(h>>40) / (1 << 24),
		offsetZ: float64((h>>16)&0xFFFFFF) / (1 << 24),
		norm:    amplitudeSum(cfg.Octaves, cfg.Persistence),
	}
	return f, nil
}

// Config retorna a configuração que gerou o campo.
func (f *Field) Config() Config {
	return f.cfg
}

// Sample retorna a altura (já multiplicada por HeightScale) no ponto inteiro (x, z).
func (f *Field) Sample(x, z int) float64 {
	fx, fz := float64(x), float64(z)

	if f.cfg.Kind == KindVoronoi {
		v := f.kernel.Noise2D(fx*f.cfg.Scale+f.offsetX, fz*f.cfg.Scale+f.offsetZ)
		return v * f.cfg.HeightScale
	}

	var total float64
	frequency := f.cfg.Scale
	amplitude := 1.0
	for range f.cfg.Octaves {
		total += amplitude * f.kernel.Noise2D(fx*frequency+f.offsetX, fz*frequency+f.offsetZ)
		frequency *= f.cfg.Lacunarity
		amplitude *= f.cfg.Persistence
	}

	return total / f.norm * f.cfg.HeightScale
}

// Sample é a forma direta de NewField(cfg).Sample(x, z).
// Para muitas amostras prefira criar o Field uma vez.
func Sample(x, z int, cfg Config) (float64, error) {
	f, err := NewField(cfg)
	if err != nil {
		return 0, err
	}
	return f.Sample(x, z), nil
}

// amplitudeSum soma a série geométrica de amplitudes (em módulo), que é o
// maior valor absoluto possível da soma fractal. Soma nula ou não finita vira 1.
func amplitudeSum(octaves int, persistence float64) float64 {
	sum := 0.0
	amplitude := 1.0
	for range octaves {
		sum += math.Abs(amplitude)
		amplitude *= persistence
	}
	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return 1
	}
	return sum
}
