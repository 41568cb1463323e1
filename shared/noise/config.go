package noise

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// ErrInvalidConfig indica parâmetros fora do intervalo, não finitos ou um kernel desconhecido.
// Nunca corrigimos valores silenciosamente: isso quebraria a reprodutibilidade por seed.
var ErrInvalidConfig = errors.New("configuração de ruído inválida")

// Kind seleciona o kernel de ruído base.
type Kind int

const (
	KindPerlin   Kind = iota // Ruído de gradiente clássico
	KindSimplex              // Gradiente em reticulado rotacionado (OpenSimplex)
	KindValue                // Valores aleatórios interpolados no reticulado
	KindRidged               // (1 - |simplex|)² por oitava
	KindBillow               // |perlin| por oitava
	KindVoronoi              // Distância ao ponto de célula mais próximo (sem oitavas)
	KindCombined             // Média de Perlin e Simplex
)

var kindNames = [...]string{
	KindPerlin:   "perlin",
	KindSimplex:  "simplex",
	KindValue:    "value",
	KindRidged:   "ridged",
	KindBillow:   "billow",
	KindVoronoi:  "voronoi",
	KindCombined: "combined",
}

// Kinds lista todos os kernels na ordem de ciclo usada pelo visualizador.
func Kinds() []Kind {
	return []Kind{KindPerlin, KindSimplex, KindValue, KindRidged, KindBillow, KindVoronoi, KindCombined}
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reporta se k é um dos sete kernels conhecidos.
func (k Kind) Valid() bool {
	return k >= KindPerlin && k <= KindCombined
}

// Next retorna o próximo kernel no ciclo.
func (k Kind) Next() Kind {
	return Kind((int(k) + 1) % len(kindNames))
}

// ParseKind converte o nome da linha de comando (sem diferenciar maiúsculas) em Kind.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range kindNames {
		if s == n {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: tipo de ruído desconhecido %q", ErrInvalidConfig, name)
}

// Config descreve completamente um campo de ruído. É um valor imutável:
// a mesma Config sempre produz as mesmas amostras.
type Config struct {
	Kind        Kind    `json:"kind"`
	Seed        int64   `json:"seed"`
	Octaves     int     `json:"octaves"`
	Persistence float64 `json:"persistence"` // Decaimento de amplitude por oitava
	Lacunarity  float64 `json:"lacunarity"`  // Crescimento de frequência por oitava
	Scale       float64 `json:"scale"`       // Frequência espacial por célula da grade
	HeightScale float64 `json:"height_scale"`
}

// DefaultConfig retorna os parâmetros padrão do simulador.
// Scale 0.2 por célula equivale a 5.0 sobre a grade padrão de 25 pontos.
func DefaultConfig() Config {
	return Config{
		Kind:        KindPerlin,
		Seed:        0,
		Octaves:     6,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Scale:       0.2,
		HeightScale: 2.0,
	}
}

// Validate verifica os limites da configuração.
func (c Config) Validate() error {
	if !c.Kind.Valid() {
		return fmt.Errorf("%w: kernel %s", ErrInvalidConfig, c.Kind)
	}
	if c.Octaves < 1 {
		return fmt.Errorf("%w: octaves deve ser >= 1 (recebido %d)", ErrInvalidConfig, c.Octaves)
	}
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"persistence", c.Persistence},
		{"lacunarity", c.Lacunarity},
		{"scale", c.Scale},
		{"height-scale", c.HeightScale},
	} {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s não é finito (%v)", ErrInvalidConfig, p.name, p.v)
		}
	}
	return nil
}

// MaxRandomSeed é o maior valor sorteado quando nenhuma seed é informada.
const MaxRandomSeed = 10000

// RandomSeed sorteia uma seed em [0, MaxRandomSeed].
func RandomSeed(r *rand.Rand) int64 {
	return r.Int63n(MaxRandomSeed + 1)
}

// WithSeed retorna uma cópia da configuração com outra seed.
func (c Config) WithSeed(seed int64) Config {
	c.Seed = seed
	return c
}

// String retorna um resumo legível, usado em logs e como chave de cache.
func (c Config) String() string {
	return fmt.Sprintf("%s seed=%d oct=%d pers=%g lac=%g scale=%g h=%g",
		c.Kind, c.Seed, c.Octaves, c.Persistence, c.Lacunarity, c.Scale, c.HeightScale)
}
