package meshing

import (
	"TerrainVision/shared/util"
)

// ColorStop associa uma altura normalizada (0 = vale mais baixo, 1 = pico) a uma cor.
type ColorStop struct {
	T     float32
	Color [4]uint8
}

// Palette é uma rampa de cores por altura. Stops devem estar em ordem crescente de T.
type Palette struct {
	Name  string
	Stops []ColorStop
}

// DefaultPalette é a rampa low-poly: água, areia, grama, floresta, rocha e neve.
var DefaultPalette = Palette{
	Name: "default",
	Stops: []ColorStop{
		{T: 0.00, Color: [4]uint8{28, 64, 122, 255}},   // Água profunda
		{T: 0.25, Color: [4]uint8{52, 110, 168, 255}},  // Água rasa
		{T: 0.32, Color: [4]uint8{214, 196, 140, 255}}, // Areia
		{T: 0.45, Color: [4]uint8{104, 160, 72, 255}},  // Grama
		{T: 0.62, Color: [4]uint8{58, 112, 52, 255}},   // Floresta
		{T: 0.80, Color: [4]uint8{122, 112, 102, 255}}, // Rocha
		{T: 1.00, Color: [4]uint8{240, 242, 246, 255}}, // Neve
	},
}

// GreyPalette é o visual clássico, cinza claro uniforme.
var GreyPalette = Palette{
	Name: "grey",
	Stops: []ColorStop{
		{T: 0, Color: [4]uint8{204, 204, 204, 255}},
		{T: 1, Color: [4]uint8{204, 204, 204, 255}},
	},
}

// Lookup interpola linearmente a cor na altura normalizada t (limitada a [0, 1]).
func (p Palette) Lookup(t float32) [4]uint8 {
	if len(p.Stops) == 0 {
		return [4]uint8{255, 255, 255, 255}
	}
	t = util.Clamp(t, 0, 1)

	if t <= p.Stops[0].T {
		return p.Stops[0].Color
	}
	for k := 1; k < len(p.Stops); k++ {
		lo, hi := p.Stops[k-1], p.Stops[k]
		if t > hi.T {
			continue
		}
		span := hi.T - lo.T
		if span <= 0 {
			return hi.Color
		}
		amount := (t - lo.T) / span
		var c [4]uint8
		for ch := 0; ch < 4; ch++ {
			c[ch] = uint8(util.Lerp(float32(lo.Color[ch]), float32(hi.Color[ch]), amount) + 0.5)
		}
		return c
	}
	return p.Stops[len(p.Stops)-1].Color
}
