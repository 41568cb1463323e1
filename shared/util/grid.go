package util

import "fmt"

// GridCoord é um ponto da grade de alturas: I ao longo de X, J ao longo de Z.
type GridCoord struct {
	I, J int
}

// In verifica se a coordenada está dentro de uma grade size×size.
func (c GridCoord) In(size int) bool {
	return c.I >= 0 && c.J >= 0 && c.I < size && c.J < size
}

// Index retorna o índice row-major da coordenada numa grade size×size.
func (c GridCoord) Index(size int) int {
	return c.I*size + c.J
}

// GridCoordFromIndex é o inverso de Index.
func GridCoordFromIndex(idx, size int) GridCoord {
	return GridCoord{I: idx / size, J: idx % size}
}

// String retorna a representação em string da coordenada.
func (c GridCoord) String() string {
	return fmt.Sprintf("(%d, %d)", c.I, c.J)
}
