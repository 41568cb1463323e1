package meshing

import (
	"sync"
)

// DefaultStoreCapacity é quantos terrenos o visualizador mantém em RAM.
const DefaultStoreCapacity = 16

// ResultStore armazena os resultados de geração na RAM para evitar re-processamento
// quando o usuário volta a uma configuração já vista (ex: ciclando tipos de ruído).
type ResultStore struct {
	mu       sync.RWMutex
	results  map[string]Result
	order    []string // Ordem de inserção, para descartar o mais antigo
	capacity int
}

// NewResultStore cria um novo repositório de resultados. capacity <= 0 usa o padrão.
func NewResultStore(capacity int) *ResultStore {
	if capacity <= 0 {
		capacity = DefaultStoreCapacity
	}
	return &ResultStore{
		results:  make(map[string]Result),
		capacity: capacity,
	}
}

// Get retorna o resultado de um pedido idêntico, se existir.
func (s *ResultStore) Get(req Request) (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.results[req.Key()]
	if !ok {
		return Result{}, false
	}
	// Retornamos um clone para evitar que modificações externas afetem o cache
	return res.Clone(), true
}

// Store salva um resultado bem-sucedido. Resultados com erro não são guardados.
func (s *ResultStore) Store(res Result) {
	if res.Err != nil {
		return
	}
	key := res.Request.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[key]; !exists {
		s.order = append(s.order, key)
	}
	s.results[key] = res.Clone()

	for len(s.order) > s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.results, oldest)
	}
}

// Len retorna quantos resultados estão em cache.
func (s *ResultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

// Clone realiza uma cópia profunda dos buffers de um Result.
// Field e Mesh são imutáveis depois de construídos e podem ser compartilhados.
func (r Result) Clone() Result {
	return Result{
		Request:  r.Request,
		Field:    r.Field,
		Mesh:     r.Mesh,
		Geometry: r.Geometry.Clone(),
		Err:      r.Err,
	}
}
