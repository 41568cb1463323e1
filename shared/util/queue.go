package util

import "sync"

// UniqueQueue é uma fila thread-safe que garante elementos únicos por chave.
// Um Enqueue com chave já presente substitui o valor sem mudar a posição,
// então pedidos repetidos de regeneração colapsam no mais recente.
type UniqueQueue[K comparable, V any] struct {
	mu      sync.Mutex
	items   []entry[K, V]
	present map[K]int // posição em items
	ready   chan struct{}
}

type entry[K comparable, V any] struct {
	Key   K
	Value V
}

// NewUniqueQueue cria uma nova UniqueQueue.
func NewUniqueQueue[K comparable, V any]() *UniqueQueue[K, V] {
	return &UniqueQueue[K, V]{
		items:   make([]entry[K, V], 0, 16),
		present: make(map[K]int),
		ready:   make(chan struct{}, 1),
	}
}

// Enqueue adiciona um item. Retorna true se foi adicionado (novo), false se foi atualizado.
func (q *UniqueQueue[K, V]) Enqueue(key K, value V) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	added := false
	if pos, ok := q.present[key]; ok {
		q.items[pos].Value = value
	} else {
		q.present[key] = len(q.items)
		q.items = append(q.items, entry[K, V]{Key: key, Value: value})
		added = true
	}

	// Sinal não bloqueante: basta um pendente para acordar o consumidor
	select {
	case q.ready <- struct{}{}:
	default:
	}
	return added
}

// Dequeue remove e retorna o primeiro item da fila.
func (q *UniqueQueue[K, V]) Dequeue() (K, V, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}

	e := q.items[0]
	q.items = q.items[1:]
	delete(q.present, e.Key)
	for k, pos := range q.present {
		q.present[k] = pos - 1
	}
	return e.Key, e.Value, true
}

// Ready sinaliza que houve Enqueue desde a última leitura do canal.
func (q *UniqueQueue[K, V]) Ready() <-chan struct{} {
	return q.ready
}

// Len retorna o número de items na fila.
func (q *UniqueQueue[K, V]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Clear limpa a fila.
func (q *UniqueQueue[K, V]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = q.items[:0]
	q.present = make(map[K]int)
}
