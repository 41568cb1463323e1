package util

import "testing"

func TestUniqueQueueCoalescesByKey(t *testing.T) {
	q := NewUniqueQueue[string, int]()

	if !q.Enqueue("a", 1) {
		t.Fatal("primeiro Enqueue de 'a' deveria ser novo")
	}
	q.Enqueue("b", 2)
	if q.Enqueue("a", 3) {
		t.Fatal("segundo Enqueue de 'a' deveria atualizar")
	}
	if q.Len() != 2 {
		t.Fatalf("Len() = %d, esperado 2", q.Len())
	}

	k, v, ok := q.Dequeue()
	if !ok || k != "a" || v != 3 {
		t.Fatalf("Dequeue() = %q, %d, %v; esperado a, 3, true", k, v, ok)
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d após Dequeue, esperado 1", q.Len())
	}

	// b mudou de posição após o Dequeue; a atualização tem que achar o item certo
	q.Enqueue("b", 5)
	k, v, _ = q.Dequeue()
	if k != "b" || v != 5 {
		t.Fatalf("Dequeue() = %q, %d; esperado b, 5", k, v)
	}
	if _, _, ok := q.Dequeue(); ok {
		t.Fatal("fila deveria estar vazia")
	}
}

func TestUniqueQueueReadySignal(t *testing.T) {
	q := NewUniqueQueue[int, int]()
	q.Enqueue(1, 1)
	q.Enqueue(2, 2)

	select {
	case <-q.Ready():
	default:
		t.Fatal("Ready() sem sinal após Enqueue")
	}
	select {
	case <-q.Ready():
		t.Fatal("sinais de Ready() deveriam colapsar em um")
	default:
	}
}

func TestGridCoord(t *testing.T) {
	c := GridCoord{I: 2, J: 3}
	if got := c.Index(5); got != 13 {
		t.Errorf("Index(5) = %d, esperado 13", got)
	}
	if back := GridCoordFromIndex(13, 5); back != c {
		t.Errorf("GridCoordFromIndex(13, 5) = %v", back)
	}
	if !c.In(4) || c.In(3) || (GridCoord{I: -1}).In(4) {
		t.Error("In() com limites errados")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1.5, 0.0, 1.0) != 0 || Clamp(float32(0.5), 0, 1) != 0.5 {
		t.Error("Clamp fora do esperado")
	}
}
