package meshing

import (
	"context"
	"errors"
	"testing"
	"time"

	"TerrainVision/shared/noise"
)

func waitResult(t *testing.T, w *Worker) Result {
	t.Helper()
	select {
	case res := <-w.Results():
		return res
	case <-time.After(10 * time.Second):
		t.Fatal("tempo esgotado esperando o worker")
	}
	return Result{}
}

func TestWorkerGeneratesAndCaches(t *testing.T) {
	store := NewResultStore(0)
	w := NewWorker(store)
	defer w.Stop()

	req := Request{Size: 8, Noise: noise.DefaultConfig(), Options: DefaultOptions()}
	if !w.Enqueue(req) {
		t.Fatal("Enqueue recusou o primeiro pedido")
	}
	res := waitResult(t, w)
	if res.Err != nil {
		t.Fatalf("erro: %v", res.Err)
	}
	if res.Mesh.Stats().Triangles != 2*7*7 || res.Field.Size() != 8 {
		t.Errorf("resultado inesperado: %+v", res.Mesh.Stats())
	}
	if res.Geometry.TriangleCount() != 2*7*7 {
		t.Errorf("TriangleCount() = %d", res.Geometry.TriangleCount())
	}
	if store.Len() != 1 {
		t.Errorf("store.Len() = %d, esperado 1", store.Len())
	}

	w.Enqueue(req)
	cached := waitResult(t, w)
	if cached.Mesh != res.Mesh {
		t.Error("segundo pedido idêntico não veio do cache")
	}
}

func TestWorkerReportsInvalidConfig(t *testing.T) {
	w := NewWorker(nil)
	defer w.Stop()

	cfg := noise.DefaultConfig()
	cfg.Octaves = 0
	w.Enqueue(Request{Size: 8, Noise: cfg, Options: DefaultOptions()})

	res := waitResult(t, w)
	if !errors.Is(res.Err, noise.ErrInvalidConfig) {
		t.Fatalf("erro = %v, esperado ErrInvalidConfig", res.Err)
	}
	if res.Mesh != nil || res.Field != nil {
		t.Error("resultado com erro não deveria ter malha")
	}
}

func TestWorkerStop(t *testing.T) {
	w := NewWorker(nil)
	w.Stop()
	w.Stop()
	if w.Enqueue(testRequest(1)) {
		t.Error("Enqueue aceitou pedido depois de Stop")
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := Generate(ctx, testRequest(1))
	if !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("erro = %v, esperado context.Canceled", res.Err)
	}
}

func TestWorkerEnqueueLatestDropsPending(t *testing.T) {
	var w Mesher = NewWorker(nil)
	defer w.Stop()

	// Vários pedidos em sequência: o último sempre chega
	var last Request
	for seed := int64(1); seed <= 5; seed++ {
		last = testRequest(seed)
		w.EnqueueLatest(last)
	}

	deadline := time.After(10 * time.Second)
	for {
		select {
		case res := <-w.Results():
			if res.Err != nil {
				t.Fatalf("erro: %v", res.Err)
			}
			if res.Request.Key() == last.Key() {
				if w.Pending() != 0 {
					t.Errorf("Pending() = %d após o último resultado, esperado 0", w.Pending())
				}
				return
			}
		case <-deadline:
			t.Fatal("o pedido mais recente não foi processado")
		}
	}
}
