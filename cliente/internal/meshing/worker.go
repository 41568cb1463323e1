package meshing

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"TerrainVision/shared/terrain"
	"TerrainVision/shared/util"
)

// Worker gera terrenos em segundo plano para o visualizador.
// Pedidos com a mesma chave que ainda estão na fila colapsam em um só.
type Worker struct {
	queue   *util.UniqueQueue[string, Request]
	results chan Result
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once

	ctx    context.Context
	cancel context.CancelFunc

	ResultStore *ResultStore
}

var _ Mesher = (*Worker)(nil)

// NewWorker cria e inicia o worker. resultStore pode ser nil (sem cache).
func NewWorker(resultStore *ResultStore) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		queue:       util.NewUniqueQueue[string, Request](),
		results:     make(chan Result, 8),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
		ctx:         ctx,
		cancel:      cancel,
		ResultStore: resultStore,
	}
	go w.run()
	return w
}

// Enqueue agenda um pedido. Retorna false se um pedido idêntico já estava pendente.
func (w *Worker) Enqueue(req Request) bool {
	select {
	case <-w.stop:
		return false
	default:
	}
	return w.queue.Enqueue(req.Key(), req)
}

// EnqueueLatest descarta os pedidos ainda não iniciados e agenda req.
// Usado pelo visualizador, que só exibe o pedido mais recente.
func (w *Worker) EnqueueLatest(req Request) bool {
	w.queue.Clear()
	return w.Enqueue(req)
}

// Results entrega os terrenos prontos na ordem em que foram pedidos.
func (w *Worker) Results() <-chan Result {
	return w.results
}

// Pending retorna quantos pedidos aguardam processamento.
func (w *Worker) Pending() int {
	return w.queue.Len()
}

// Stop cancela a geração em andamento e espera a goroutine terminar.
func (w *Worker) Stop() {
	w.once.Do(func() {
		close(w.stop)
		w.cancel()
		w.queue.Clear()
	})
	<-w.done
}

func (w *Worker) run() {
	defer close(w.done)
	for {
		select {
		case <-w.stop:
			return
		case <-w.queue.Ready():
		}

		for {
			_, req, ok := w.queue.Dequeue()
			if !ok {
				break
			}
			res := w.process(req)
			select {
			case w.results <- res:
			case <-w.stop:
				return
			}
		}
	}
}

func (w *Worker) process(req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Erro no Mesher Worker: %v", r)
			res = Result{Request: req, Err: fmt.Errorf("pânico ao gerar terreno: %v", r)}
		}
	}()

	// 1. Verificar Cache antes de processar
	if w.ResultStore != nil {
		if cached, ok := w.ResultStore.Get(req); ok {
			return cached
		}
	}

	// 2. Gerar campo e malha
	res = Generate(w.ctx, req)

	// 3. Salvar no cache para uso futuro
	if w.ResultStore != nil {
		w.ResultStore.Store(res)
	}
	return res
}

// Generate executa o pipeline completo de forma síncrona:
// Config → HeightField → Mesh → GeometryData.
func Generate(ctx context.Context, req Request) Result {
	res := Result{Request: req}
	start := time.Now()

	field, err := terrain.GenerateContext(ctx, req.Size, req.Noise)
	if err != nil {
		res.Err = err
		return res
	}

	mesh := Build(field, req.Options)
	res.Field = field
	res.Mesh = mesh
	res.Geometry = mesh.Geometry()

	st := mesh.Stats()
	log.Printf("[Mesher] %s %s: %d vértices, %d triângulos em %v",
		req.Noise.Kind, req.Options.Shading, st.Vertices, st.Triangles, time.Since(start).Round(time.Microsecond))
	return res
}
