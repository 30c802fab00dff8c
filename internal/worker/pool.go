package worker

import (
	"context"
	"sync"

	"github.com/osadebe/claimsight/internal/model"
)

// Processor runs one claim document through OCR, extraction and the store.
// Satisfied by pipeline.Pipeline.
type Processor interface {
	Process(ctx context.Context, data []byte, filename string) (*model.ClaimRecord, error)
}

// DocumentJob is one document file queued for processing
type DocumentJob struct {
	Path string
	Data []byte
}

// DocumentResult is the outcome of one processed document
type DocumentResult struct {
	Path   string
	Record *model.ClaimRecord
	Err    error
}

// Pool processes documents concurrently against a single Processor. Every
// worker writes into the same claim store through the processor; the store
// is the only synchronization point between them.
type Pool struct {
	workers    int
	processor  Processor
	jobs       chan DocumentJob
	results    chan DocumentResult
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a pool with the given number of workers
func NewPool(processor Processor, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers:    workers,
		processor:  processor,
		jobs:       make(chan DocumentJob, workers*2), // Buffered to prevent blocking
		results:    make(chan DocumentResult, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			rec, err := p.processor.Process(p.ctx, job.Data, job.Path)
			result := DocumentResult{Path: job.Path, Record: rec, Err: err}
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a document for processing
func (p *Pool) Submit(job DocumentJob) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Wait waits for all submitted jobs to complete and returns the results
func (p *Pool) Wait() []DocumentResult {
	close(p.jobs)

	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	var results []DocumentResult
	for result := range p.results {
		results = append(results, result)
	}

	return results
}

// Shutdown cancels in-flight jobs and stops the workers
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
