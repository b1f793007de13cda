package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/codeforge/problemhub/internal/api/metrics"
	"github.com/codeforge/problemhub/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher removes blobs in the background so request handlers do not
// wait on storage. Keys are sharded by hash, so repeated deletes of one key
// always run on the same worker and in order.
type Dispatcher struct {
	workers []chan string
	blobs   ports.BlobStore
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, blobs ports.BlobStore, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		blobs:   blobs,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain what is already queued
// and stop once ctx is cancelled; Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue schedules key for deletion. It never blocks: when the worker's
// buffer is full the key is dropped and logged.
func (d *Dispatcher) Enqueue(key string) {
	idx := d.shardIndex(key)
	select {
	case d.workers[idx] <- key:
		metrics.BlobCleanupQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.BlobCleanupTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("key", key).Int("worker_id", idx).Msg("blob cleanup queue full, key dropped")
	}
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case key := <-ch:
			metrics.BlobCleanupQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.delete(ctx, id, key)
		}
	}
}

// drain runs the deletions still queued at shutdown on a fresh context.
func (d *Dispatcher) drain(id int, ch <-chan string) {
	for {
		select {
		case key := <-ch:
			d.delete(context.Background(), id, key)
		default:
			return
		}
	}
}

func (d *Dispatcher) delete(ctx context.Context, id int, key string) {
	if err := d.blobs.Delete(ctx, key); err != nil {
		metrics.BlobCleanupTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("key", key).
			Int("worker_id", id).
			Msg("blob cleanup failed")
		return
	}
	metrics.BlobCleanupTotal.WithLabelValues("deleted").Inc()
	d.log.Debug().Str("key", key).Int("worker_id", id).Msg("blob deleted")
}
