package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/tuneup/accounts-api/internal/api/metrics"
	"github.com/tuneup/accounts-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// MailDispatcher delivers welcome mail off the request path through a fixed
// set of workers, sharded by recipient so mail to the same address keeps its
// order. It implements ports.Notifier: SendWelcome only enqueues, so the
// signup that triggered the mail never waits on SMTP.
type MailDispatcher struct {
	workers  []chan string
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewMailDispatcher creates a MailDispatcher with numWorkers sharded workers
// delivering through notifier. If numWorkers <= 0, defaultWorkers is used.
func NewMailDispatcher(numWorkers int, notifier ports.Notifier, log zerolog.Logger) *MailDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &MailDispatcher{
		workers:  make([]chan string, numWorkers),
		notifier: notifier,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *MailDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// SendWelcome enqueues a welcome mail for the recipient. The call is
// non-blocking up to channelBuffer capacity and never reports delivery
// failures to the caller.
func (d *MailDispatcher) SendWelcome(_ context.Context, email string) error {
	d.workers[d.shardIndex(email)] <- email
	return nil
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *MailDispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *MailDispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case email, ok := <-ch:
			if !ok {
				return
			}
			if err := d.notifier.SendWelcome(ctx, email); err != nil {
				metrics.WelcomeMailTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("email", email).
					Int("worker_id", id).
					Msg("welcome mail delivery failed")
				continue
			}
			metrics.WelcomeMailTotal.WithLabelValues("sent").Inc()
		}
	}
}
