package advisory

import (
	"context"
	"io"
	"log"
	"time"

	"sowin-pos/internal/domain"
)

type productLister interface {
	List(ctx context.Context) ([]domain.Product, error)
}

type subscriber interface {
	Subscribe(ctx context.Context) <-chan struct{}
}

// Refresher keeps a Board current. It refreshes on a fixed interval and
// whenever a stock-changed signal arrives.
type Refresher struct {
	products productLister
	board    *Board
	events   subscriber
	interval time.Duration
	logger   *log.Logger
}

// DefaultInterval is used when NewRefresher is given a non-positive interval.
const DefaultInterval = 30 * time.Second

func NewRefresher(products productLister, board *Board, events subscriber, interval time.Duration, logger *log.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Refresher{products: products, board: board, events: events, interval: interval, logger: logger}
}

// Refresh loads the catalog once. On failure the board keeps its previous
// contents.
func (r *Refresher) Refresh(ctx context.Context) error {
	products, err := r.products.List(ctx)
	if err != nil {
		r.logger.Printf("advisory: refresh error=%v", err)
		r.board.Purge()
		return err
	}
	r.board.Refresh(products)
	return nil
}

// Run blocks until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	_ = r.Refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	var changed <-chan struct{}
	if r.events != nil {
		changed = r.events.Subscribe(ctx)
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = r.Refresh(ctx)
		case _, ok := <-changed:
			if !ok {
				changed = nil
				continue
			}
			_ = r.Refresh(ctx)
		}
	}
}
