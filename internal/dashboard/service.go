package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"laundry-be/internal/logger"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	kindLaundry = "laundry"
	kindIroning = "ironing"

	statsKey = "stats"
)

type Service interface {
	Stats(ctx context.Context) (*Stats, error)
	// Invalidate drops any cached stats. Writers call it after every
	// successful change to customers, items or orders.
	Invalidate()
}

type service struct {
	repo        Repository
	ironingRate decimal.Decimal

	cache *expirable.LRU[string, *Stats]
	// gen is bumped by Invalidate so a computation that raced a write does
	// not repopulate the cache with stale figures. mu makes the generation
	// check and the cache write one step with respect to Invalidate.
	gen atomic.Uint64
	mu  sync.Mutex
}

// NewService builds the aggregation service. A zero cacheTTL disables
// caching and every call re-scans.
func NewService(repo Repository, ironingRate decimal.Decimal, cacheTTL time.Duration) Service {
	s := &service{repo: repo, ironingRate: ironingRate}
	if cacheTTL > 0 {
		s.cache = expirable.NewLRU[string, *Stats](1, nil, cacheTTL)
	}
	return s
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DashboardStats"),
	)

	if s.cache != nil {
		if st, ok := s.cache.Get(statsKey); ok {
			log.Debug("dashboard cache hit")
			return st, nil
		}
	}

	gen := s.gen.Load()
	st, err := s.compute(ctx)
	if err != nil {
		log.Error("failed to compute dashboard stats", zap.Error(err))
		return nil, err
	}

	s.store(gen, st)

	log.Info("DashboardStats success", zap.Int64("customers", st.TotalCustomers))
	return st, nil
}

func (s *service) compute(ctx context.Context) (*Stats, error) {
	var st Stats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		st.TotalCustomers, err = s.repo.CountCustomers(gctx)
		return err
	})
	g.Go(func() (err error) {
		st.TotalIroningRevenue, err = s.repo.Revenue(gctx, kindIroning)
		return err
	})
	g.Go(func() (err error) {
		st.TotalLaundryRevenue, err = s.repo.Revenue(gctx, kindLaundry)
		return err
	})
	g.Go(func() error {
		items, err := s.repo.ItemQuantities(gctx, kindIroning)
		if err != nil {
			return err
		}
		for i := range items {
			items[i].Revenue = s.ironingRate.Mul(decimal.NewFromInt(items[i].Qty))
		}
		st.IroningItems = items
		return nil
	})
	g.Go(func() (err error) {
		st.LaundryItems, err = s.repo.LaundryItemTotals(gctx)
		return err
	})
	g.Go(func() (err error) {
		st.IroningStatuses, err = s.repo.StatusCounts(gctx, kindIroning)
		return err
	})
	g.Go(func() (err error) {
		st.LaundryStatuses, err = s.repo.StatusCounts(gctx, kindLaundry)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &st, nil
}

// store caches st only if no Invalidate ran since gen was read.
func (s *service) store(gen uint64, st *Stats) {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen.Load() == gen {
		s.cache.Add(statsKey, st)
	}
}

func (s *service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen.Add(1)
	if s.cache != nil {
		s.cache.Purge()
	}
}
