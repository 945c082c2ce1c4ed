package prometheus

import (
	"context"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/Swind/go-intent-engine/core"
)

// StorePoller periodically exports MetricsStore aggregates (average execution
// time, success rate, record count per intent type) into Prometheus gauges.
//
// The raw per-attempt events are exported live by MetricsExporter; the poller
// covers the derived aggregates the store computes, so dashboards can show
// them without re-deriving from histograms.
type StorePoller struct {
	interval time.Duration
	store    *core.MetricsStore

	avgExecutionSeconds *prom.GaugeVec
	successRate         *prom.GaugeVec
	recordCount         *prom.GaugeVec

	stateMu sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewStorePoller creates a store poller and registers its collectors.
func NewStorePoller(namespace string, reg prom.Registerer, store *core.MetricsStore, interval time.Duration) (*StorePoller, error) {
	if namespace == "" {
		namespace = "intentengine"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	if interval <= 0 {
		interval = time.Second
	}

	avgVec := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "avg_execution_seconds",
		Help:      "Average execution duration per intent type.",
	}, []string{"intent"})
	rateVec := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "success_rate",
		Help:      "Execution success rate per intent type in [0,1].",
	}, []string{"intent"})
	countVec := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "record_count",
		Help:      "Number of stored execution records per intent type.",
	}, []string{"intent"})

	var err error
	if avgVec, err = registerCollector(reg, avgVec); err != nil {
		return nil, err
	}
	if rateVec, err = registerCollector(reg, rateVec); err != nil {
		return nil, err
	}
	if countVec, err = registerCollector(reg, countVec); err != nil {
		return nil, err
	}

	return &StorePoller{
		interval:            interval,
		store:               store,
		avgExecutionSeconds: avgVec,
		successRate:         rateVec,
		recordCount:         countVec,
	}, nil
}

// Start begins periodic polling; repeated calls are no-ops.
func (p *StorePoller) Start(ctx context.Context) {
	if p == nil || p.store == nil {
		return
	}

	p.stateMu.Lock()
	if p.running {
		p.stateMu.Unlock()
		return
	}
	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true
	p.stateMu.Unlock()

	go p.loop(pollCtx)
}

// Stop stops periodic polling; repeated calls are safe.
func (p *StorePoller) Stop() {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if !p.running {
		p.stateMu.Unlock()
		return
	}
	cancel := p.cancel
	done := p.done
	p.stateMu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	p.stateMu.Lock()
	p.running = false
	p.cancel = nil
	p.done = nil
	p.stateMu.Unlock()
}

func (p *StorePoller) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.collectOnce()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.collectOnce()
		}
	}
}

func (p *StorePoller) collectOnce() {
	for _, intent := range p.store.IntentTypes() {
		label := normalizeLabel(intent, "unknown")
		if avg, ok := p.store.AverageExecutionTime(intent); ok {
			p.avgExecutionSeconds.WithLabelValues(label).Set(avg.Seconds())
		}
		if rate, ok := p.store.SuccessRate(intent); ok {
			p.successRate.WithLabelValues(label).Set(rate)
		}
		p.recordCount.WithLabelValues(label).Set(float64(p.store.Count(intent)))
	}
}
