package monitoring

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"
)

// HostSampler periodically copies host CPU and memory usage into Metrics
type HostSampler struct {
	metrics  *Metrics
	interval time.Duration
	log      *zap.Logger
}

func NewHostSampler(metrics *Metrics, interval time.Duration, log *zap.Logger) *HostSampler {
	return &HostSampler{metrics: metrics, interval: interval, log: log}
}

// Run samples until ctx is cancelled. It always returns nil so it can be
// supervised next to the HTTP server.
func (s *HostSampler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.collect(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.collect(ctx)
		}
	}
}

func (s *HostSampler) collect(ctx context.Context) {
	// Zero interval compares against the previous call instead of blocking
	cpuPercents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		s.fail("cpu", err)
	} else if len(cpuPercents) > 0 {
		s.metrics.hostCPU.Set(cpuPercents[0])
	}

	memStats, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		s.fail("memory", err)
		return
	}
	s.metrics.hostMemUsed.Set(float64(memStats.Used))
	s.metrics.hostMemTotal.Set(float64(memStats.Total))
}

func (s *HostSampler) fail(what string, err error) {
	s.metrics.hostSampleErr.Inc()
	s.log.Debug("host sample failed", zap.String("metric", what), zap.Error(err))
}
