package health

import (
	"bytes"
	"runtime"
	"time"
)

// RenderFunc produces a page; the checker treats an empty result or a panic as unhealthy.
type RenderFunc func() []byte

type HealthChecker struct {
	render  RenderFunc
	marker  []byte
	started time.Time
}

type HealthStatus struct {
	Status     string      `json:"status"`
	Pages      PageHealth  `json:"pages"`
	Uptime     string      `json:"uptime"`
	Goroutines int         `json:"goroutines"`
	Memory     MemoryStats `json:"memory"`
}

type MemoryStats struct {
	AllocMB      float64 `json:"alloc_mb"`
	TotalAllocMB float64 `json:"total_alloc_mb"`
	SysMB        float64 `json:"sys_mb"`
	NumGC        uint32  `json:"num_gc"`
}

type PageHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_us"`
}

// NewHealthChecker checks that render output contains marker
func NewHealthChecker(render RenderFunc, marker string) *HealthChecker {
	return &HealthChecker{render: render, marker: []byte(marker), started: time.Now()}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	pages := h.checkPages()

	status := "healthy"
	if pages.Status != "healthy" {
		status = "unhealthy"
	}

	// Get runtime stats for goroutine leak detection
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return HealthStatus{
		Status:     status,
		Pages:      pages,
		Uptime:     time.Since(h.started).Truncate(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
		Memory: MemoryStats{
			AllocMB:      float64(memStats.Alloc) / 1024 / 1024,
			TotalAllocMB: float64(memStats.TotalAlloc) / 1024 / 1024,
			SysMB:        float64(memStats.Sys) / 1024 / 1024,
			NumGC:        memStats.NumGC,
		},
	}
}

func (h *HealthChecker) checkPages() (ph PageHealth) {
	start := time.Now()
	defer func() {
		ph.ResponseTime = time.Since(start).Microseconds()
		if recover() != nil {
			ph.Status = "unhealthy"
		}
	}()

	out := h.render()
	if len(out) == 0 || !bytes.Contains(out, h.marker) {
		return PageHealth{Status: "unhealthy"}
	}
	return PageHealth{Status: "healthy"}
}
