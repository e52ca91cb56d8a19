// Package metrics exports per-frame renderer statistics to Prometheus.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"

	"github.com/Faultbox/dreaming/internal/engine/batch"
	"github.com/Faultbox/dreaming/internal/logger"
)

const namespace = "dreaming"

// Frame holds the frame loop metrics.
type Frame struct {
	frameSeconds prometheus.Histogram
	batches      prometheus.Gauge
	instances    prometheus.Gauge
	drawCalls    prometheus.Counter
	rssBytes     prometheus.Gauge
	cpuPercent   prometheus.Gauge
}

// New creates the frame metrics and registers them with reg.
func New(reg prometheus.Registerer) (*Frame, error) {
	f := &Frame{
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_seconds",
			Help:      "Elapsed time per frame.",
			Buckets:   []float64{0.004, 0.008, 0.016, 0.033, 0.05, 0.1, 0.25},
		}),
		batches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "batches",
			Help:      "Distinct resources drawn in the last frame.",
		}),
		instances: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "instances",
			Help:      "Entity instances drawn in the last frame.",
		}),
		drawCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draw_calls_total",
			Help:      "Draw calls issued since start.",
		}),
		rssBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_rss_bytes",
			Help:      "Resident set size of the viewer process.",
		}),
		cpuPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_cpu_percent",
			Help:      "CPU usage of the viewer process.",
		}),
	}

	for _, c := range []prometheus.Collector{
		f.frameSeconds, f.batches, f.instances, f.drawCalls, f.rssBytes, f.cpuPercent,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}
	}
	return f, nil
}

// Observe records one frame.
func (f *Frame) Observe(dt float32, stats batch.Stats, drawCalls int) {
	f.frameSeconds.Observe(float64(dt))
	f.batches.Set(float64(stats.Batches))
	f.instances.Set(float64(stats.Instances))
	f.drawCalls.Add(float64(drawCalls))
}

// SampleProcess updates the process gauges every interval until ctx is done.
func (f *Frame) SampleProcess(ctx context.Context, interval time.Duration) error {
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return fmt.Errorf("inspecting process: %w", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := f.sample(ctx, proc); err != nil {
			logger.Named("metrics").Debug("process sample failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (f *Frame) sample(ctx context.Context, proc *process.Process) error {
	mem, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return err
	}
	f.rssBytes.Set(float64(mem.RSS))

	cpu, err := proc.CPUPercentWithContext(ctx)
	if err != nil {
		return err
	}
	f.cpuPercent.Set(cpu)
	return nil
}

// ListenAndServe serves /metrics on addr until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, g prometheus.Gatherer) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listen: %w", err)
	}
	return Serve(ctx, ln, g)
}

// Serve serves /metrics on ln until ctx is cancelled. It closes ln.
func Serve(ctx context.Context, ln net.Listener, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Named("metrics").Info("endpoint listening", zap.String("addr", ln.Addr().String()))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
