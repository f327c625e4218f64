package server

import (
	"context"
	"log/slog"
	"time"
)

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}

// Pinger is implemented by backends that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingHealthChecker is healthy while its backend answers a ping within the
// timeout.
type PingHealthChecker struct {
	name    string
	pinger  Pinger
	timeout time.Duration
}

func NewPingHealthChecker(name string, p Pinger, timeout time.Duration) *PingHealthChecker {
	return &PingHealthChecker{name: name, pinger: p, timeout: timeout}
}

func (hc *PingHealthChecker) Healthy(ctx context.Context) bool {
	if hc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, hc.timeout)
		defer cancel()
	}

	if err := hc.pinger.Ping(ctx); err != nil {
		slog.Warn("health check failed", "backend", hc.name, "error", err)
		return false
	}
	return true
}
