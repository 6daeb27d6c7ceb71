// Package testsuite provides the shared fixtures of the package test suites: a logger writing to
// the Ginkgo output and a private metrics registry.
package testsuite

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap/zapcore"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/l7mp/rxcollections/pkg/metrics"
)

type Suite struct {
	Timeout, Interval time.Duration
	LogLevel          int
	Registry          *prometheus.Registry
	Metrics           *metrics.Metrics
	Ctx               context.Context
	Cancel            context.CancelFunc
	Log               logr.Logger
}

// New creates a suite logging up to verbosity loglevel.
func New(loglevel int) *Suite {
	s := &Suite{
		Timeout:  time.Second * 5,
		Interval: time.Millisecond * 50,
		LogLevel: loglevel,
		Registry: prometheus.NewRegistry(),
		Metrics:  metrics.New(),
	}

	opts := zap.Options{
		Development:     true,
		DestWriter:      GinkgoWriter,
		StacktraceLevel: zapcore.Level(4),
		TimeEncoder:     TimestampEncoder,
		Level:           zapcore.Level(-loglevel), //nolint:gosec
	}
	s.Log = zap.New(zap.UseFlagOptions(&opts))
	s.Registry.MustRegister(s.Metrics.Collectors()...)
	s.Ctx, s.Cancel = context.WithCancel(context.Background())

	return s
}

func (s *Suite) Close() {
	s.Cancel()
}

func TimestampEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format(time.RFC3339Nano))
}
