// Package metrics 提供 Prometheus helper，包含常用 counter/gauge/histogram 模板
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wyfcoding/foodordering/pkg/logger"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal prometheus.Counter
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram
	// HTTP 响应大小
	HTTPResponseSize prometheus.Histogram
	// 下单计数
	OrdersPlacedTotal prometheus.Counter
	// 注册用户计数
	SignupsTotal prometheus.Counter

	dbConnections prometheus.GaugeFunc
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "foodordering",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "foodordering",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		HTTPResponseSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "foodordering",
			Subsystem: serviceName,
			Name:      "http_response_size_bytes",
			Help:      "HTTP response size in bytes",
			Buckets:   []float64{100, 1000, 10000, 100000, 1000000},
		}),
		OrdersPlacedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "foodordering",
			Subsystem: serviceName,
			Name:      "orders_placed_total",
			Help:      "Total orders placed",
		}),
		SignupsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "foodordering",
			Subsystem: serviceName,
			Name:      "signups_total",
			Help:      "Total user signups",
		}),
	}
}

// SetDBStatsFunc 注册数据库在用连接数的拉取式 gauge
func (m *Metrics) SetDBStatsFunc(serviceName string, inUse func() int) {
	m.dbConnections = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "foodordering",
		Subsystem: serviceName,
		Name:      "db_connections_in_use",
		Help:      "Number of database connections currently in use",
	}, func() float64 { return float64(inUse()) })
}

// Register 注册所有指标
func (m *Metrics) Register() error {
	collectors := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPResponseSize,
		m.OrdersPlacedTotal,
		m.SignupsTotal,
	}
	if m.dbConnections != nil {
		collectors = append(collectors, m.dbConnections)
	}
	for _, c := range collectors {
		if err := prometheus.Register(c); err != nil {
			return fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return nil
}

// StartHTTPServer 在独立端口上启动 Prometheus 指标服务
func StartHTTPServer(port int, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())

	go func() {
		addr := fmt.Sprintf(":%d", port)
		logger.Info(context.Background(), "Starting metrics HTTP server", "addr", addr, "path", path)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error(context.Background(), "Metrics HTTP server error", "error", err)
		}
	}()

	return nil
}
