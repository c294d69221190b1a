// Package metrics 提供 Prometheus 指标注册与 HTTP 暴露
package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 后台管理服务指标集合
type Metrics struct {
	registry *prometheus.Registry

	// HTTP 请求计数，按方法、路径、状态码
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTP 请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// 检索请求计数，按实体族
	SearchesTotal *prometheus.CounterVec
	// 状态迁移计数，按实体类型与结果
	StatusTransitionsTotal *prometheus.CounterVec
	// 级联删除计数，按根实体与结果
	CascadeDeletesTotal *prometheus.CounterVec
	// 级联删除耗时，按根实体
	CascadeDeleteDuration *prometheus.HistogramVec
}

// New 创建并注册指标实例
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobboard",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jobboard",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		SearchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobboard",
			Subsystem: serviceName,
			Name:      "searches_total",
			Help:      "Total admin search requests by entity family",
		}, []string{"family"}),
		StatusTransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobboard",
			Subsystem: serviceName,
			Name:      "status_transitions_total",
			Help:      "Total status transitions by entity and outcome",
		}, []string{"entity", "outcome"}),
		CascadeDeletesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobboard",
			Subsystem: serviceName,
			Name:      "cascade_deletes_total",
			Help:      "Total cascade deletes by root entity and outcome",
		}, []string{"entity", "outcome"}),
		CascadeDeleteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jobboard",
			Subsystem: serviceName,
			Name:      "cascade_delete_duration_seconds",
			Help:      "Cascade delete duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"entity"}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SearchesTotal,
		m.StatusTransitionsTotal,
		m.CascadeDeletesTotal,
		m.CascadeDeleteDuration,
	)
	return m
}

// ObserveCascadeDelete 记录一次级联删除的结果与耗时
func (m *Metrics) ObserveCascadeDelete(entity string, duration time.Duration, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "failed"
	}
	m.CascadeDeletesTotal.WithLabelValues(entity, outcome).Inc()
	m.CascadeDeleteDuration.WithLabelValues(entity).Observe(duration.Seconds())
}

// Handler 返回 /metrics 的 gin 处理函数
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
