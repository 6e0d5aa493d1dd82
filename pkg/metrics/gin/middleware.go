package gin

import (
	"strconv"
	"time"

	"github.com/RigelNana/arkstudy/services/admin-service/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// UnmatchedRoute 没有匹配到路由的请求使用的标签
const UnmatchedRoute = "unmatched"

type options struct {
	skip map[string]bool
}

type Option func(*options)

// WithSkipPaths 这些路由模板不计入指标，例如探活的健康检查
func WithSkipPaths(paths ...string) Option {
	return func(o *options) {
		for _, p := range paths {
			o.skip[p] = true
		}
	}
}

// RouteLabel 返回路由模板（/api/boards/:id），而不是实际路径
func RouteLabel(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return UnmatchedRoute
}

// PrometheusMiddleware 记录请求数、耗时和正在处理的请求数
func PrometheusMiddleware(serviceName string, opts ...Option) gin.HandlerFunc {
	o := &options{skip: map[string]bool{}}
	for _, opt := range opts {
		opt(o)
	}
	inFlight := metrics.RequestsInFlight.WithLabelValues(serviceName)

	return func(c *gin.Context) {
		route := RouteLabel(c)
		if o.skip[route] {
			c.Next()
			return
		}

		inFlight.Inc()
		start := time.Now()
		defer func() {
			inFlight.Dec()
			status := strconv.Itoa(c.Writer.Status())
			metrics.RecordRequest(serviceName, c.Request.Method+" "+route, status, time.Since(start))
		}()
		c.Next()
	}
}
