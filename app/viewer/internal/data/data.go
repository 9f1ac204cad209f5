package data

import (
	"net/http"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/conf"
	"golang.org/x/time/rate"
)

// Data 后端协作方的连接资源
type Data struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewData 根据配置创建 HTTP 客户端与出站限流器
func NewData(c *conf.Backend, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)

	// Timeout 为 0 时不设超时，超时策略完全交给传输层配置
	client := &http.Client{Timeout: c.TimeoutDuration()}

	limit := rate.Inf
	burst := 1
	if cc := c.Concurrency; cc != nil {
		if cc.RPM > 0 {
			limit = rate.Limit(float64(cc.RPM) / 60.0)
		}
		if cc.QPS > 0 {
			burst = cc.QPS
		}
	}
	helper.Infof("report backend %s (limit=%.2f req/s, burst=%d)", c.NormalizedBaseURL(), float64(limit), burst)

	cleanup := func() {
		helper.Info("closing the report backend connections")
		client.CloseIdleConnections()
	}
	return &Data{
		baseURL: c.NormalizedBaseURL(),
		client:  client,
		limiter: rate.NewLimiter(limit, burst),
	}, cleanup, nil
}
