package server

import (
	"embed"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/conf"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/service"
)

//go:embed assets/*
var assets embed.FS

func NewHTTPServer(c *conf.Server, s *service.ViewerService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
		http.Filter(accessLog(log.NewHelper(logger))),
	}
	if c.Http.Addr != "" {
		opts = append(opts, http.Address(c.Http.Addr))
	}
	if c.Http.Timeout != "" {
		if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)

	// 页面与表单
	srv.HandleFunc("/", s.Index)
	srv.HandleFunc("/select", s.SelectForm)
	srv.HandleFunc("/upload", s.UploadForm)
	srv.HandleFunc("/healthz", s.Healthz)
	srv.HandlePrefix("/assets/", nethttp.FileServer(nethttp.FS(assets)))

	// JSON 接口
	r := srv.Route("/v1")
	r.GET("/page", s.GetPage)
	r.POST("/reports/{id}/select", s.SelectReport)
	r.POST("/upload", s.UploadReport)
	r.GET("/notifications", s.ListNotifications)

	return srv
}

type statusRecorder struct {
	nethttp.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// accessLog 记录每个请求的方法、路径、状态码与耗时
func accessLog(h *log.Helper) http.FilterFunc {
	return func(next nethttp.Handler) nethttp.Handler {
		return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: nethttp.StatusOK}
			next.ServeHTTP(rec, r)
			h.Infow(
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"latency", time.Since(start).String(),
			)
		})
	}
}
