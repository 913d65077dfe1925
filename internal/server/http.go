package server

import (
	"fmt"
	"regexp"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/rs/cors"

	"github.com/iWorld-y/report_generator/internal/conf"
	"github.com/iWorld-y/report_generator/internal/service"
)

const (
	// DefaultOriginPattern 仅允许本地开发环境跨域访问
	DefaultOriginPattern = `^.+(localhost:(1337|3000))$`

	// 未配置超时时使用，模型生成耗时较长，不能沿用 kratos 默认的 1s
	defaultTimeout = 2 * time.Minute
)

func NewHTTPServer(c *conf.Server, cc *conf.Cors, s *service.ReportService, logger log.Logger) (*http.Server, error) {
	filter, err := NewCORSFilter(cc)
	if err != nil {
		return nil, err
	}

	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
		http.Filter(filter),
	}
	timeout := defaultTimeout
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				timeout = d
			}
		}
	}
	opts = append(opts, http.Timeout(timeout))

	srv := http.NewServer(opts...)
	r := srv.Route("/")
	r.POST("/generate", s.Generate)

	return srv, nil
}

// NewCORSFilter 只对匹配 OriginPattern 的来源返回跨域响应头
func NewCORSFilter(c *conf.Cors) (http.FilterFunc, error) {
	pattern := DefaultOriginPattern
	methods := []string{"GET", "POST", "OPTIONS"}
	headers := []string{"Content-Type"}
	if c != nil {
		if c.OriginPattern != "" {
			pattern = c.OriginPattern
		}
		if len(c.AllowedMethods) > 0 {
			methods = c.AllowedMethods
		}
		if len(c.AllowedHeaders) > 0 {
			headers = c.AllowedHeaders
		}
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid cors origin pattern %q: %w", pattern, err)
	}

	return cors.New(cors.Options{
		AllowOriginFunc: re.MatchString,
		AllowedMethods:  methods,
		AllowedHeaders:  headers,
	}).Handler, nil
}
