package api

import (
	"net/http"

	"github.com/LJTian/NewsPulse/internal/fetch"
	"github.com/LJTian/NewsPulse/internal/render"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server 持有各个源的 Fetcher，按名字路由
type Server struct {
	fetchers map[string]*fetch.Fetcher
	log      *zap.SugaredLogger
}

func NewServer(fetchers []*fetch.Fetcher, log *zap.SugaredLogger) *Server {
	m := make(map[string]*fetch.Fetcher, len(fetchers))
	for _, f := range fetchers {
		m[f.Name()] = f
	}
	return &Server{fetchers: m, log: log}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/feeds/:name", s.getFeed)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// getFeed 编码参数在这里解析成枚举，核心管道不接触原始字符串。
// 抓取失败且无缓存可兜底时返回 502，错误细节只进日志不进响应体
func (s *Server) getFeed(c *gin.Context) {
	f, ok := s.fetchers[c.Param("name")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "unknown_feed",
			"message": "unknown feed",
		})
		return
	}
	enc := render.ParseEncoding(c.DefaultQuery("encoding", "json"))

	fd, err := f.Fetch()
	if err != nil {
		if fetch.IsFetchFailure(err) {
			c.JSON(http.StatusBadGateway, gin.H{
				"code":    "upstream_error",
				"message": "upstream fetch failed",
			})
			return
		}
		s.log.Errorw("fetch failed", "feed", f.Name(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	out, err := render.Render(fd, enc)
	if err != nil {
		s.log.Errorw("render failed", "feed", f.Name(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	if enc == render.EncodingText {
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(out))
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(out))
}
