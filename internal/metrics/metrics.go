package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "examhub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "examhub_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	AnswersSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "examhub_answers_submitted_total",
			Help: "Student answers received, by outcome (inserted or duplicate)",
		},
		[]string{"outcome"},
	)

	AnswersGraded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "examhub_answers_graded_total",
			Help: "Student answers graded, by method and result",
		},
		[]string{"method", "result"},
	)

	GradesAggregated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "examhub_grades_aggregated_total",
			Help: "Exam grades computed from per-answer grades",
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter, RequestDuration, AnswersSubmitted, AnswersGraded, GradesAggregated)
	})
}

func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
