// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層とミドルウェアから利用する。
type MetricsCollector interface {
	RecordPurchase()
	RecordPurchaseConflict()
	RecordReview(rating int)
	RecordReviewRejected(code string)
	RecordHTTPStatus(statusCode int)
	RecordRequestDuration(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	purchases        prometheus.Counter
	purchaseConflict prometheus.Counter
	reviews          *prometheus.CounterVec
	reviewRejected   *prometheus.CounterVec
	httpStatus       *prometheus.CounterVec
	requestDuration  prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		purchases: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamestore_purchases_total",
			Help: "購入成功の合計数",
		}),
		purchaseConflict: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamestore_purchase_conflict_total",
			Help: "重複購入として拒否されたリクエストの合計数",
		}),
		reviews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamestore_reviews_total",
			Help: "投稿されたレビューの評価値別合計数",
		}, []string{"rating"}),
		reviewRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamestore_review_rejected_total",
			Help: "拒否されたレビュー投稿のエラーコード別合計数",
		}, []string{"code"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamestore_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gamestore_request_duration_seconds",
			Help:    "HTTPリクエスト処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.purchases,
		c.purchaseConflict,
		c.reviews,
		c.reviewRejected,
		c.httpStatus,
		c.requestDuration,
	)

	return c
}

// RecordPurchase は購入成功を記録する。
func (c *Collector) RecordPurchase() {
	c.purchases.Inc()
}

// RecordPurchaseConflict は重複購入の拒否を記録する。
func (c *Collector) RecordPurchaseConflict() {
	c.purchaseConflict.Inc()
}

// RecordReview はレビュー投稿成功を評価値別に記録する。
func (c *Collector) RecordReview(rating int) {
	c.reviews.WithLabelValues(strconv.Itoa(rating)).Inc()
}

// RecordReviewRejected はレビュー投稿の拒否をエラーコード別に記録する。
func (c *Collector) RecordReviewRejected(code string) {
	c.reviewRejected.WithLabelValues(code).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestDuration はリクエスト処理時間を記録する。
func (c *Collector) RecordRequestDuration(duration time.Duration) {
	c.requestDuration.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ MetricsCollector = (*Collector)(nil)
