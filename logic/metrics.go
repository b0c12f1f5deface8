package logic

import (
	"github.com/prometheus/client_golang/prometheus"
)

type IMetrics interface {
	ServiceStarted()
	RunStarted()
	RunFailed()
	ItemSeen()
	ItemsSelected(count int)
	PostPublished()
	PublishFailure(kind string)
	CardBuilt()
	CardFailure()
	TranslationFailure()
}

type metrics struct {
	serviceStarted      prometheus.Counter
	runsStarted         prometheus.Counter
	runsFailed          prometheus.Counter
	itemsSeen           prometheus.Counter
	lastItemsSelected   prometheus.Gauge
	postsPublished      prometheus.Counter
	publishFailures     *prometheus.CounterVec
	cardsBuilt          prometheus.Counter
	cardFailures        prometheus.Counter
	translationFailures prometheus.Counter
}

func NewMetrics() IMetrics {

	res := metrics{}

	res.serviceStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "service_started",
		Help: "Service has started up",
	})
	prometheus.Register(res.serviceStarted)

	res.runsStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "runs_started",
		Help: "Number of posting runs started",
	})
	prometheus.Register(res.runsStarted)

	res.runsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "runs_failed",
		Help: "Number of posting runs that failed with a systemic error",
	})
	prometheus.Register(res.runsFailed)

	res.itemsSeen = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feed_items_seen",
		Help: "Number of feed items normalized",
	})
	prometheus.Register(res.itemsSeen)

	res.lastItemsSelected = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "last_run_items_selected",
		Help: "Items selected for posting in the most recent run",
	})
	prometheus.Register(res.lastItemsSelected)

	res.postsPublished = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "posts_published",
		Help: "Number of posts sent to the timeline",
	})
	prometheus.Register(res.postsPublished)

	res.publishFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "publish_failures",
		Help: "Number of failed publish attempts",
	}, []string{"kind"})
	prometheus.Register(res.publishFailures)

	res.cardsBuilt = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "link_cards_built",
		Help: "Number of link cards built from page metadata",
	})
	prometheus.Register(res.cardsBuilt)

	res.cardFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "link_card_failures",
		Help: "Number of link card fetches that yielded nothing",
	})
	prometheus.Register(res.cardFailures)

	res.translationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "translation_failures",
		Help: "Number of translation calls that degraded to the original text",
	})
	prometheus.Register(res.translationFailures)

	return &res
}

func (m *metrics) ServiceStarted() {
	m.serviceStarted.Inc()
}

func (m *metrics) RunStarted() {
	m.runsStarted.Inc()
}

func (m *metrics) RunFailed() {
	m.runsFailed.Inc()
}

func (m *metrics) ItemSeen() {
	m.itemsSeen.Inc()
}

func (m *metrics) ItemsSelected(count int) {
	m.lastItemsSelected.Set(float64(count))
}

func (m *metrics) PostPublished() {
	m.postsPublished.Inc()
}

func (m *metrics) PublishFailure(kind string) {
	m.publishFailures.WithLabelValues(kind).Inc()
}

func (m *metrics) CardBuilt() {
	m.cardsBuilt.Inc()
}

func (m *metrics) CardFailure() {
	m.cardFailures.Inc()
}

func (m *metrics) TranslationFailure() {
	m.translationFailures.Inc()
}
