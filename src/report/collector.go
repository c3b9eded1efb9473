package report

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Exposes counters of a single run
type Collector struct {
	rows []Row

	Total    *prometheus.Desc
	LastHour *prometheus.Desc
}

func NewCollector() *Collector {
	labels := prometheus.Labels{
		"app": "reporter",
	}

	return &Collector{
		Total:    prometheus.NewDesc("tweets_stream_rows", "Rows in the stream table", []string{"source"}, labels),
		LastHour: prometheus.NewDesc("tweets_stream_rows_last_hour", "Rows inserted during the last hour", []string{"source"}, labels),
	}
}

func (self *Collector) WithRows(rows []Row) *Collector {
	self.rows = rows
	return self
}

func (self *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- self.Total
	ch <- self.LastHour
}

func (self *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, row := range self.rows {
		ch <- prometheus.MustNewConstMetric(self.Total, prometheus.GaugeValue, float64(row.Total.Value), row.Name.String())
		ch <- prometheus.MustNewConstMetric(self.LastHour, prometheus.GaugeValue, float64(row.CurrRate.Value), row.Name.String())
	}
}
