package report

import (
	"github.com/tweets-stream/reporter/src/utils/config"
	"github.com/tweets-stream/reporter/src/utils/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Writes counters in the Prometheus text format, for the node_exporter textfile collector
type Exporter struct {
	log  *logrus.Entry
	path string
}

func NewExporter(config *config.Config) (self *Exporter) {
	self = new(Exporter)
	self.log = logger.NewSublogger("exporter")
	self.path = config.Report.MetricsFile
	return
}

func (self *Exporter) WithLogger(log *logrus.Entry) *Exporter {
	self.log = log
	return self
}

func (self *Exporter) IsEnabled() bool {
	return self.path != ""
}

func (self *Exporter) Export(rows []Row) (err error) {
	if !self.IsEnabled() {
		return
	}

	registry := prometheus.NewRegistry()
	err = registry.Register(NewCollector().WithRows(rows))
	if err != nil {
		return NewError(KindIO, "", err)
	}

	// Writes a temporary file and renames it
	err = prometheus.WriteToTextfile(self.path, registry)
	if err != nil {
		return NewError(KindIO, "", err)
	}

	self.log.WithField("path", self.path).Debug("Counters exported")
	return
}
