package report

import (
	"context"
	"time"

	"github.com/tweets-stream/reporter/src/utils/config"
	"github.com/tweets-stream/reporter/src/utils/logger"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
)

type Controller struct {
	log *logrus.Entry

	generator *Generator
	appender  *Appender
	dashboard *Dashboard
	exporter  *Exporter
}

// Main class that orchestrates one run: query, append, render, export
func NewController(config *config.Config) (self *Controller) {
	self = new(Controller)

	// Every line logged during the run carries the same id
	self.log = logger.NewSublogger("controller").WithField("run", xid.New().String())

	self.generator = NewGenerator(config).
		WithLogger(self.log.WithField("stage", "generate"))

	self.appender = NewAppender(config).
		WithLogger(self.log.WithField("stage", "append"))

	self.dashboard = NewDashboard(config).
		WithHistory(self.appender).
		WithLogger(self.log.WithField("stage", "dashboard"))

	self.exporter = NewExporter(config).
		WithLogger(self.log.WithField("stage", "export"))

	return
}

func (self *Controller) WithCounter(counter Counter) *Controller {
	self.generator = self.generator.WithCounter(counter)
	return self
}

func (self *Controller) WithClock(now func() time.Time) *Controller {
	self.generator = self.generator.WithClock(now)
	self.dashboard = self.dashboard.WithClock(now)
	return self
}

// Run executes all stages in sequence. Rows that were reported are returned even when
// isolated sources failed.
func (self *Controller) Run(ctx context.Context) (rows []Row, err error) {
	start := time.Now()
	self.log.Info("Generating report")

	rows, sourceErr := self.generator.Generate(ctx)
	if sourceErr != nil && rows == nil {
		return nil, sourceErr
	}

	err = self.appender.AppendAll(rows)
	if err != nil {
		return
	}

	err = self.dashboard.Write(rows)
	if err != nil {
		return
	}

	err = self.exporter.Export(rows)
	if err != nil {
		return
	}

	if sourceErr != nil {
		self.log.WithError(sourceErr).Warn("Report generated without some sources")
		return rows, sourceErr
	}

	self.log.WithFields(logrus.Fields{
		"sources":  len(rows),
		"total":    TotalNum(rows),
		"duration": time.Since(start),
	}).Info("Report generated")
	return
}
