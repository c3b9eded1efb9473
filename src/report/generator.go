package report

import (
	"context"
	"errors"
	"time"

	"github.com/tweets-stream/reporter/src/utils/config"
	"github.com/tweets-stream/reporter/src/utils/logger"
	"github.com/tweets-stream/reporter/src/utils/model"

	"github.com/sirupsen/logrus"
)

// Queries counters of every source, one source after another
type Generator struct {
	log     *logrus.Entry
	counter Counter
	isolate bool
	now     func() time.Time
}

func NewGenerator(config *config.Config) (self *Generator) {
	self = new(Generator)
	self.log = logger.NewSublogger("generator")
	self.isolate = config.Report.IsolateSources
	self.now = time.Now
	return
}

func (self *Generator) WithCounter(counter Counter) *Generator {
	self.counter = counter
	return self
}

func (self *Generator) WithClock(now func() time.Time) *Generator {
	self.now = now
	return self
}

func (self *Generator) WithLogger(log *logrus.Entry) *Generator {
	self.log = log
	return self
}

// Rows inserted during the last hour
func (self *Generator) CurrentRate(ctx context.Context, source model.Source) (out Measurement, err error) {
	out.Value, err = self.counter.CountRate(ctx, source)
	if err != nil {
		return out, NewError(KindQuery, source, err)
	}
	out.Time = self.now()
	return
}

// All rows ever inserted
func (self *Generator) LifetimeTotal(ctx context.Context, source model.Source) (out Measurement, err error) {
	out.Value, err = self.counter.CountTotal(ctx, source)
	if err != nil {
		return out, NewError(KindQuery, source, err)
	}
	out.Time = self.now()
	return
}

func (self *Generator) row(ctx context.Context, source model.Source) (row Row, err error) {
	row.Name = source

	row.CurrRate, err = self.CurrentRate(ctx, source)
	if err != nil {
		return
	}

	row.Total, err = self.LifetimeTotal(ctx, source)
	return
}

// Generate returns one row per source, in the order of model.Sources().
// The first failure aborts, unless sources are isolated. Then failed sources are skipped
// and all errors are returned along with the rows that succeeded.
func (self *Generator) Generate(ctx context.Context) (rows []Row, err error) {
	var errs []error
	for _, source := range model.Sources() {
		row, err := self.row(ctx, source)
		if err != nil {
			if !self.isolate || ctx.Err() != nil {
				return nil, err
			}
			self.log.WithError(err).WithField("source", source).Error("Skipping source")
			errs = append(errs, err)
			continue
		}

		self.log.WithFields(logrus.Fields{
			"source": source,
			"rate":   row.CurrRate.Value,
			"total":  row.Total.Value,
		}).Debug("Counted")

		rows = append(rows, row)
	}

	return rows, errors.Join(errs...)
}
