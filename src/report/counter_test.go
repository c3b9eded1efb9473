package report

import (
	"context"
	"errors"
	"time"

	"github.com/tweets-stream/reporter/src/utils/config"
	"github.com/tweets-stream/reporter/src/utils/model"
)

// In-memory Counter, records the order of calls
type fakeCounter struct {
	rates  map[model.Source]int64
	totals map[model.Source]int64
	fail   map[model.Source]error
	calls  []string
}

func newFakeCounter() *fakeCounter {
	self := &fakeCounter{
		rates:  make(map[model.Source]int64),
		totals: make(map[model.Source]int64),
		fail:   make(map[model.Source]error),
	}
	for i, source := range model.Sources() {
		self.rates[source] = int64(i + 1)
		self.totals[source] = int64((i + 1) * 100)
	}
	return self
}

func (self *fakeCounter) CountRate(ctx context.Context, source model.Source) (int64, error) {
	self.calls = append(self.calls, "rate:"+source.String())
	if err, ok := self.fail[source]; ok {
		return 0, err
	}
	return self.rates[source], nil
}

func (self *fakeCounter) CountTotal(ctx context.Context, source model.Source) (int64, error) {
	self.calls = append(self.calls, "total:"+source.String())
	if err, ok := self.fail[source]; ok {
		return 0, err
	}
	return self.totals[source], nil
}

var errMissingTable = errors.New(`relation "tweets_stream_se" does not exist`)

func fixedClock() func() time.Time {
	t := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)
	return func() time.Time {
		t = t.Add(250 * time.Millisecond)
		return t
	}
}

func testConfig(dataDir, outputDir string) *config.Config {
	return &config.Config{
		LogLevel: "error",
		Database: config.Database{
			Host: "db.internal",
			Port: 5432,
			Name: "tweets",
		},
		Report: config.Report{
			DataDir:       dataDir,
			OutputFile:    outputDir + "/report_generated.html",
			HistoryLength: 48,
		},
	}
}
