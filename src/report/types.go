package report

import (
	"context"
	"strconv"
	"time"

	"github.com/tweets-stream/reporter/src/utils/model"
)

// Layout of the timestamps stored in CSV files
const TimeLayout = "2006-01-02 15:04:05.000000"

// Counts rows of a stream table
type Counter interface {
	// Rows inserted within the trailing hour, relative to the database clock
	CountRate(ctx context.Context, source model.Source) (int64, error)

	// All rows
	CountTotal(ctx context.Context, source model.Source) (int64, error)
}

// Value of a counter and the moment it was computed
type Measurement struct {
	Value int64
	Time  time.Time
}

func (self Measurement) FormattedTime() string {
	return self.Time.Format(TimeLayout)
}

type Row struct {
	Name     model.Source
	CurrRate Measurement
	Total    Measurement
}

// CSV projection, the column order follows the file header
func (self Row) Record() []string {
	return []string{
		strconv.FormatInt(self.Total.Value, 10),
		strconv.FormatInt(self.CurrRate.Value, 10),
		self.CurrRate.FormattedTime(),
		self.Total.FormattedTime(),
	}
}

// Sum of lifetime totals of all rows
func TotalNum(rows []Row) (sum int64) {
	for _, row := range rows {
		sum += row.Total.Value
	}
	return
}
