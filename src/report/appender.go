package report

import (
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tweets-stream/reporter/src/utils/config"
	"github.com/tweets-stream/reporter/src/utils/logger"
	"github.com/tweets-stream/reporter/src/utils/model"

	"github.com/sirupsen/logrus"
)

var Header = []string{"total", "curr_rate", "total_time", "rate_time"}

// Appends rows to per-source CSV files. Files are never truncated.
type Appender struct {
	log     *logrus.Entry
	dataDir string
}

func NewAppender(config *config.Config) (self *Appender) {
	self = new(Appender)
	self.log = logger.NewSublogger("appender")
	self.dataDir = config.Report.DataDir
	return
}

func (self *Appender) WithLogger(log *logrus.Entry) *Appender {
	self.log = log
	return self
}

func (self *Appender) Path(source model.Source) string {
	return filepath.Join(self.dataDir, source.FileName())
}

// Writes rows in order, stops on the first failure
func (self *Appender) AppendAll(rows []Row) (err error) {
	for _, row := range rows {
		err = self.Append(row)
		if err != nil {
			return
		}
	}
	return
}

// Append writes one line. Header goes first if the file is created by this call.
func (self *Appender) Append(row Row) (err error) {
	path := self.Path(row.Name)

	created := true
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		created = false
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	}
	if err != nil {
		return NewError(KindIO, row.Name, err)
	}
	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = NewError(KindIO, row.Name, closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if created {
		self.log.WithField("path", path).Info("Created data file")
		_ = w.Write(Header)
	}
	_ = w.Write(row.Record())
	w.Flush()

	err = w.Error()
	if err != nil {
		return NewError(KindIO, row.Name, err)
	}
	return
}

// History returns up to n most recent curr_rate values of the source, oldest first.
// Missing file means there's no history yet.
func (self *Appender) History(source model.Source, n int) (out []float64, err error) {
	if n <= 0 {
		return
	}

	f, err := os.Open(self.Path(source))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, NewError(KindIO, source, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(Header)
	r.ReuseRecord = true

	out = make([]float64, 0, n)
	for first := true; ; first = false {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, NewError(KindIO, source, err)
		}
		if first && record[0] == Header[0] {
			continue
		}

		value, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, NewError(KindIO, source, err)
		}

		if len(out) == n {
			copy(out, out[1:])
			out = out[:n-1]
		}
		out = append(out, value)
	}

	return out, nil
}
