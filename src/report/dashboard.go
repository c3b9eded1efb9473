package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tweets-stream/reporter/src/utils/config"
	"github.com/tweets-stream/reporter/src/utils/logger"
	"github.com/tweets-stream/reporter/src/utils/model"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
)

const GeneratedTimeLayout = "2006-01-02 15:04:05"

//go:embed templates/dash.html
var defaultTemplate string

// Source of past values plotted next to each stream
type HistoryReader interface {
	History(source model.Source, n int) ([]float64, error)
}

// Renders the static status page
type Dashboard struct {
	log     *logrus.Entry
	config  *config.Config
	history HistoryReader
	now     func() time.Time
}

func NewDashboard(config *config.Config) (self *Dashboard) {
	self = new(Dashboard)
	self.log = logger.NewSublogger("dashboard")
	self.config = config
	self.now = time.Now
	return
}

func (self *Dashboard) WithHistory(history HistoryReader) *Dashboard {
	self.history = history
	return self
}

func (self *Dashboard) WithClock(now func() time.Time) *Dashboard {
	self.now = now
	return self
}

func (self *Dashboard) WithLogger(log *logrus.Entry) *Dashboard {
	self.log = log
	return self
}

var funcs = template.FuncMap{
	"comma": func(v any) string {
		switch n := v.(type) {
		case int64:
			return humanize.Comma(n)
		case int:
			return humanize.Comma(int64(n))
		default:
			return fmt.Sprint(v)
		}
	},
}

func (self *Dashboard) template() (tmpl *template.Template, err error) {
	path := self.config.Report.TemplatePath
	if path == "" {
		return template.New("dash.html").Funcs(funcs).Parse(defaultTemplate)
	}
	return template.New(filepath.Base(path)).Funcs(funcs).ParseFiles(path)
}

func (self *Dashboard) chart(source model.Source) string {
	if self.history == nil || self.config.Report.HistoryLength <= 0 {
		return ""
	}

	data, err := self.history.History(source, self.config.Report.HistoryLength)
	if err != nil {
		// Chart is optional, the page is still rendered
		self.log.WithError(err).WithField("source", source).Warn("Failed to read history")
		return ""
	}
	if len(data) < 2 {
		return ""
	}

	return asciigraph.Plot(data,
		asciigraph.Height(5),
		asciigraph.Caption(fmt.Sprintf("last %d runs", len(data))),
	)
}

// Data passed to the template
func (self *Dashboard) Data(rows []Row) map[string]any {
	reports := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, map[string]any{
			"name": row.Name.String(),
			"curr_rate": map[string]any{
				"value": row.CurrRate.Value,
				"time":  row.CurrRate.FormattedTime(),
			},
			"total": map[string]any{
				"value": row.Total.Value,
				"time":  row.Total.FormattedTime(),
			},
			"history": self.chart(row.Name),
		})
	}

	return map[string]any{
		"generated_time": self.now().Format(GeneratedTimeLayout),
		"host":           self.config.Database.Host,
		"db_name":        self.config.Database.Name,
		"total_num":      strconv.FormatInt(TotalNum(rows), 10),
		"reports":        reports,
	}
}

func (self *Dashboard) Render(w io.Writer, rows []Row) (err error) {
	tmpl, err := self.template()
	if err != nil {
		return NewError(KindIO, "", err)
	}

	err = tmpl.Execute(w, self.Data(rows))
	if err != nil {
		return NewError(KindIO, "", err)
	}
	return
}

// Write replaces the output file
func (self *Dashboard) Write(rows []Row) (err error) {
	path := self.config.Report.OutputFile

	// Parse before truncating the previous page
	tmpl, err := self.template()
	if err != nil {
		return NewError(KindIO, "", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return NewError(KindIO, "", err)
	}
	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = NewError(KindIO, "", closeErr)
		}
	}()

	err = tmpl.Execute(f, self.Data(rows))
	if err != nil {
		return NewError(KindIO, "", err)
	}

	self.log.WithField("path", path).Info("Dashboard written")
	return
}
