package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tweets-stream/reporter/src/utils/config"
	"github.com/tweets-stream/reporter/src/utils/model"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestDashboardTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardTestSuite))
}

type DashboardTestSuite struct {
	suite.Suite
	config *config.Config
	rows   []Row
}

type staticHistory map[model.Source][]float64

func (self staticHistory) History(source model.Source, n int) ([]float64, error) {
	return self[source], nil
}

type brokenHistory struct{}

func (brokenHistory) History(source model.Source, n int) ([]float64, error) {
	return nil, errors.New("broken")
}

func (s *DashboardTestSuite) SetupTest() {
	s.config = testConfig(s.T().TempDir(), s.T().TempDir())

	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)
	s.rows = nil
	for i, source := range model.Sources() {
		s.rows = append(s.rows, Row{
			Name:     source,
			CurrRate: Measurement{Value: int64(i), Time: at},
			Total:    Measurement{Value: int64(i) * 1000, Time: at},
		})
	}
}

func (s *DashboardTestSuite) dashboard() *Dashboard {
	return NewDashboard(s.config).WithClock(func() time.Time {
		return time.Date(2024, 3, 1, 10, 5, 9, 0, time.Local)
	})
}

func (s *DashboardTestSuite) TestTotalNum() {
	require.Equal(s.T(), int64(21000), TotalNum(s.rows))
	require.Equal(s.T(), int64(0), TotalNum(nil))

	s.rows[6].Total.Value = 1 << 40
	require.Equal(s.T(), int64(15000+1<<40), TotalNum(s.rows))
}

func (s *DashboardTestSuite) TestData() {
	data := s.dashboard().Data(s.rows)

	require.Equal(s.T(), "2024-03-01 10:05:09", data["generated_time"])
	require.Equal(s.T(), "db.internal", data["host"])
	require.Equal(s.T(), "tweets", data["db_name"])
	require.Equal(s.T(), "21000", data["total_num"])

	reports := data["reports"].([]map[string]any)
	require.Len(s.T(), reports, 7)
	require.Equal(s.T(), "tweets_stream_ne_ii", reports[1]["name"])
	require.Equal(s.T(), int64(1000), reports[1]["total"].(map[string]any)["value"])
	require.Equal(s.T(), "2024-03-01 10:00:00.000000", reports[1]["curr_rate"].(map[string]any)["time"])
}

func (s *DashboardTestSuite) TestRender() {
	var buf bytes.Buffer
	err := s.dashboard().Render(&buf, s.rows)
	require.Nil(s.T(), err)

	html := buf.String()
	require.Contains(s.T(), html, "Generated 2024-03-01 10:05:09")
	require.Contains(s.T(), html, "Total tweets: 21000")
	require.Contains(s.T(), html, ">6,000</td>")

	// Rows keep their order
	last := -1
	for _, source := range model.Sources() {
		idx := strings.Index(html, "<td>"+source.String()+"</td>")
		require.Greater(s.T(), idx, last)
		last = idx
	}
}

func (s *DashboardTestSuite) TestHistoryChart() {
	history := staticHistory{model.SourceNeI: {1, 5, 3, 8}}

	var buf bytes.Buffer
	err := s.dashboard().WithHistory(history).Render(&buf, s.rows)
	require.Nil(s.T(), err)
	require.Equal(s.T(), 1, strings.Count(buf.String(), "<pre>"))
	require.Contains(s.T(), buf.String(), "last 4 runs")
}

func (s *DashboardTestSuite) TestHistoryDisabled() {
	s.config.Report.HistoryLength = 0
	history := staticHistory{model.SourceNeI: {1, 5, 3, 8}}

	data := s.dashboard().WithHistory(history).Data(s.rows)
	require.Empty(s.T(), data["reports"].([]map[string]any)[0]["history"])
}

func (s *DashboardTestSuite) TestBrokenHistoryDoesNotFail() {
	var buf bytes.Buffer
	err := s.dashboard().WithHistory(brokenHistory{}).Render(&buf, s.rows)
	require.Nil(s.T(), err)
	require.NotContains(s.T(), buf.String(), "<pre>")
}

func (s *DashboardTestSuite) TestWriteOverwrites() {
	err := os.WriteFile(s.config.Report.OutputFile, []byte(strings.Repeat("stale ", 10000)), 0o644)
	require.Nil(s.T(), err)

	err = s.dashboard().Write(s.rows)
	require.Nil(s.T(), err)

	content, err := os.ReadFile(s.config.Report.OutputFile)
	require.Nil(s.T(), err)
	require.NotContains(s.T(), string(content), "stale")
	require.True(s.T(), strings.HasPrefix(string(content), "<!DOCTYPE html>"))
}

func (s *DashboardTestSuite) TestCustomTemplate() {
	path := filepath.Join(s.T().TempDir(), "custom.html")
	err := os.WriteFile(path, []byte(`{{.host}}/{{.db_name}}={{.total_num}}{{range .reports}};{{.name}}:{{.curr_rate.value}}{{end}}`), 0o644)
	require.Nil(s.T(), err)
	s.config.Report.TemplatePath = path

	var buf bytes.Buffer
	err = s.dashboard().Render(&buf, s.rows[:2])
	require.Nil(s.T(), err)
	require.Equal(s.T(), "db.internal/tweets=1000;tweets_stream_ne_i:0;tweets_stream_ne_ii:1", buf.String())
}

func (s *DashboardTestSuite) TestMissingTemplate() {
	s.config.Report.TemplatePath = filepath.Join(s.T().TempDir(), "missing.html")

	err := s.dashboard().Write(s.rows)
	require.Equal(s.T(), KindIO, KindOf(err))
	require.NoFileExists(s.T(), s.config.Report.OutputFile)
}
