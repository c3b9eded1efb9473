package config

import (
	"github.com/spf13/viper"
)

type Report struct {
	// Directory with per-source CSV files
	DataDir string

	// Rendered dashboard, overwritten on every run
	OutputFile string

	// Optional dashboard template. Embedded template is used if empty
	TemplatePath string

	// Number of past runs plotted on the dashboard. 0 disables the chart
	HistoryLength int

	// Optional Prometheus textfile with the per-source counters
	MetricsFile string

	// Report remaining sources if one of them fails. The run still fails
	IsolateSources bool
}

func setReportDefaults(v *viper.Viper) {
	v.SetDefault("Report.OutputFile", "report_generated.html")
	v.SetDefault("Report.HistoryLength", "48")
	v.SetDefault("Report.IsolateSources", "false")
}
