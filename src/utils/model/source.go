package model

// Tweet stream that is reported on. Doubles as the table name and the CSV file basename.
type Source string

const (
	SourceNeI   Source = "tweets_stream_ne_i"
	SourceNeII  Source = "tweets_stream_ne_ii"
	SourceNwI   Source = "tweets_stream_nw_i"
	SourceNwII  Source = "tweets_stream_nw_ii"
	SourceSe    Source = "tweets_stream_se"
	SourceNwIII Source = "tweets_stream_nw_iii"
	SourceSw    Source = "tweets_stream_sw"
)

var sources = [...]Source{
	SourceNeI,
	SourceNeII,
	SourceNwI,
	SourceNwII,
	SourceSe,
	SourceNwIII,
	SourceSw,
}

// Sources returns all streams in reporting order
func Sources() []Source {
	out := make([]Source, len(sources))
	copy(out, sources[:])
	return out
}

func (self Source) IsValid() bool {
	for _, s := range sources {
		if s == self {
			return true
		}
	}
	return false
}

func (self Source) String() string {
	return string(self)
}

func (self Source) TableName() string {
	return string(self)
}

func (self Source) FileName() string {
	return string(self) + ".csv"
}
