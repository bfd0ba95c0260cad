package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Extractor = (*SplitExtractor)(nil)
	_ Extractor = (*PatternExtractor)(nil)
)

func TestNew(t *testing.T) {
	t.Run("pattern", func(t *testing.T) {
		e, err := New(StrategyPattern)
		require.NoError(t, err)
		assert.Equal(t, "pattern", e.Name())
	})

	t.Run("split", func(t *testing.T) {
		e, err := New(StrategySplit)
		require.NoError(t, err)
		assert.Equal(t, "split", e.Name())
	})

	t.Run("split honours suffix option", func(t *testing.T) {
		e, err := New(StrategySplit, WithStripAllSuffix(false))
		require.NoError(t, err)
		assert.Empty(t, e.Extract("ts,PID-2,1.5ss"))
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := New(Strategy("csv"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"csv"`)
	})
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input   string
		want    Strategy
		wantErr bool
	}{
		{"", StrategyPattern, false},
		{"pattern", StrategyPattern, false},
		{"split", StrategySplit, false},
		{"regex", "", true},
		{"SPLIT", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStrategy(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "ParseStrategy(%q)", tt.input)
			continue
		}
		require.NoError(t, err, "ParseStrategy(%q)", tt.input)
		assert.Equal(t, tt.want, got, "ParseStrategy(%q)", tt.input)
	}
}

func TestStrategies(t *testing.T) {
	assert.Equal(t, []string{"pattern", "split"}, Strategies())
}

func TestSplitExtractor_Extract(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []Sample
	}{
		{"canonical record", "2024-01-15 10:00:00,PID-2,0.5s", []Sample{{PID: 2, Seconds: 0.5}}},
		{"no unit", "ts,PID-3,1.5", []Sample{{PID: 3, Seconds: 1.5}}},
		{"surrounding whitespace", "  ts , PID-7 ,  2.25s  ", []Sample{{PID: 7, Seconds: 2.25}}},
		{"extra fields ignored", "ts,PID-2,0.5s,cpu0,idle", []Sample{{PID: 2, Seconds: 0.5}}},
		{"integer seconds", "ts,PID-10,3s", []Sample{{PID: 10, Seconds: 3}}},
		{"trailing decimal point", "ts,PID-4,5.s", []Sample{{PID: 4, Seconds: 5}}},
		{"zero time", "ts,PID-4,0s", []Sample{{PID: 4, Seconds: 0}}},
		{"repeated unit stripped", "ts,PID-2,1.5ss", []Sample{{PID: 2, Seconds: 1.5}}},

		{"no marker", "ts,proc-2,0.5s", nil},
		{"empty line", "", nil},
		// The split layout needs a leading field; a bare record is skipped.
		{"two fields only", "PID-2,0.5s", nil},
		{"non-numeric pid", "garbage,PID-x,abc", nil},
		{"non-numeric time", "ts,PID-2,abc", nil},
		{"marker elsewhere", "PID-2,ts,0.5s", nil},
		{"signed pid", "ts,PID-+2,0.5s", nil},
		{"negative time", "ts,PID-2,-0.5s", nil},
		{"scientific time", "ts,PID-2,1e3s", nil},
		{"missing integer part", "ts,PID-2,.5s", nil},
		{"infinity", "ts,PID-2,inf", nil},
		{"pid overflow", "ts,PID-99999999999999999999,1s", nil},
		{"empty time", "ts,PID-2,", nil},
		{"only unit", "ts,PID-2,s", nil},
	}

	e := NewSplitExtractor(true)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(tt.line))
		})
	}
}

func TestSplitExtractor_SingleSuffixStrip(t *testing.T) {
	e := NewSplitExtractor(false)

	assert.Equal(t, []Sample{{PID: 2, Seconds: 1.5}}, e.Extract("ts,PID-2,1.5s"))
	assert.Empty(t, e.Extract("ts,PID-2,1.5ss"))
}

func TestPatternExtractor_Extract(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []Sample
	}{
		{"bare record", "PID-2,0.5s", []Sample{{PID: 2, Seconds: 0.5}}},
		{"prefixed record", "2024-01-15 10:00:00,PID-2,0.5s", []Sample{{PID: 2, Seconds: 0.5}}},
		{"no unit", "PID-3,1.5", []Sample{{PID: 3, Seconds: 1.5}}},
		{"embedded in text", "sched: PID-9,2.75s on cpu1", []Sample{{PID: 9, Seconds: 2.75}}},
		{"trailing decimal point", "PID-4,5.s", []Sample{{PID: 4, Seconds: 5}}},
		{
			"multiple occurrences",
			"PID-1,1.0s PID-2,2s;PID-1,0.25s",
			[]Sample{{PID: 1, Seconds: 1}, {PID: 2, Seconds: 2}, {PID: 1, Seconds: 0.25}},
		},
		{
			"overflowing pid skips only that occurrence",
			"PID-99999999999999999999,1s PID-5,2s",
			[]Sample{{PID: 5, Seconds: 2}},
		},
		// The pattern takes the leading digits of an exponent form; the split
		// strategy rejects the same field outright.
		{"scientific time prefix", "PID-2,1e3s", []Sample{{PID: 2, Seconds: 1}}},

		{"no marker", "pid 2 used 0.5s", nil},
		{"non-numeric pid", "garbage,PID-x,abc", nil},
		{"space after comma", "PID-2, 0.5s", nil},
		{"negative time", "PID-2,-0.5s", nil},
		{"missing integer part", "PID-2,.5s", nil},
		{"marker without record", "PID-", nil},
	}

	e := NewPatternExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(tt.line))
		})
	}
}

func TestStrategiesAgreeOnRecordShape(t *testing.T) {
	lines := []string{
		"2024-01-15 10:00:00,PID-2,0.5s",
		"2024-01-15 10:00:01,PID-3,1.5s",
		"2024-01-15 10:00:02,PID-2,0.5",
		"2024-01-15 10:00:03,PID-1024,12.125s",
		"2024-01-15 10:00:04,PID-0,0s",
		"2024-01-15 10:00:05,PID-x,abc",
		"2024-01-15 10:00:06,kernel,ready",
		"no marker at all",
	}

	split := NewSplitExtractor(true)
	pattern := NewPatternExtractor()

	for _, line := range lines {
		assert.Equal(t, split.Extract(line), pattern.Extract(line), "line %q", line)
	}
}

func TestExtract_Stateless(t *testing.T) {
	for _, e := range []Extractor{NewSplitExtractor(true), NewPatternExtractor()} {
		line := "ts,PID-2,0.5s"
		first := e.Extract(line)
		e.Extract("ts,PID-3,9s")
		assert.Equal(t, first, e.Extract(line), e.Name())
	}
}
