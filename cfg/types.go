package cfg

import (
	"fmt"
	"strings"
)

// ProcessorKind selects between the sequential and the parallel processor.
// The single letter forms "s" and "m" are accepted for compatibility with
// the positional command line.
type ProcessorKind string

const (
	SequentialProcessor ProcessorKind = "sequential"
	ParallelProcessor   ProcessorKind = "parallel"
)

var processorAliases = map[string]ProcessorKind{
	"s":          SequentialProcessor,
	"sequential": SequentialProcessor,
	"m":          ParallelProcessor,
	"parallel":   ParallelProcessor,
}

func (p *ProcessorKind) UnmarshalText(text []byte) error {
	kind, ok := processorAliases[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("unsupported processor type %s. It can only accept values in the list: [s, m, sequential, parallel]", text)
	}
	*p = kind
	return nil
}

// SchedulerKind selects the worker pool backing the parallel processor.
type SchedulerKind string

const (
	WorkStealingScheduler SchedulerKind = "work-stealing"
	SpawnScheduler        SchedulerKind = "spawn"
)

func (s *SchedulerKind) UnmarshalText(text []byte) error {
	kind := SchedulerKind(strings.ToLower(string(text)))
	if kind != WorkStealingScheduler && kind != SpawnScheduler {
		return fmt.Errorf("invalid scheduler value: %s. It can only accept values in the list: [%s, %s]", text, WorkStealingScheduler, SpawnScheduler)
	}
	*s = kind
	return nil
}

// LogFormat is either "text" or "json".
type LogFormat string

const (
	TextLogFormat LogFormat = "text"
	JSONLogFormat LogFormat = "json"
)

func (f *LogFormat) UnmarshalText(text []byte) error {
	format := LogFormat(strings.ToLower(string(text)))
	if format != TextLogFormat && format != JSONLogFormat {
		return fmt.Errorf("invalid log format: %s. Must be one of [text, json]", text)
	}
	*f = format
	return nil
}

// LogSeverity represents the logging severity and can accept the following values
// "TRACE", "DEBUG", "INFO", "WARNING", "ERROR", "OFF"
type LogSeverity string

const (
	TraceLogSeverity   LogSeverity = "TRACE"
	DebugLogSeverity   LogSeverity = "DEBUG"
	InfoLogSeverity    LogSeverity = "INFO"
	WarningLogSeverity LogSeverity = "WARNING"
	ErrorLogSeverity   LogSeverity = "ERROR"
	OffLogSeverity     LogSeverity = "OFF"
)

var severityRanking = map[LogSeverity]int{
	TraceLogSeverity:   0,
	DebugLogSeverity:   1,
	InfoLogSeverity:    2,
	WarningLogSeverity: 3,
	ErrorLogSeverity:   4,
	OffLogSeverity:     5,
}

func (l *LogSeverity) UnmarshalText(text []byte) error {
	level := LogSeverity(strings.ToUpper(string(text)))
	if _, ok := severityRanking[level]; !ok {
		return fmt.Errorf("invalid log severity level: %s. Must be one of [TRACE, DEBUG, INFO, WARNING, ERROR, OFF]", text)
	}
	*l = level
	return nil
}

// Rank returns the integer representation of the severity rank.
// Returns -1 if the severity is unknown.
func (l LogSeverity) Rank() int {
	if rank, ok := severityRanking[l]; ok {
		return rank
	}
	return -1
}
