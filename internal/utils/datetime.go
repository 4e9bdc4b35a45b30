package utils

import (
	"strconv"
	"strings"
	"time"
)

type DateFormat string

const (
	FormatRFC3339     DateFormat = time.RFC3339
	FormatDateTime    DateFormat = "2006-01-02T15:04"
	FormatDateTimeSec DateFormat = "2006-01-02T15:04:05"
	FormatDateOnly    DateFormat = "2006-01-02"
	FormatUnixTime    DateFormat = "unix"
)

// TimestampParser parses the timestamp shapes an election settings update can
// carry. Formats without an explicit offset are interpreted in the supplied
// location so comparisons stay timezone-aware.
type TimestampParser struct {
	localFormats []DateFormat
}

func NewTimestampParser() *TimestampParser {
	return &TimestampParser{
		localFormats: []DateFormat{
			FormatDateTimeSec,
			FormatDateTime,
			FormatDateOnly,
		},
	}
}

type ParsedTimestamp struct {
	IsValid        bool
	DetectedFormat DateFormat
	Time           time.Time
	OriginalValue  string
}

func (tp *TimestampParser) Parse(input string, loc *time.Location) ParsedTimestamp {
	result := ParsedTimestamp{OriginalValue: input}

	input = strings.TrimSpace(input)
	if input == "" {
		return result
	}
	if loc == nil {
		loc = time.UTC
	}

	// Unix seconds, restricted to a sane range (2001-2100). Only the
	// 10-digit shape counts as an epoch value so compact digit runs like
	// 20260315 are rejected instead of misread as a far-future instant.
	if len(input) == 10 {
		if unixTime, err := strconv.ParseInt(input, 10, 64); err == nil {
			if unixTime > 0 && unixTime < 4102444800 {
				result.IsValid = true
				result.DetectedFormat = FormatUnixTime
				result.Time = time.Unix(unixTime, 0).UTC()
			}
			return result
		}
	}

	if parsed, err := time.Parse(time.RFC3339, input); err == nil {
		result.IsValid = true
		result.DetectedFormat = FormatRFC3339
		result.Time = parsed
		return result
	}

	for _, format := range tp.localFormats {
		if parsed, err := time.ParseInLocation(string(format), input, loc); err == nil {
			result.IsValid = true
			result.DetectedFormat = format
			result.Time = parsed
			return result
		}
	}

	return result
}
