/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: Custom log formatter for the FIS toolkit. Prints a compact line with optional
colors, an event tag derived from the message, and fields sorted by key.
*/

package logging

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CustomFormatter renders one readable line per entry
type CustomFormatter struct {
	Timestamp bool
	Caller    bool
	Colors    bool
}

// Format implements logrus.Formatter
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var out strings.Builder

	if f.Timestamp {
		f.write(&out, 36, entry.Time.Format("2006-01-02 15:04:05.000"))
	}

	f.write(&out, levelColor(entry.Level), strings.ToUpper(entry.Level.String()))

	if tag := eventTag(entry.Message); tag != "" {
		f.write(&out, 35, "["+tag+"]")
	}

	if f.Caller && entry.HasCaller() {
		f.write(&out, 33, fmt.Sprintf("[%s:%d]", entry.Caller.File, entry.Caller.Line))
	}

	out.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		out.WriteString(" ")
		out.WriteString(f.formatFields(entry.Data))
	}

	out.WriteString("\n")
	return []byte(out.String()), nil
}

// write appends s and a trailing space, colored when enabled
func (f *CustomFormatter) write(out *strings.Builder, color int, s string) {
	if f.Colors {
		fmt.Fprintf(out, "\033[%dm%s\033[0m ", color, s)
		return
	}
	out.WriteString(s)
	out.WriteString(" ")
}

func levelColor(level logrus.Level) int {
	switch level {
	case logrus.DebugLevel:
		return 37
	case logrus.InfoLevel:
		return 32
	case logrus.WarnLevel:
		return 33
	case logrus.ErrorLevel:
		return 31
	default:
		return 35
	}
}

// eventTag maps helper messages to short tags
func eventTag(message string) string {
	switch {
	case strings.HasPrefix(message, "Parse"):
		return "PARSE"
	case strings.HasPrefix(message, "Compile"):
		return "COMPILE"
	case strings.HasPrefix(message, "Evaluation"):
		return "EVAL"
	case strings.HasPrefix(message, "Batch"):
		return "BATCH"
	default:
		return ""
	}
}

func (f *CustomFormatter) formatFields(fields logrus.Fields) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := formatValue(fields[key])
		if f.Colors {
			parts = append(parts, fmt.Sprintf("\033[34m%s\033[0m=\033[32m%s\033[0m", key, value))
		} else {
			parts = append(parts, fmt.Sprintf("%s=%s", key, value))
		}
	}
	return strings.Join(parts, " ")
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case time.Duration:
		return v.String()
	case time.Time:
		return v.Format("15:04:05.000")
	case float64:
		return fmt.Sprintf("%.6g", v)
	case map[string]float64:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s:%.6g", k, v[k])
		}
		return "{" + strings.Join(parts, ",") + "}"
	case string:
		if len(v) > 80 {
			return v[:80] + "..."
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
