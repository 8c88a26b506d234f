package output

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// LineFormatter renders every log entry as exactly one line. Newlines inside
// the message (pretty-printed response bodies) are escaped as \n.
type LineFormatter struct {
	// ShowTimestamp prefixes each line with an RFC3339 timestamp and level
	ShowTimestamp bool
	// ShowFields appends the entry's fields as sorted key=value pairs
	ShowFields bool
}

var lineEscaper = strings.NewReplacer("\r\n", `\n`, "\n", `\n`, "\r", `\r`)

func (f *LineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	if f.ShowTimestamp {
		b.WriteString(entry.Time.Format(time.RFC3339))
		b.WriteByte(' ')
		fmt.Fprintf(&b, "%-5s ", strings.ToUpper(entry.Level.String()))
	}

	b.WriteString(lineEscaper.Replace(entry.Message))

	if f.ShowFields && len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
		}
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// NewLogger builds the response logger used by the CLI
func NewLogger(w io.Writer, level logrus.Level, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	logger.SetFormatter(&LineFormatter{
		ShowTimestamp: verbose,
		ShowFields:    verbose,
	})
	return logger
}
