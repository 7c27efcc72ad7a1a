package dingtalk

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ricirt/dingtalk-alert/internal/domain"
)

// DefaultTraceDepth is the number of stack frames PushText renders.
const DefaultTraceDepth = 5

const timestampLayout = "2006-01-02 15:04:05"

// FormatMessage renders e as a header line followed by up to maxFrames stack
// lines, joined by CRLF. Frame 0 (the capturing frame) is never rendered.
// Every line starts with delimiter and a space. maxFrames <= 0 renders the
// header only.
func FormatMessage(e domain.ErrorContext, delimiter string, maxFrames int, now time.Time) string {
	lines := []string{fmt.Sprintf("%s [Main] : Error: %s ：time:%s",
		delimiter, e.Message, now.Format(timestampLayout))}

	for i := 1; i <= maxFrames && i < len(e.Frames); i++ {
		f := e.Frames[i]
		lines = append(lines, fmt.Sprintf("%s [Stacktrace]: File:%s, Line:%s, Function:%s ",
			delimiter, f.File, lineString(f.Line), f.Function))
	}

	return strings.Join(lines, "\r\n")
}

func lineString(line int) string {
	if line == 0 {
		return ""
	}
	return strconv.Itoa(line)
}
