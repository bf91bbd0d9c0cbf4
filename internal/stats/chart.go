package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	barChar             = "█"
	labelWidth          = 4
	minBarWidth         = 10
	terminalWidthBackup = 80
	colorBar            = "\x1b[36m"
	colorReset          = "\x1b[0m"
)

// RenderDailyChart prints one horizontal bar per day, oldest first, ending today.
// totalWidth <= 0 uses the terminal width.
func RenderDailyChart(w io.Writer, hours []float64, now time.Time, totalWidth int, forceColor bool) error {
	if len(hours) == 0 {
		return nil
	}
	if totalWidth <= 0 {
		totalWidth = terminalWidth()
	}
	useColor := shouldUseColor(w, forceColor)

	maxVal := 0.0
	for _, h := range hours {
		maxVal = math.Max(maxVal, h)
	}
	valueCol := fmt.Sprintf("%.1f h", maxVal)
	barWidth := BarWidthFor(totalWidth, runewidth.StringWidth(valueCol))

	if _, err := fmt.Fprintln(w, "Daily hours"); err != nil {
		return err
	}
	first := localMidnight(now, now.Location()).AddDate(0, 0, -(len(hours) - 1))
	for i, h := range hours {
		label := first.AddDate(0, 0, i).Format("Mon")
		n := 0
		if maxVal > 0 {
			n = int(math.Round(h / maxVal * float64(barWidth)))
		}
		bar := strings.Repeat(barChar, n)
		if useColor && n > 0 {
			bar = colorBar + bar + colorReset
		}
		pad := strings.Repeat(" ", barWidth-n)
		if _, err := fmt.Fprintf(w, "%-*s %s%s %.1f h\n", labelWidth-1, label, bar, pad, h); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Trend %s\n\n", Sparkline(MovingAverage(hours, 3))); err != nil {
		return err
	}
	return nil
}

// BarWidthFor returns the bar area left after the day label and value columns.
func BarWidthFor(totalWidth, valueWidth int) int {
	width := totalWidth - labelWidth - 1 - valueWidth
	if width < minBarWidth {
		return minBarWidth
	}
	return width
}

func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return terminalWidthBackup
}

func shouldUseColor(w io.Writer, force bool) bool {
	if force {
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
