package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/san-kum/sortviz/internal/viz"
)

const (
	barUnit    = 8.0 // px per bar column
	rowUnit    = 16.0
	labelSpace = 28.0
	footer     = 40.0
)

// FrameToSVG draws one frame: colored bars with pointer labels above and
// values and indices below.
func FrameToSVG(f viz.Frame, t viz.Theme) string {
	if len(f.Bars) == 0 {
		return ""
	}

	barW := float64(f.Bars[0].Width) * barUnit
	gap := barUnit
	width := float64(len(f.Bars))*(barW+gap) + gap
	plotH := float64(f.Rows) * rowUnit
	height := labelSpace + plotH + footer

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g font-family="monospace" font-size="11" text-anchor="middle">
`, width, height, width, height))

	for i, bar := range f.Bars {
		x := gap + float64(i)*(barW+gap)
		h := float64(bar.Height) * rowUnit
		y := labelSpace + plotH - h
		cx := x + barW/2

		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="2" fill="%s"/>
`, x, y, barW, h, string(t.Color(bar.Role))))

		if len(bar.Pointers) > 0 {
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-weight="bold">%s</text>
`, cx, labelSpace-8, string(t.Color(bar.Role)), strings.Join(bar.Pointers, ",")))
		}
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s">%d</text>
`, cx, labelSpace+plotH+14, string(t.Text), bar.Value))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s">[%d]</text>
`, cx, labelSpace+plotH+28, string(t.Muted), bar.Index))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG creates a polyline chart of a series, one point per entry.
func SeriesToSVG(values []int, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	rng := float64(maxV - minV)
	if rng == 0 {
		rng = 1
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	pad := 0.1 * float64(height)
	for i, v := range values {
		x := float64(i) / float64(len(values)-1) * float64(width)
		y := float64(height) - pad - (float64(v-minV)/rng)*(float64(height)-2*pad)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// Snapshotter returns a viz.SnapshotFunc writing timestamped SVGs into dir.
func Snapshotter(dir string) viz.SnapshotFunc {
	return func(f viz.Frame, t viz.Theme) (string, error) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
		path := filepath.Join(dir, fmt.Sprintf("frame_%s.svg", time.Now().Format("20060102_150405.000")))
		if err := os.WriteFile(path, []byte(FrameToSVG(f, t)), 0644); err != nil {
			return "", err
		}
		return path, nil
	}
}
