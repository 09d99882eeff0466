package transcript

import (
	"io"
	"math"

	"github.com/fatih/color"
)

// RGB is a 24-bit terminal color.
type RGB struct {
	R, G, B uint8
}

// ConfidenceColor maps a probability in [0,1] onto a red-to-green hue.
func ConfidenceColor(probability float32) RGB {
	p := math.Max(0, math.Min(1, float64(probability)))
	return hslToRGB(p*100.0/360.0, 1, 0.5)
}

func hslToRGB(h, s, l float64) RGB {
	if s == 0 {
		c := uint8(l * 255)
		return RGB{c, c, c}
	}
	q := l + s - l*s
	if l < 0.5 {
		q = l * (1 + s)
	}
	p := 2*l - q
	return RGB{
		R: uint8(hueToRGB(p, q, h+1.0/3.0) * 255),
		G: uint8(hueToRGB(p, q, h) * 255),
		B: uint8(hueToRGB(p, q, h-1.0/3.0) * 255),
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

// WriteColored prints every token in its confidence color, one line per
// segment. With colored false the plain text is written. The caller decides
// whether w is a terminal, so colored output is forced on when requested.
func WriteColored(w io.Writer, t Transcription, colored bool) error {
	for _, segment := range t.Segments {
		for _, token := range segment {
			var err error
			if colored {
				_, err = io.WriteString(w, tokenColor(token.Probability).Sprint(token.Text))
			} else {
				_, err = io.WriteString(w, token.Text)
			}
			if err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func tokenColor(probability float32) *color.Color {
	c := ConfidenceColor(probability)
	out := color.RGB(int(c.R), int(c.G), int(c.B))
	out.EnableColor()
	return out
}
