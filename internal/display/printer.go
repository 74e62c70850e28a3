// Package display writes the game list for the user.
package display

import (
	"bufio"
	"io"
)

// Printer writes one name per line.
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes names in order, each followed by a newline.
func (p *Printer) Print(names []string) error {
	bw := bufio.NewWriter(p.w)
	for _, name := range names {
		if _, err := bw.WriteString(name); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
