package render

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/coursegraph/coursegraph/pkg/errors"
)

// pdfConverter is the external SVG-to-PDF converter. Graphviz ships no PDF
// writer, so printable study plans go through librsvg.
const pdfConverter = "rsvg-convert"

// ToPDF converts a rendered SVG course graph to PDF.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	if _, err := exec.LookPath(pdfConverter); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"PDF export requires librsvg (brew install librsvg / apt install librsvg2-bin)")
	}

	cmd := exec.Command(pdfConverter, "-f", "pdf")
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %v: %s", pdfConverter, err, errBuf.String())
	}
	return out.Bytes(), nil
}
