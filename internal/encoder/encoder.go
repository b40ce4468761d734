// Package encoder provides cwebp command building and invocation.
package encoder

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/vadondaniel/image-to-webp-optimizer/internal/util"
)

const cwebpBinary = "cwebp"

// Outcome is the transient per-image conversion result. Failures are
// captured here and never propagate past this boundary.
type Outcome struct {
	Success       bool
	OriginalSize  int64
	ConvertedSize int64
	Message       string
}

// Invoker runs one cwebp invocation per image.
type Invoker struct {
	// Binary is the encoder executable; defaults to cwebp on PATH.
	Binary string
}

// New creates an Invoker for the given binary. An empty binary selects
// cwebp from PATH.
func New(binary string) *Invoker {
	if binary == "" {
		binary = cwebpBinary
	}
	return &Invoker{Binary: binary}
}

// Available checks if the encoder binary can be found.
func (inv *Invoker) Available() bool {
	_, err := exec.LookPath(inv.Binary)
	return err == nil
}

// Path returns the resolved path to the encoder binary.
func (inv *Invoker) Path() (string, error) {
	return exec.LookPath(inv.Binary)
}

// LosslessFor reports whether the source path and quality combination
// requests lossless encoding: a PNG source at maximum quality.
func LosslessFor(src string, quality int) bool {
	return quality == 100 && strings.EqualFold(filepath.Ext(src), ".png")
}

// BuildArgs constructs the cwebp argument list for one image. A PNG
// source at quality 100 requests lossless mode instead of passing the
// numeric quality.
func BuildArgs(src, dst string, quality int) []string {
	if LosslessFor(src, quality) {
		return []string{"-lossless", src, "-o", dst}
	}
	return []string{"-q", fmt.Sprintf("%d", quality), src, "-o", dst}
}

// Encode runs one cwebp invocation converting src to dst at the given
// quality. The external process runs to completion without an attached
// console or stdin. All failures are folded into the returned Outcome,
// with the message scoped to the source file name.
func (inv *Invoker) Encode(src, dst string, quality int) Outcome {
	outcome := Outcome{OriginalSize: util.FileSize(src)}

	cmd := exec.Command(inv.Binary, BuildArgs(src, dst, quality)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		outcome.Message = encodeFailure(src, err, out)
		return outcome
	}

	outcome.Success = true
	// Missing output after a zero exit yields size 0, non-fatal.
	outcome.ConvertedSize = util.FileSize(dst)
	return outcome
}

func encodeFailure(src string, err error, output []byte) string {
	detail := strings.TrimSpace(string(output))
	if detail == "" {
		return fmt.Sprintf("%s: %v", filepath.Base(src), err)
	}
	// cwebp prints multi-line diagnostics; keep the last line, which
	// carries the actual error.
	lines := strings.Split(detail, "\n")
	return fmt.Sprintf("%s: %s", filepath.Base(src), strings.TrimSpace(lines[len(lines)-1]))
}
