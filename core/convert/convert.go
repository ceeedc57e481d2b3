package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/andybalholm/brotli"
)

// ErrConversion marks a failed conversion.
var ErrConversion = errors.New("conversion failed")

// Codec names a conversion method.
type Codec string

const (
	CodecBrotli      Codec = "brotli"
	CodecConeshell   Codec = "coneshell"
	CodecUnity       Codec = "unity"
	CodecPassthrough Codec = "passthrough"
)

// Converter produces the database file at out from the raw bundle at in.
type Converter interface {
	Convert(ctx context.Context, in, out string) error
}

// Brotli decompresses in into out.
type Brotli struct{}

// Convert implements Converter.
func (Brotli) Convert(_ context.Context, in, out string) error {
	src, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConversion, err)
	}
	defer src.Close()

	return writeFile(out, brotli.NewReader(src))
}

// Passthrough copies in to out unchanged.
type Passthrough struct{}

// Convert implements Converter.
func (Passthrough) Convert(_ context.Context, in, out string) error {
	src, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConversion, err)
	}
	defer src.Close()

	return writeFile(out, src)
}

// Exec runs an external program. Any output on stderr counts as failure.
type Exec struct {
	// Command is the command line with {in} and {out} placeholders.
	Command string
}

// Convert implements Converter.
func (e Exec) Convert(ctx context.Context, in, out string) error {
	args := strings.Fields(e.Command)
	if len(args) == 0 {
		return fmt.Errorf("%w: empty command", ErrConversion)
	}
	for i, a := range args {
		a = strings.ReplaceAll(a, "{in}", in)
		args[i] = strings.ReplaceAll(a, "{out}", out)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v: %s", ErrConversion, args[0], err, strings.TrimSpace(stderr.String()))
	}
	if stderr.Len() > 0 {
		return fmt.Errorf("%w: %s: %s", ErrConversion, args[0], strings.TrimSpace(stderr.String()))
	}
	if _, err := os.Stat(out); err != nil {
		return fmt.Errorf("%w: %s produced no output: %v", ErrConversion, args[0], err)
	}
	return nil
}

// Registry maps codecs to converters.
type Registry map[Codec]Converter

// NewRegistry builds the converters from configuration.
func NewRegistry(cfg Config) Registry {
	var unity Converter = Passthrough{}
	if strings.TrimSpace(cfg.Unity) != "" {
		unity = Exec{Command: cfg.Unity}
	}
	return Registry{
		CodecBrotli:      Brotli{},
		CodecConeshell:   Exec{Command: cfg.Coneshell},
		CodecUnity:       unity,
		CodecPassthrough: Passthrough{},
	}
}

// Get returns the converter for codec.
func (r Registry) Get(codec Codec) (Converter, error) {
	c, ok := r[codec]
	if !ok {
		return nil, fmt.Errorf("%w: no converter for codec %q", ErrConversion, codec)
	}
	return c, nil
}

func writeFile(path string, r io.Reader) error {
	tmp := path + ".tmp"
	dst, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConversion, err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrConversion, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrConversion, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrConversion, err)
	}
	return nil
}
