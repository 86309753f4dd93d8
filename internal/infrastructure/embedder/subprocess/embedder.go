// Package subprocess provides an Embedder that runs an external program,
// such as a Python script wrapping a local model, once per text.
//
// The program receives the text as its last argument and must print a JSON
// array of numbers on stdout.
package subprocess

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/ersonp/onebox-embed/internal/domain/entities"
	"github.com/ersonp/onebox-embed/internal/infrastructure/config"
)

// maxStderr bounds how much of the program's stderr ends up in an error.
const maxStderr = 2048

// Embedder implements the Embedder interface by spawning a process.
type Embedder struct {
	path    string
	args    []string
	model   string
	timeout time.Duration
}

// NewEmbedder resolves the configured command. A command that cannot be
// found on PATH means the provider is unavailable.
func NewEmbedder(cfg config.EmbedderConfig) (*Embedder, error) {
	if len(cfg.Command) == 0 || strings.TrimSpace(cfg.Command[0]) == "" {
		return nil, fmt.Errorf("%w: subprocess provider requires embedder.command", entities.ErrProviderUnavailable)
	}

	path, err := exec.LookPath(cfg.Command[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrProviderUnavailable, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	return &Embedder{
		path:    path,
		args:    append([]string(nil), cfg.Command[1:]...),
		model:   cfg.Model,
		timeout: timeout,
	}, nil
}

// Model returns the configured model name.
func (e *Embedder) Model() string {
	return e.model
}

// Embed runs the program with text as its final argument and parses its
// output.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	args := make([]string, 0, len(e.args)+1)
	args = append(args, e.args...)
	args = append(args, text)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("running %s: %w", e.path, ctxErr)
		}
		return nil, fmt.Errorf("%w: running %s: %w%s", entities.ErrProviderInference, e.path, err, stderrSuffix(stderr.Bytes()))
	}

	vector, err := ParseVector(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %w%s", entities.ErrProviderInference, err, stderrSuffix(stderr.Bytes()))
	}

	return vector, nil
}

// ParseVector decodes a JSON array of numbers. Surrounding whitespace is
// ignored; anything else after the array is an error.
func ParseVector(data []byte) ([]float32, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("provider printed no output")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var vector []float32
	if err := dec.Decode(&vector); err != nil {
		return nil, fmt.Errorf("parsing provider output: %w", err)
	}
	if dec.More() {
		return nil, errors.New("parsing provider output: unexpected data after JSON array")
	}
	if vector == nil {
		return nil, errors.New("parsing provider output: expected a JSON array, got null")
	}

	return vector, nil
}

func stderrSuffix(stderr []byte) string {
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		return ""
	}
	if len(msg) > maxStderr {
		msg = msg[len(msg)-maxStderr:]
	}
	return ": " + msg
}
