package details

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// OutputFormat controls how a submission is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits the value map as a JSON object.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded pairs.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one "Label: value" line per entry.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat validates a format name.
func ParseOutputFormat(raw string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", OutputFormatJSON:
		return OutputFormatJSON, nil
	case OutputFormatFormURLEncoded:
		return OutputFormatFormURLEncoded, nil
	case OutputFormatPrettyText:
		return OutputFormatPrettyText, nil
	default:
		return "", fmt.Errorf("details: unknown output format %q", raw)
	}
}

// ContentType reports the MIME type of the format.
func (f OutputFormat) ContentType() string {
	switch f {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithFormat selects the serialization format.
func WithFormat(format OutputFormat) WriterOption {
	return func(w *Writer) {
		if format != "" {
			w.format = format
		}
	}
}

// WithStyled enables lipgloss styling of labels in pretty output.
func WithStyled(styled bool) WriterOption {
	return func(w *Writer) {
		w.styled = styled
	}
}

// WithTitle prints a heading above pretty output.
func WithTitle(title string) WriterOption {
	return func(w *Writer) {
		w.title = strings.TrimSpace(title)
	}
}

// Writer is a Display that serializes submissions to an io.Writer.
type Writer struct {
	out    io.Writer
	format OutputFormat
	styled bool
	title  string

	labelStyle lipgloss.Style
	titleStyle lipgloss.Style
}

// Ensure Writer implements Display.
var _ Display = (*Writer)(nil)

// NewWriter returns a Writer emitting JSON unless configured otherwise.
func NewWriter(out io.Writer, options ...WriterOption) *Writer {
	w := &Writer{
		out:        out,
		format:     OutputFormatJSON,
		labelStyle: lipgloss.NewStyle().Bold(true),
		titleStyle: lipgloss.NewStyle().Bold(true).Underline(true).MarginBottom(1),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w
}

// Display implements Display.
func (w *Writer) Display(ctx context.Context, submission Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.out == nil {
		return errors.New("details: writer output is nil")
	}

	payload, err := w.Encode(submission)
	if err != nil {
		return err
	}
	if _, err := w.out.Write(payload); err != nil {
		return fmt.Errorf("details: write submission: %w", err)
	}
	return nil
}

// Encode serializes the submission without writing it.
func (w *Writer) Encode(submission Submission) ([]byte, error) {
	switch w.format {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for id, value := range submission.Data {
			values.Set(id, value)
		}
		return []byte(values.Encode() + "\n"), nil
	case OutputFormatPrettyText:
		return []byte(w.pretty(submission)), nil
	default:
		data := submission.Data
		if data == nil {
			data = map[string]string{}
		}
		payload, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("details: encode json: %w", err)
		}
		return append(payload, '\n'), nil
	}
}

func (w *Writer) pretty(submission Submission) string {
	var b strings.Builder
	if w.title != "" {
		if w.styled {
			b.WriteString(w.titleStyle.Render(w.title))
		} else {
			b.WriteString(w.title)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	for _, entry := range submission.Entries() {
		label := entry.Label + ":"
		if w.styled {
			label = w.labelStyle.Render(label)
		}
		b.WriteString(label)
		b.WriteString(" ")
		b.WriteString(entry.Value)
		b.WriteString("\n")
	}
	return b.String()
}
