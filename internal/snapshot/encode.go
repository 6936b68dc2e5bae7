package snapshot

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/vlist/pkg/errors"
)

// Format names accepted by Write.
const (
	FormatText    = "text"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
)

// Style controls WriteText output.
type Style struct {
	// Color enables ANSI highlighting.
	Color bool
	// Items lists every materialized item under its snapshot.
	Items bool
}

// Write encodes snaps in the named format.
func Write(w io.Writer, format string, snaps []Snapshot, style Style) error {
	switch format {
	case FormatText, "":
		return WriteText(w, snaps, style)
	case FormatYAML:
		return WriteYAML(w, snaps)
	case FormatMsgpack:
		return WriteMsgpack(w, snaps)
	default:
		return errors.Config("snapshot.Write", fmt.Errorf("unknown format %q (want text, yaml or msgpack)", format))
	}
}

func newColor(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func spanText(s Span) string {
	if s.Empty() {
		return "none"
	}
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// WriteText writes one human-readable block per snapshot.
func WriteText(w io.Writer, snaps []Snapshot, style Style) error {
	p := message.NewPrinter(language.English)
	name := newColor(style.Color, color.FgCyan, color.Bold)
	label := newColor(style.Color, color.Faint)
	visible := newColor(style.Color, color.FgGreen)
	render := newColor(style.Color, color.FgYellow)

	for _, s := range snaps {
		_, err := fmt.Fprintf(w, "%s %s %s  %s %s  %s %s  %s %s\n",
			name.Sprint(s.Name), label.Sprint("step"), p.Sprintf("%d", s.Step),
			label.Sprint("offset"), p.Sprintf("%.1f", s.ScrollOffset),
			label.Sprint("viewport"), p.Sprintf("%.1f", s.ViewportSize),
			label.Sprint("total"), p.Sprintf("%.1f", s.TotalSize))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "  %s %s  %s %s  %s %s\n",
			label.Sprint("visible"), visible.Sprint(spanText(s.Visible)),
			label.Sprint("render"), render.Sprint(spanText(s.Render)),
			label.Sprint("items"), p.Sprintf("%d", s.ItemCount))
		if err != nil {
			return err
		}
		if !style.Items {
			continue
		}
		for _, it := range s.Items {
			c := render
			if it.Index >= s.Visible.Start && it.Index <= s.Visible.End {
				c = visible
			}
			_, err := fmt.Fprintf(w, "    %s %s +%s\n",
				c.Sprint(p.Sprintf("#%d", it.Index)), p.Sprintf("%.1f", it.Start), p.Sprintf("%.1f", it.Size))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteYAML writes snaps as a stream of YAML documents.
func WriteYAML(w io.Writer, snaps []Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, s := range snaps {
		if err := enc.Encode(s); err != nil {
			return err
		}
	}
	return enc.Close()
}

// WriteMsgpack writes snaps as consecutive MessagePack values.
func WriteMsgpack(w io.Writer, snaps []Snapshot) error {
	enc := msgpack.NewEncoder(w)
	for i := range snaps {
		if err := enc.Encode(&snaps[i]); err != nil {
			return err
		}
	}
	return nil
}

// ReadMsgpack decodes a stream written by WriteMsgpack.
func ReadMsgpack(r io.Reader) ([]Snapshot, error) {
	dec := msgpack.NewDecoder(r)
	var snaps []Snapshot
	for {
		var s Snapshot
		if err := dec.Decode(&s); err != nil {
			if errors.Is(err, io.EOF) {
				return snaps, nil
			}
			return snaps, errors.Parsing("snapshot.ReadMsgpack", err)
		}
		snaps = append(snaps, s)
	}
}
