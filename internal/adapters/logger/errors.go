package logger

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// messager is implemented by zerr.Error: the message without its cause chain.
type messager interface {
	Message() string
}

type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one level of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks zerr errors level by level. The first error that is
// not a zerr error ends the walk with its full message. Wrappers without a message
// hand their metadata to the next level.
func collectErrorEntries(err error) []ErrorEntry {
	var (
		entries []ErrorEntry
		pending map[string]any
	)
	for err != nil {
		m, ok := err.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: err.Error(), Metadata: pending})
			break
		}

		var md map[string]any
		if withMD, ok := err.(metadataer); ok {
			md = withMD.Metadata()
		}
		next := errors.Unwrap(err)

		if m.Message() == "" && next != nil {
			pending = merge(pending, md)
			err = next
			continue
		}

		entries = append(entries, ErrorEntry{Message: m.Message(), Metadata: merge(md, pending)})
		pending = nil
		err = next
	}
	return entries
}

func merge(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string
	for i, e := range entries {
		msg := strings.Split(e.Message, "\n")
		if i == 0 {
			lines = append(lines, "Error: "+msg[0])
			for _, l := range msg[1:] {
				lines = append(lines, "       "+l)
			}
			lines = append(lines, formatMetadata(e.Metadata, "       ")...)
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msg[0])
		for _, l := range msg[1:] {
			lines = append(lines, "      "+l)
		}
		lines = append(lines, formatMetadata(e.Metadata, "      ")...)
	}
	return strings.Join(lines, "\n")
}

func formatMetadata(md map[string]any, indent string) []string {
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, md[k]))
	}
	return lines
}
