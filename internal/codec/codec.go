package codec

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"paxflow/internal/domain"
)

// Exporter writes an analysis report in one output format
type Exporter interface {
	Export(report *domain.Report, w io.Writer) error
	Format() string
}

var exporters = map[string]func() Exporter{
	"text": func() Exporter { return NewTextCodec() },
	"json": func() Exporter { return NewJSONCodec() },
	"yaml": func() Exporter { return NewYAMLCodec() },
}

// ForFormat returns the exporter registered for format
func ForFormat(format string) (Exporter, error) {
	ctor, ok := exporters[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats(), ", "))
	}
	return ctor(), nil
}

// Formats lists the registered format names
func Formats() []string {
	names := make([]string, 0, len(exporters))
	for name := range exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
