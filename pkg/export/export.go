// pkg/export/export.go
package export

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"gopkg.in/yaml.v3"

	"github.com/helwan-linux/helstore/pkg/catalog"
	"github.com/helwan-linux/helstore/pkg/core"
)

// Format is the serialization used for a snapshot
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Compression wraps the serialized snapshot
type Compression string

const (
	CompressionNone Compression = ""
	CompressionZstd Compression = "zstd"
	CompressionXz   Compression = "xz"
	CompressionGzip Compression = "gzip"
)

// Snapshot is a catalog frozen to disk for front ends that load it later
type Snapshot struct {
	Generated  time.Time      `json:"generated" yaml:"generated" toml:"generated"`
	Repository int            `json:"repository" yaml:"repository" toml:"repository"` // Records from the official repositories
	Community  int            `json:"community" yaml:"community" toml:"community"`    // Records from the community repository
	Installed  int            `json:"installed" yaml:"installed" toml:"installed"`
	Packages   []core.Package `json:"packages" yaml:"packages" toml:"packages"`
}

// FromCatalog builds a snapshot of cat
func FromCatalog(cat *catalog.Catalog) *Snapshot {
	counts := cat.CountBySource()
	return &Snapshot{
		Generated:  time.Now().UTC().Truncate(time.Second),
		Repository: counts[core.SourceRepository],
		Community:  counts[core.SourceCommunity],
		Installed:  len(cat.Installed()),
		Packages:   cat.Packages(),
	}
}

// ParseFormat converts a user supplied format name
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown export format: %q", s)
	}
}

// Detect infers format and compression from a file name such as
// "catalog.json.zst". An unknown extension defaults to JSON.
func Detect(path string) (Format, Compression) {
	name := strings.ToLower(filepath.Base(path))

	comp := CompressionNone
	switch filepath.Ext(name) {
	case ".zst", ".zstd":
		comp = CompressionZstd
	case ".xz":
		comp = CompressionXz
	case ".gz":
		comp = CompressionGzip
	}
	if comp != CompressionNone {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	format, err := ParseFormat(strings.TrimPrefix(filepath.Ext(name), "."))
	if err != nil {
		format = FormatJSON
	}
	return format, comp
}

// Write serializes snap to w
func Write(w io.Writer, snap *Snapshot, format Format, comp Compression) (err error) {
	cw, err := compressor(w, comp)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := cw.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("finishing %s stream: %w", comp, cerr)
		}
	}()

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(cw)
		enc.SetIndent("", "  ")
		err = enc.Encode(snap)
	case FormatYAML:
		enc := yaml.NewEncoder(cw)
		enc.SetIndent(2)
		if err = enc.Encode(snap); err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(cw).Encode(snap)
	default:
		return fmt.Errorf("unknown export format: %q", format)
	}

	if err != nil {
		return fmt.Errorf("encoding %s snapshot: %w", format, err)
	}
	return nil
}

// Read decodes a snapshot written by Write
func Read(r io.Reader, format Format, comp Compression) (*Snapshot, error) {
	dr, closeFn, err := decompressor(r, comp)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	snap := &Snapshot{}
	switch format {
	case FormatJSON:
		err = json.NewDecoder(dr).Decode(snap)
	case FormatYAML:
		err = yaml.NewDecoder(dr).Decode(snap)
	case FormatTOML:
		_, err = toml.NewDecoder(dr).Decode(snap)
	default:
		return nil, fmt.Errorf("unknown export format: %q", format)
	}

	if err != nil {
		return nil, fmt.Errorf("decoding %s snapshot: %w", format, err)
	}
	return snap, nil
}

// WriteFile writes snap to path, choosing format and compression from its name
func WriteFile(path string, snap *Snapshot) error {
	format, comp := Detect(path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}

	if err := Write(f, snap, format, comp); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile loads a snapshot written by WriteFile
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	format, comp := Detect(path)
	return Read(f, format, comp)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func compressor(w io.Writer, comp Compression) (io.WriteCloser, error) {
	switch comp {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("zstd init: %w", err)
		}
		return zw, nil
	case CompressionXz:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("xz init: %w", err)
		}
		return xw, nil
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown compression: %q", comp)
	}
}

func decompressor(r io.Reader, comp Compression) (io.Reader, func(), error) {
	switch comp {
	case CompressionNone:
		return r, func() {}, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd init: %w", err)
		}
		return zr, zr.Close, nil
	case CompressionXz:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("xz init: %w", err)
		}
		return xr, func() {}, nil
	case CompressionGzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip init: %w", err)
		}
		return gr, func() { gr.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown compression: %q", comp)
	}
}
