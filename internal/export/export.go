// Package export implements the naming, timestamping and directory rules
// for ledger snapshots and backups, plus the snapshot writers themselves.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

// Format identifies an export output format.
type Format string

const (
	FormatCSV  Format = "CSV"
	FormatYAML Format = "YAML"
)

func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatYAML:
		return ".yaml"
	}
	return ""
}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToUpper(strings.TrimSpace(s)))
	if f != FormatCSV && f != FormatYAML {
		return "", fmt.Errorf("unknown export format %q", s)
	}
	return f, nil
}

const (
	filenameTimeLayout = "20060102_150405"
	filenameLabel      = "tally_export"

	exportSubdir = "exports"
	backupSubdir = "backups"
)

// BuildFilename names an export file after the current time. The first two
// underscore-delimited tokens are the timestamp and round-trip through
// ParseExportTime.
func BuildFilename(f Format) string {
	return buildFilenameAt(time.Now(), f)
}

func buildFilenameAt(t time.Time, f Format) string {
	return t.Format(filenameTimeLayout) + "_" + filenameLabel + f.Extension()
}

// ParseExportTime recovers the export time from a filename produced by
// BuildFilename. Malformed names are logged and yield the zero time rather
// than an error; callers treat that as "unknown, very old".
func ParseExportTime(filename string) time.Time {
	tokens := strings.SplitN(filename, "_", 3)
	if len(tokens) < 2 {
		pterm.Warning.Printfln("export filename %q carries no timestamp", filename)
		return time.Time{}
	}

	t, err := time.ParseInLocation(filenameTimeLayout, tokens[0]+"_"+tokens[1], time.Local)
	if err != nil {
		pterm.Warning.Printfln("could not parse export time from %q: %v", filename, err)
		return time.Time{}
	}
	return t
}

// ExportFile returns the full path for a new export, creating the exports
// directory under baseDir on first use.
func ExportFile(baseDir string, f Format) (string, error) {
	dir := filepath.Join(baseDir, exportSubdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}
	return filepath.Join(dir, BuildFilename(f)), nil
}

// BackupFile returns the full path for a new backup, creating the backups
// directory under baseDir on first use. Backups reuse the export naming
// with a .zip suffix appended.
func BackupFile(baseDir string) (string, error) {
	dir := filepath.Join(baseDir, backupSubdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory %s: %w", dir, err)
	}
	return filepath.Join(dir, BuildFilename(FormatYAML)+".zip"), nil
}

// MostRecentBackup returns the path of the newest file in the backup
// directory, judged by modification time. The second return is false when
// the directory is absent or holds no files. Subdirectories are not
// descended into.
func MostRecentBackup(baseDir string) (string, bool) {
	dir := filepath.Join(baseDir, backupSubdir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	var (
		newest    string
		newestMod time.Time
		found     bool
	)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if !found || info.ModTime().After(newestMod) {
			newest = filepath.Join(dir, e.Name())
			newestMod = info.ModTime()
			found = true
		}
	}
	return newest, found
}

// Exporter generates one serialized ledger snapshot.
type Exporter interface {
	Format() Format
	Generate(w io.Writer) error
}

// Generate runs the exporter and wraps any failure with the format name.
// A failed export aborts only that attempt; ledger state is untouched.
func Generate(e Exporter, w io.Writer) error {
	if err := e.Generate(w); err != nil {
		return fmt.Errorf("failed to generate %s export: %w", e.Format(), err)
	}
	return nil
}
