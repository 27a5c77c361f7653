package license

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"droidenv/internal/platform"
)

// Record is a license acceptance file: its name and the hashes written into it.
type Record struct {
	Name   string   `json:"name" yaml:"name"`
	Tokens []string `json:"tokens" yaml:"tokens"`
}

var baseTable = []Record{
	{Name: "android-sdk-license", Tokens: []string{"24333f8a63b6825ea9c5514f83c2829b004d1fee"}},
	{Name: "android-sdk-preview-license", Tokens: []string{"84831b9409646a918e30573bab4c9c91346d8abd"}},
	{Name: "intel-android-extra-license", Tokens: []string{"d975f751698a77b662f1254ddbeed3901e976f5a"}},
}

var windowsTokens = []string{
	"8933bad161af4178b1185d1a37fbf41ea5269c55",
	"d56f5187479451eabf01fb78af6dfcb131a6481e",
}

var windowsNames = []string{
	"android-sdk-license",
	"android-sdk-preview-license",
	"android-sdk-arm-dbt-license",
	"google-gdk-license",
	"intel-android-extra-license",
	"mips-android-sysimage-license",
}

// Prompter drives the package tool's own interactive license prompt.
type Prompter interface {
	AcceptLicenses(ctx context.Context) error
}

// DefaultTable returns the records written for the given platform. Windows
// hosts get the extended table layered over the base records.
func DefaultTable(p platform.Profile) []Record {
	table := cloneTable(baseTable)
	if !p.Windows() {
		return table
	}
	extra := make([]Record, 0, len(windowsNames))
	for _, name := range windowsNames {
		extra = append(extra, Record{Name: name, Tokens: append([]string(nil), windowsTokens...)})
	}
	return Merge(table, extra)
}

// Merge overlays records by name. Overridden records keep their original
// position; new names are appended in order.
func Merge(base []Record, overrides []Record) []Record {
	out := cloneTable(base)
	index := make(map[string]int, len(out))
	for i, rec := range out {
		index[rec.Name] = i
	}
	for _, rec := range overrides {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			continue
		}
		rec = Record{Name: name, Tokens: append([]string(nil), rec.Tokens...)}
		if i, ok := index[name]; ok {
			out[i] = rec
			continue
		}
		index[name] = len(out)
		out = append(out, rec)
	}
	return out
}

// Contents renders the file body for a record.
func (r Record) Contents() string {
	var b strings.Builder
	for _, token := range r.Tokens {
		b.WriteString("\n")
		b.WriteString(token)
		b.WriteString("\n")
	}
	return b.String()
}

// Write creates dir and writes one file per record, overwriting existing files.
func Write(dir string, table []Record) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create licenses directory: %w", err)
	}
	for _, rec := range table {
		if strings.ContainsAny(rec.Name, `/\`) || rec.Name == "" || rec.Name == "." || rec.Name == ".." {
			return fmt.Errorf("invalid license name %q", rec.Name)
		}
		path := filepath.Join(dir, rec.Name)
		if err := os.WriteFile(path, []byte(rec.Contents()), 0o644); err != nil {
			return fmt.Errorf("write license %s: %w", rec.Name, err)
		}
	}
	return nil
}

// Accept writes the fixed table, then lets the package tool confirm anything
// the table does not cover. Only the file writes can fail the call.
func Accept(ctx context.Context, dir string, table []Record, prompter Prompter, logger logrus.FieldLogger) error {
	if err := Write(dir, table); err != nil {
		return err
	}
	logger.WithField("count", len(table)).Info("license records written")

	if prompter == nil {
		return nil
	}
	if err := prompter.AcceptLicenses(ctx); err != nil {
		logger.WithError(err).Warn("interactive license acceptance failed; continuing")
		return nil
	}
	logger.Info("interactive license prompt confirmed")
	return nil
}

func cloneTable(in []Record) []Record {
	out := make([]Record, len(in))
	for i, rec := range in {
		out[i] = Record{Name: rec.Name, Tokens: append([]string(nil), rec.Tokens...)}
	}
	return out
}
