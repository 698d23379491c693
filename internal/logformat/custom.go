package logformat

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	logerrors "github.com/standardbeagle/logram/internal/errors"
	"github.com/standardbeagle/logram/internal/types"
)

// customFormatsFile is the on-disk shape of a custom-formats TOML file:
// a list of [[format]] tables, each naming a format and its template and
// censor patterns.
type customFormatsFile struct {
	Format []customFormatEntry `toml:"format"`
}

type customFormatEntry struct {
	Name           string   `toml:"name"`
	Template       string   `toml:"template"`
	CensorPatterns []string `toml:"censor_patterns"`
}

// LoadCustomFormats reads a TOML file of custom format definitions and
// registers each one. A custom format reusing a built-in name is rejected
// as a ConfigurationError rather than silently shadowing the built-in.
func LoadCustomFormats(r *Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return logerrors.NewConfigurationError("custom_formats_path", err)
	}

	var parsed customFormatsFile
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return logerrors.NewConfigurationError("custom_formats_path", err)
	}

	for _, entry := range parsed.Format {
		lf := LogFormat{
			Name:           types.LogFormatName(entry.Name),
			Template:       entry.Template,
			CensorPatterns: entry.CensorPatterns,
		}
		if err := r.Register(lf); err != nil {
			return logerrors.NewConfigurationError("custom_formats_path", err)
		}
	}
	return nil
}
