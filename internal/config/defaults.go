// SPDX-License-Identifier: MPL-2.0

package config

// Built-in defaults. They reproduce the original tool: boards are read from
// ./boards and written to ./merged.
const (
	DefaultRoot        DirPath      = "boards"
	DefaultOutputDir   DirPath      = "merged"
	DefaultMaxFileSize ByteSize     = 5 << 20
	DefaultDebounce    DurationText = "500ms"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Merge: MergeConfig{
			Root:            DefaultRoot,
			OutputDir:       DefaultOutputDir,
			CreateOutputDir: false,
			IncludeHidden:   false,
			MaxFileSize:     DefaultMaxFileSize,
		},
		Watch: WatchConfig{
			Debounce:    DefaultDebounce,
			ClearScreen: false,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
