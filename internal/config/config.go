package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	PostPath      string            `mapstructure:"path"`
	Output        string            `mapstructure:"output"`
	OutputFile    string            `mapstructure:"output_file"`
	Format        string            `mapstructure:"format"`
	LineNumbers   bool              `mapstructure:"line_numbers"`
	Exclude       []string          `mapstructure:"exclude"`
	LogLevel      string            `mapstructure:"log_level"`
	CacheSize     int               `mapstructure:"cache_size"`
	WatchDebounce time.Duration     `mapstructure:"watch_debounce"`
	Editor        string            `mapstructure:"editor"`
	Colors        map[string]string `mapstructure:"colors"`
	CPP           CPPConfig         `mapstructure:"cpp"`
}

// CPPConfig seeds the C++ post-processor registries
type CPPConfig struct {
	Defines    []string `mapstructure:"defines"`
	Namespaces []string `mapstructure:"namespaces"`
	Classes    []string `mapstructure:"classes"`
}

// C is the global config instance
var C Config

// defaultColors maps token type tags to ANSI 256 color codes
var defaultColors = map[string]string{
	"keyword":           "170",
	"class-name":        "81",
	"namespace-name":    "180",
	"member-variable":   "117",
	"macro-name":        "208",
	"directive-keyword": "204",
	"defined-keyword":   "204",
	"function":          "221",
	"string":            "114",
	"char":              "114",
	"number":            "215",
	"boolean":           "215",
	"comment":           "244",
	"operator":          "252",
	"punctuation":       "248",
	"macro":             "204",
	"plain":             "252",
	"line-number":       "240",
	"added":             "22",
	"removed":           "52",
	"modified":          "58",
	"highlighted":       "237",
}

// Init initializes configuration with viper
func Init() error {
	// Values from a local .env behave like exported variables
	_ = godotenv.Load()

	viper.SetDefault("path", ".")
	viper.SetDefault("output", "print")
	viper.SetDefault("output_file", "")
	viper.SetDefault("format", "ansi")
	viper.SetDefault("line_numbers", true)
	viper.SetDefault("exclude", []string{"node_modules", ".git"})
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("cache_size", 256)
	viper.SetDefault("watch_debounce", 200*time.Millisecond)
	viper.SetDefault("editor", "")
	viper.SetDefault("colors", defaultColors)
	viper.SetDefault("cpp.defines", []string{})
	viper.SetDefault("cpp.namespaces", []string{})
	viper.SetDefault("cpp.classes", []string{})

	viper.SetConfigName("mdhl")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "mdhl"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("MDHL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetPath returns the post path with tilde expansion
func GetPath() string {
	path := viper.GetString("path")
	return expandTilde(path)
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetOutput returns the output mode
func GetOutput() string {
	return viper.GetString("output")
}

// GetOutputFile returns the destination for the file output mode
func GetOutputFile() string {
	return expandTilde(viper.GetString("output_file"))
}

// GetFormat returns the render format (ansi or html)
func GetFormat() string {
	return viper.GetString("format")
}

// GetLineNumbers returns whether line numbers are shown by default
func GetLineNumbers() bool {
	return viper.GetBool("line_numbers")
}

// GetExclude returns the glob patterns of skipped paths
func GetExclude() []string {
	return viper.GetStringSlice("exclude")
}

// GetCacheSize returns the number of rendered blocks kept by the browser
func GetCacheSize() int {
	return viper.GetInt("cache_size")
}

// GetWatchDebounce returns the delay before re-rendering after a change
func GetWatchDebounce() time.Duration {
	return viper.GetDuration("watch_debounce")
}

// GetEditor returns the editor used to open posts
func GetEditor() string {
	if editor := viper.GetString("editor"); editor != "" {
		return editor
	}
	return os.Getenv("EDITOR")
}

// GetColor returns the color configured for a token type tag
func GetColor(tag string) string {
	if c := viper.GetString("colors." + tag); c != "" {
		return c
	}
	return defaultColors[tag]
}

// GetDefines returns the predefined C++ macros
func GetDefines() []string {
	return viper.GetStringSlice("cpp.defines")
}

// GetNamespaces returns extra C++ namespace names
func GetNamespaces() []string {
	return viper.GetStringSlice("cpp.namespaces")
}

// GetClasses returns extra C++ type names
func GetClasses() []string {
	return viper.GetStringSlice("cpp.classes")
}

// GetLogLevel returns the configured slog level
func GetLogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log_level"))); err != nil {
		return slog.LevelWarn
	}
	return level
}

// SetOutput sets output mode at runtime
func SetOutput(mode string) {
	viper.Set("output", mode)
	C.Output = mode
}

// SetFormat sets render format at runtime
func SetFormat(format string) {
	viper.Set("format", format)
	C.Format = format
}

// SetPath sets path at runtime
func SetPath(path string) {
	viper.Set("path", path)
	C.PostPath = path
}

// SetLogLevel sets the log level at runtime
func SetLogLevel(level string) {
	viper.Set("log_level", level)
	C.LogLevel = level
}
