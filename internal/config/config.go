package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/uploadkit/internal/errors"
	"github.com/vango-dev/uploadkit/pkg/vdom"
)

const (
	// ConfigBaseName is the configuration file name without extension.
	ConfigBaseName = "uploadkit"

	// DefaultPort is the default preview server port.
	DefaultPort = 8080

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultFilesField is the default multipart field for files.
	DefaultFilesField = "files"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default log format.
	DefaultLogFormat = "text"
)

// ConfigFileNames are the file names Load looks for, in order.
var ConfigFileNames = []string{
	ConfigBaseName + ".json",
	ConfigBaseName + ".toml",
	ConfigBaseName + ".yaml",
	ConfigBaseName + ".yml",
}

// Config represents the complete uploadkit configuration.
type Config struct {
	// Widget configures the upload widget.
	Widget WidgetConfig `json:"widget" toml:"widget" yaml:"widget"`

	// Source configures where files are picked from.
	Source SourceConfig `json:"source" toml:"source" yaml:"source"`

	// S3 configures the S3 file source.
	S3 S3Config `json:"s3" toml:"s3" yaml:"s3"`

	// Serve configures the preview server.
	Serve ServeConfig `json:"serve" toml:"serve" yaml:"serve"`

	// Log configures logging.
	Log LogConfig `json:"log" toml:"log" yaml:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// WidgetConfig mirrors widget.Config with selectors for containers.
type WidgetConfig struct {
	// Container is the selector of the input container.
	Container string `json:"container,omitempty" toml:"container" yaml:"container,omitempty"`

	// PreviewContainer is the selector of the preview container.
	PreviewContainer string `json:"previewContainer,omitempty" toml:"preview_container" yaml:"preview_container,omitempty"`

	// AllowMultiple allows selecting several files.
	AllowMultiple bool `json:"allowMultiple,omitempty" toml:"allow_multiple" yaml:"allow_multiple,omitempty" env:"UPLOADKIT_MULTIPLE"`

	// FilesFieldName names the multipart file field.
	FilesFieldName string `json:"filesFieldName,omitempty" toml:"files_field_name" yaml:"files_field_name,omitempty" env:"UPLOADKIT_FILES_FIELD"`

	// AcceptedTypes restricts selectable files.
	AcceptedTypes []string `json:"acceptedTypes,omitempty" toml:"accepted_types" yaml:"accepted_types,omitempty"`

	// ID is the DOM id of the generated input.
	ID string `json:"id,omitempty" toml:"id" yaml:"id,omitempty"`

	// EndpointURL is the upload target.
	EndpointURL string `json:"endpointUrl,omitempty" toml:"endpoint_url" yaml:"endpoint_url,omitempty" env:"UPLOADKIT_ENDPOINT"`

	// ExtraFields are sent with every upload.
	ExtraFields map[string]any `json:"extraFields,omitempty" toml:"extra_fields" yaml:"extra_fields,omitempty"`

	// UserAgent is sent with upload requests.
	UserAgent string `json:"userAgent,omitempty" toml:"user_agent" yaml:"user_agent,omitempty" env:"UPLOADKIT_USER_AGENT"`
}

// SourceConfig configures the local file source.
type SourceConfig struct {
	// Dir is listed when no paths are given.
	Dir string `json:"dir,omitempty" toml:"dir" yaml:"dir,omitempty" env:"UPLOADKIT_DIR"`

	// MaxSize rejects larger files (bytes, 0 = no limit).
	MaxSize int64 `json:"maxSize,omitempty" toml:"max_size" yaml:"max_size,omitempty" env:"UPLOADKIT_MAX_SIZE"`

	// Interactive asks in the terminal which files to pick.
	Interactive bool `json:"interactive,omitempty" toml:"interactive" yaml:"interactive,omitempty" env:"UPLOADKIT_INTERACTIVE"`
}

// S3Config configures the S3 file source. An empty bucket disables it.
type S3Config struct {
	Bucket       string `json:"bucket,omitempty" toml:"bucket" yaml:"bucket,omitempty" env:"UPLOADKIT_S3_BUCKET"`
	Prefix       string `json:"prefix,omitempty" toml:"prefix" yaml:"prefix,omitempty" env:"UPLOADKIT_S3_PREFIX"`
	Region       string `json:"region,omitempty" toml:"region" yaml:"region,omitempty" env:"UPLOADKIT_S3_REGION"`
	Endpoint     string `json:"endpoint,omitempty" toml:"endpoint" yaml:"endpoint,omitempty" env:"UPLOADKIT_S3_ENDPOINT"`
	UsePathStyle bool   `json:"usePathStyle,omitempty" toml:"use_path_style" yaml:"use_path_style,omitempty" env:"UPLOADKIT_S3_PATH_STYLE"`
}

// ServeConfig contains preview server settings.
type ServeConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" toml:"host" yaml:"host,omitempty" env:"UPLOADKIT_HOST"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" toml:"port" yaml:"port,omitempty" env:"UPLOADKIT_PORT"`

	// Title is the page title.
	Title string `json:"title,omitempty" toml:"title" yaml:"title,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" toml:"level" yaml:"level,omitempty" env:"UPLOADKIT_LOG_LEVEL"`

	// Format is text or json.
	Format string `json:"format,omitempty" toml:"format" yaml:"format,omitempty" env:"UPLOADKIT_LOG_FORMAT"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from the first config file found in dir.
func Load(dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E141").
		WithDetail("No uploadkit.json, uploadkit.toml or uploadkit.yaml found in " + dir).
		WithSuggestion("Create one or pass --config")
}

// Discover loads the config in dir when there is one and falls back to
// defaults otherwise. Environment overrides apply either way.
func Discover(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if err == nil {
		return cfg, nil
	}
	if !stderrors.Is(err, errors.New("E141")) {
		return nil, err
	}
	cfg = New()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads configuration from the specified file path. The format
// follows the extension.
func LoadFile(path string) (*Config, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No configuration file at " + path)
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := &Config{}
	if err := decode(format, data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail(fmt.Sprintf("Failed to parse %s: %v", filepath.Base(path), err)).
			WithSuggestion("Check that the file is valid " + strings.ToUpper(format))
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".toml":
		return "toml", nil
	case ".yaml", ".yml":
		return "yaml", nil
	}
	return "", errors.New("E121").WithDetail("Unsupported file: " + path)
}

func decode(format string, data []byte, cfg *Config) error {
	switch format {
	case "json":
		return json.Unmarshal(data, cfg)
	case "toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

func encode(format string, cfg *Config) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return yaml.Marshal(cfg)
	}
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path in the format
// its extension names.
func (c *Config) SaveTo(path string) error {
	format, err := formatOf(path)
	if err != nil {
		return err
	}
	data, err := encode(format, c)
	if err != nil {
		return errors.New("E120").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Widget.FilesFieldName == "" {
		c.Widget.FilesFieldName = DefaultFilesField
	}
	if c.Serve.Host == "" {
		c.Serve.Host = DefaultHost
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = DefaultPort
	}
	if c.Serve.Title == "" {
		c.Serve.Title = ConfigBaseName
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// ApplyEnv overrides fields tagged with `env` from the environment.
// Empty variables are ignored.
func (c *Config) ApplyEnv() error {
	if err := applyEnv(reflect.ValueOf(c).Elem()); err != nil {
		return errors.New("E122").Wrap(err)
	}
	return nil
}

func applyEnv(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct {
			if err := applyEnv(field); err != nil {
				return err
			}
			continue
		}

		name := t.Field(i).Tag.Get("env")
		if name == "" {
			continue
		}
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := setField(field, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("cannot parse %q as integer", value)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("cannot parse %q as boolean", value)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type %v", field.Kind())
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return errors.New("E122").
			WithDetail("Port must be between 0 and 65535")
	}
	if c.Source.MaxSize < 0 {
		return errors.New("E122").
			WithDetail("Maximum file size must not be negative")
	}
	for _, sel := range []string{c.Widget.Container, c.Widget.PreviewContainer} {
		if sel == "" {
			continue
		}
		if _, err := vdom.ParseSelector(sel); err != nil {
			return errors.New("E122").
				WithDetail(fmt.Sprintf("Invalid container selector %q", sel)).
				Wrap(err)
		}
	}
	if c.Widget.EndpointURL != "" {
		u, err := url.ParseRequestURI(c.Widget.EndpointURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.New("E122").
				WithDetail(fmt.Sprintf("Endpoint %q is not an http(s) URL", c.Widget.EndpointURL)).
				WithSuggestion("Use a full URL such as https://example.com/upload")
		}
	}
	if _, ok := logLevels[strings.ToLower(c.Log.Level)]; !ok {
		return errors.New("E122").
			WithDetail(fmt.Sprintf("Unknown log level %q", c.Log.Level)).
			WithSuggestion("Use debug, info, warn or error")
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return errors.New("E122").
			WithDetail(fmt.Sprintf("Unknown log format %q", c.Log.Format)).
			WithSuggestion("Use text or json")
	}
	return nil
}

var logLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// SlogLevel returns the configured log level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	if level, ok := logLevels[strings.ToLower(c.Log.Level)]; ok {
		return level
	}
	return slog.LevelInfo
}

// ServeAddress returns the address string for the preview server.
func (c *Config) ServeAddress() string {
	return net.JoinHostPort(c.Serve.Host, strconv.Itoa(c.Serve.Port))
}

// ServeURL returns the full URL for the preview server.
func (c *Config) ServeURL() string {
	return "http://" + c.ServeAddress()
}

// SourceDir returns the source directory, relative paths resolved against
// the config file's directory.
func (c *Config) SourceDir() string {
	if c.Source.Dir == "" || filepath.IsAbs(c.Source.Dir) || c.Dir() == "" {
		return c.Source.Dir
	}
	return filepath.Join(c.Dir(), c.Source.Dir)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range ConfigFileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the nearest directory
// holding a config file.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No uploadkit config found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}
