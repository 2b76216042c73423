package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/user/clip-trimmer/clip"
)

const (
	// AppName names the config and data directories.
	AppName = "clip-trimmer"
	// DefaultConfigDir is the configuration directory relative to home.
	DefaultConfigDir = ".config/" + AppName
	// DefaultDataDir holds the log file and render history relative to home.
	DefaultDataDir = ".local/share/" + AppName
	// ConfigFileName is the name of the configuration file
	ConfigFileName = "config.json"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "CLIP_TRIMMER_"
)

// Config holds the application configuration. Zero-valued fields fall back
// to the defaults applied by Load.
type Config struct {
	// OutputDir is where clips are written. Empty means next to the source video.
	OutputDir   string `json:"output_dir,omitempty"`
	FfmpegPath  string `json:"ffmpeg_path,omitempty"`
	FfprobePath string `json:"ffprobe_path,omitempty"`
	MpvPath     string `json:"mpv_path,omitempty"`
	MpvSocket   string `json:"mpv_socket,omitempty"`
	LogLevel    string `json:"log_level,omitempty"`
	LogFile     string `json:"log_file,omitempty"`
	DBPath      string `json:"db_path,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	data := GetDataDir()
	return Config{
		FfmpegPath:  "ffmpeg",
		FfprobePath: "ffprobe",
		MpvPath:     "mpv",
		MpvSocket:   filepath.Join(os.TempDir(), AppName+"-mpv.sock"),
		LogLevel:    "info",
		LogFile:     filepath.Join(data, AppName+".log"),
		DBPath:      filepath.Join(data, "history.db"),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigDir
	}
	return filepath.Join(home, DefaultConfigDir)
}

// GetDataDir returns the directory for logs and the history database.
func GetDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}

// GetConfigPath returns the config file path. CLIP_TRIMMER_CONFIG overrides it.
func GetConfigPath() string {
	return getEnv(EnvPrefix+"CONFIG", filepath.Join(GetConfigDir(), ConfigFileName))
}

// Load reads the configuration: defaults, then the config file, then a .env
// file in the working directory, then CLIP_TRIMMER_* environment variables.
func Load() (*Config, error) {
	// godotenv.Load never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return LoadFile(GetConfigPath())
}

// LoadFile reads the configuration from path, applying defaults for missing
// fields and environment overrides on top. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		var fromFile Config
		if err := json.Unmarshal(data, &fromFile); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		cfg.merge(fromFile)
	}

	cfg.applyEnv()
	return &cfg, nil
}

// Save writes the configuration to path, creating its directory.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// merge copies the non-empty fields of other into c.
func (c *Config) merge(other Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.OutputDir, other.OutputDir)
	set(&c.FfmpegPath, other.FfmpegPath)
	set(&c.FfprobePath, other.FfprobePath)
	set(&c.MpvPath, other.MpvPath)
	set(&c.MpvSocket, other.MpvSocket)
	set(&c.LogLevel, other.LogLevel)
	set(&c.LogFile, other.LogFile)
	set(&c.DBPath, other.DBPath)
}

func (c *Config) applyEnv() {
	c.OutputDir = getEnv(EnvPrefix+"OUTPUT_DIR", c.OutputDir)
	c.FfmpegPath = getEnv(EnvPrefix+"FFMPEG_PATH", c.FfmpegPath)
	c.FfprobePath = getEnv(EnvPrefix+"FFPROBE_PATH", c.FfprobePath)
	c.MpvPath = getEnv(EnvPrefix+"MPV_PATH", c.MpvPath)
	c.MpvSocket = getEnv(EnvPrefix+"MPV_SOCKET", c.MpvSocket)
	c.LogLevel = getEnv(EnvPrefix+"LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv(EnvPrefix+"LOG_FILE", c.LogFile)
	c.DBPath = getEnv(EnvPrefix+"DB_PATH", c.DBPath)
}

// getEnv gets an environment variable or returns a default value.
// An empty variable counts as unset.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// ResolveOutputDir returns the directory clips of sourcePath are written to.
func (c *Config) ResolveOutputDir(sourcePath string) string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return clip.DefaultOutputDir(sourcePath)
}
