package settings

import (
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	yaml "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables read by LoadFromEnv.
const EnvPrefix = "iap_cli"

// Config is used to represent the current state of a CLI instance.
type Config struct {
	Host  string `yaml:"host"`
	Port  int    `yaml:"port"`
	Token string `yaml:"token"`
	HTTPS bool   `yaml:"https"`
	// Timeout bounds a whole request. Zero disables it.
	Timeout  time.Duration `yaml:"timeout" default:"30s"`
	Output   string        `yaml:"output" default:"json"`
	Debug    bool          `yaml:"-"`
	FileUsed string        `yaml:"-"`
}

// New returns a Config populated with defaults.
func New() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "applying config defaults")
	}
	return cfg, nil
}

// Load will read the config from the user's disk and then evaluate possible configuration from the environment.
func (cfg *Config) Load(fs afero.Fs) error {
	if err := cfg.LoadFromDisk(fs); err != nil {
		return err
	}

	return cfg.LoadFromEnv(EnvPrefix)
}

// LoadFromDisk is used to read config from the user's disk and deserialize the YAML into our runtime config.
// The settings file is created empty when missing.
func (cfg *Config) LoadFromDisk(fs afero.Fs) error {
	path := filepath.Join(SettingsPath(), configFilename())

	if err := ensureSettingsFileExists(fs, path); err != nil {
		return errors.Wrapf(err, "preparing %s", path)
	}

	return cfg.readFile(fs, path)
}

// ReadFromDisk is LoadFromDisk without side effects: a missing settings file is left missing.
func (cfg *Config) ReadFromDisk(fs afero.Fs) error {
	path := filepath.Join(SettingsPath(), configFilename())

	exists, err := afero.Exists(fs, path)
	if err != nil || !exists {
		return errors.Wrapf(err, "checking %s", path)
	}

	return cfg.readFile(fs, path)
}

func (cfg *Config) readFile(fs afero.Fs, path string) error {
	cfg.FileUsed = path

	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	if err := yaml.Unmarshal(content, cfg); err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}
	return nil
}

// LoadFromEnv will read from environment variables of the given prefix for the platform connection settings.
func (cfg *Config) LoadFromEnv(prefix string) error {
	if host := ReadFromEnv(prefix, "host"); host != "" {
		cfg.Host = host
	}

	if token := ReadFromEnv(prefix, "token"); token != "" {
		cfg.Token = token
	}

	if port := ReadFromEnv(prefix, "port"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return errors.Wrapf(err, "invalid %s_PORT", strings.ToUpper(prefix))
		}
		cfg.Port = p
	}

	if https := ReadFromEnv(prefix, "https"); https != "" {
		b, err := strconv.ParseBool(https)
		if err != nil {
			return errors.Wrapf(err, "invalid %s_HTTPS", strings.ToUpper(prefix))
		}
		cfg.HTTPS = b
	}

	if timeout := ReadFromEnv(prefix, "timeout"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return errors.Wrapf(err, "invalid %s_TIMEOUT", strings.ToUpper(prefix))
		}
		cfg.Timeout = d
	}

	return nil
}

// ReadFromEnv takes a prefix and field to search the environment for after capitalizing and joining them with an underscore.
func ReadFromEnv(prefix, field string) string {
	name := strings.Join([]string{prefix, field}, "_")
	return os.Getenv(strings.ToUpper(name))
}

// configFilename returns the name of the cli config file
func configFilename() string {
	return "cli.yml"
}

// SettingsPath returns the path of the CLI settings directory
func SettingsPath() string {
	home, _ := os.UserHomeDir()
	return path.Join(home, ".iap")
}

// ensureSettingsFileExists does just that.
func ensureSettingsFileExists(fs afero.Fs, path string) error {
	_, err := fs.Stat(path)

	if err == nil {
		return nil
	}

	if !os.IsNotExist(err) {
		// Filesystem error
		return err
	}

	dir := filepath.Dir(path)

	if err = fs.MkdirAll(dir, 0700); err != nil {
		return err
	}

	f, err := fs.Create(path)
	if err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	return fs.Chmod(path, 0600)
}

// RegisterFlags adds the connection flags read by LoadFromFlags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("host", "", "FQDN or IP address of the Itential Automation Platform")
	flags.Int("port", 0, "API port of the Itential Automation Platform")
	flags.String("token", "", "Token used to authenticate against the platform")
	flags.Bool("https", false, "Use HTTPS instead of HTTP")
	flags.Duration("timeout", 0, "Request timeout, 0 disables it (default 30s)")
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
}

// LoadFromFlags overlays every flag the user set explicitly.
func (cfg *Config) LoadFromFlags(flags *pflag.FlagSet) error {
	var err error
	if flags.Changed("host") {
		cfg.Host, err = flags.GetString("host")
	}
	if err == nil && flags.Changed("port") {
		cfg.Port, err = flags.GetInt("port")
	}
	if err == nil && flags.Changed("token") {
		cfg.Token, err = flags.GetString("token")
	}
	if err == nil && flags.Changed("https") {
		cfg.HTTPS, err = flags.GetBool("https")
	}
	if err == nil && flags.Changed("timeout") {
		cfg.Timeout, err = flags.GetDuration("timeout")
	}
	if err == nil && flags.Changed("verbose") {
		cfg.Debug, err = flags.GetBool("verbose")
	}
	return errors.Wrap(err, "reading flags")
}
