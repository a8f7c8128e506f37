// Package config collects the CI metadata a dependency snapshot needs.
//
// Configuration is read once at startup from three layers, lowest precedence
// first:
//
//  1. an optional TOML file (default .condadeps.toml)
//  2. an optional dotenv file (default .env), read without touching the
//     process environment
//  3. the process environment
//
// [Load] validates everything in one pass and reports every missing or
// invalid setting in a single error, so a misconfigured workflow fails once
// with the full list instead of on the first unset variable.
//
// Example .condadeps.toml:
//
//	[github]
//	repository = "octo/vision"
//	api_url = "https://ghe.example.com/api/v3"
//	server_url = "https://ghe.example.com"
//
//	[detector]
//	name = "condadeps"
//	version = "1.4.0"
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/condadeps/pkg/errors"
)

const (
	DefaultConfigFile = ".condadeps.toml"
	DefaultEnvFile    = ".env"
	DefaultAPIURL     = "https://api.github.com"
	DefaultServerURL  = "https://github.com"
)

// Environment variable names.
const (
	EnvCommitSHA       = "COMMIT_SHA"
	EnvRef             = "GITHUB_REF"
	EnvWorkflow        = "GITHUB_WORKFLOW"
	EnvJob             = "GITHUB_JOB"
	EnvRepository      = "GITHUB_REPOSITORY"
	EnvDetectorName    = "BINARY_NAME"
	EnvDetectorVersion = "PKG_VERSION"
	EnvToken           = "GITHUB_TOKEN"
	EnvAPIURL          = "GITHUB_API_URL"
	EnvServerURL       = "GITHUB_SERVER_URL"
)

// Config is the validated run configuration.
type Config struct {
	CommitSHA       string // Commit the snapshot describes
	Ref             string // Git ref, e.g. refs/heads/main
	Workflow        string // Workflow name, first half of the job correlator
	Job             string // Job name, job id and second half of the correlator
	Repository      string // owner/repo
	DetectorName    string
	DetectorVersion string
	Token           string // Bearer token; empty unless submitting
	APIURL          string // REST API base URL
	ServerURL       string // Web base URL used for the detector link
}

// Owner returns the owner half of Repository.
func (c Config) Owner() string {
	owner, _, _ := strings.Cut(c.Repository, "/")
	return owner
}

// Repo returns the repository half of Repository.
func (c Config) Repo() string {
	_, repo, _ := strings.Cut(c.Repository, "/")
	return repo
}

// LookupFunc reads a variable from the process environment.
type LookupFunc func(key string) (string, bool)

// LoadOptions controls where [Load] reads from.
type LoadOptions struct {
	ConfigFile   string     // TOML file; a missing file is ignored
	EnvFile      string     // dotenv file; a missing file is ignored
	Lookup       LookupFunc // Defaults to os.LookupEnv
	RequireToken bool       // Whether GITHUB_TOKEN must be set
}

// fileConfig mirrors the TOML file layout.
type fileConfig struct {
	GitHub struct {
		CommitSHA  string `toml:"commit_sha"`
		Ref        string `toml:"ref"`
		Workflow   string `toml:"workflow"`
		Job        string `toml:"job"`
		Repository string `toml:"repository"`
		APIURL     string `toml:"api_url"`
		ServerURL  string `toml:"server_url"`
	} `toml:"github"`
	Detector struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"detector"`
}

// setting binds one environment variable to a Config field.
type setting struct {
	env      string
	field    func(*Config) *string
	file     func(*fileConfig) string
	required bool
}

var settings = []setting{
	{EnvCommitSHA, func(c *Config) *string { return &c.CommitSHA }, func(f *fileConfig) string { return f.GitHub.CommitSHA }, true},
	{EnvRef, func(c *Config) *string { return &c.Ref }, func(f *fileConfig) string { return f.GitHub.Ref }, true},
	{EnvWorkflow, func(c *Config) *string { return &c.Workflow }, func(f *fileConfig) string { return f.GitHub.Workflow }, true},
	{EnvJob, func(c *Config) *string { return &c.Job }, func(f *fileConfig) string { return f.GitHub.Job }, true},
	{EnvRepository, func(c *Config) *string { return &c.Repository }, func(f *fileConfig) string { return f.GitHub.Repository }, true},
	{EnvDetectorName, func(c *Config) *string { return &c.DetectorName }, func(f *fileConfig) string { return f.Detector.Name }, true},
	{EnvDetectorVersion, func(c *Config) *string { return &c.DetectorVersion }, func(f *fileConfig) string { return f.Detector.Version }, true},
	{EnvToken, func(c *Config) *string { return &c.Token }, nil, false},
	{EnvAPIURL, func(c *Config) *string { return &c.APIURL }, func(f *fileConfig) string { return f.GitHub.APIURL }, false},
	{EnvServerURL, func(c *Config) *string { return &c.ServerURL }, func(f *fileConfig) string { return f.GitHub.ServerURL }, false},
}

// Load reads and validates the configuration.
//
// A missing required setting yields MISSING_CONFIG naming every absent
// variable. A malformed file or an unusable value yields INVALID_CONFIG.
func Load(opts LoadOptions) (*Config, error) {
	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	file, err := readFile(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	dotenv, err := readDotenv(opts.EnvFile)
	if err != nil {
		return nil, err
	}

	cfg := &Config{APIURL: DefaultAPIURL, ServerURL: DefaultServerURL}
	var missing []string
	for _, s := range settings {
		v := firstNonEmpty(lookupValue(lookup, s.env), dotenv[s.env], fileValue(file, s))
		if v != "" {
			*s.field(cfg) = v
		}
		required := s.required || (s.env == EnvToken && opts.RequireToken)
		if required && *s.field(cfg) == "" {
			missing = append(missing, s.env)
		}
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")

	invalid := cfg.validate()
	switch {
	case len(missing) > 0:
		msg := "missing required configuration: " + strings.Join(missing, ", ")
		if len(invalid) > 0 {
			msg += "; " + strings.Join(invalid, "; ")
		}
		return nil, errors.New(errors.ErrCodeMissingConfig, "%s", msg)
	case len(invalid) > 0:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s", strings.Join(invalid, "; "))
	}
	return cfg, nil
}

// validate checks values that are present. Missing values are reported by Load.
func (c *Config) validate() []string {
	var problems []string
	if c.Repository != "" {
		if c.Owner() == "" || c.Repo() == "" || strings.Contains(c.Repo(), "/") {
			problems = append(problems, fmt.Sprintf("%s must be owner/repo, got %q", EnvRepository, c.Repository))
		}
	}
	if err := errors.ValidateURL(c.APIURL); err != nil {
		problems = append(problems, EnvAPIURL+": "+errors.UserMessage(err))
	}
	if err := errors.ValidateURL(c.ServerURL); err != nil {
		problems = append(problems, EnvServerURL+": "+errors.UserMessage(err))
	}
	return problems
}

func readFile(path string) (*fileConfig, error) {
	if path == "" {
		return nil, nil
	}
	var f fileConfig
	md, err := toml.DecodeFile(path, &f)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return &f, nil
}

func readDotenv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return values, nil
}

func lookupValue(lookup LookupFunc, key string) string {
	v, _ := lookup(key)
	return strings.TrimSpace(v)
}

func fileValue(f *fileConfig, s setting) string {
	if f == nil || s.file == nil {
		return ""
	}
	return strings.TrimSpace(s.file(f))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
