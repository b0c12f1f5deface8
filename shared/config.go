package shared

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/tailscale/hujson"
)

const (
	deeplKeyVarName = "DEEPL_AUTH_KEY"        // Fallback for secrets.deepl_auth_key
	devConfigPath   = "dev/config.dev.jsonc"  // Config file in development environment
	devSecretsPath  = "dev/secrets.dev.jsonc" // Secrets file in development environment
)

type Config struct {
	Secrets            Secrets  `json:"-"`
	DryRun             bool     `json:"-"`
	Once               bool     `json:"-"`
	LogFile            string   `json:"log_file"`
	LogLevel           string   `json:"log_level"`
	FeedUrl            string   `json:"feed_url"`
	Handle             string   `json:"handle"`
	Pds                string   `json:"pds"`
	MetricsPort        uint     `json:"metrics_port"`
	PathOnly           []string `json:"path_only"`
	TranslateSource    string   `json:"translate_source"`
	TranslateTarget    string   `json:"translate_target"`
	TranslationPretext string   `json:"translation_pretext"`
	CategoryFormatFile string   `json:"category_format_file"`
	SpreadSeconds      int      `json:"spread_seconds"`
	RunIntervalMinutes int      `json:"run_interval_minutes"`
}

type Secrets struct {
	BskyIdentifier  string `json:"bsky_identifier"`
	BskyAppPassword string `json:"bsky_app_password"`
	DeeplAuthKey    string `json:"deepl_auth_key"`
	MetricsAuth     string `json:"metrics_auth"`
}

// A single category-to-template rule. Rules are kept as an ordered list and
// evaluated first-match-wins; templates support {title} and {category}.
type CategoryFormat struct {
	Category string `json:"category"`
	Template string `json:"template"`
}

type CmdOptions struct {
	Config  string `long:"config" env:"CONFIG" description:"Path to config JSONC file"`
	Secrets string `long:"secrets" env:"SECRETS" description:"Path to secrets JSONC file"`
	Once    bool   `long:"once" description:"Run a single pass and exit, ignoring run_interval_minutes"`
	DryRun  bool   `long:"dry-run" env:"DEBUG_MODE" description:"Compose posts but skip posting and blob uploads"`
}

func ParseCmdOptions() *CmdOptions {
	var opts CmdOptions
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}
	return &opts
}

func LoadConfig(opts *CmdOptions) *Config {

	// Where are our config and secrets files?
	cfgPath := opts.Config
	if len(cfgPath) == 0 {
		cfgPath = devConfigPath
	}
	secretsPath := opts.Secrets
	if len(secretsPath) == 0 {
		secretsPath = devSecretsPath
	}

	// Read config file
	var config Config
	mustDeserializeFile(cfgPath, &config)
	// Read secrets member from secrets file
	mustDeserializeFile(secretsPath, &config.Secrets)

	config.DryRun = opts.DryRun
	config.Once = opts.Once
	if config.Secrets.DeeplAuthKey == "" {
		config.Secrets.DeeplAuthKey = os.Getenv(deeplKeyVarName)
	}
	if config.TranslateSource == "" {
		config.TranslateSource = "auto"
	}
	if config.TranslationPretext == "" {
		config.TranslationPretext = "Original:"
	}
	return &config
}

// LoadCategoryFormats reads the ordered category-to-template rules from a
// JSONC file. An empty path yields no rules; that is not an error.
func LoadCategoryFormats(path string) ([]CategoryFormat, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw, err = standardizeJSON(raw)
	if err != nil {
		return nil, err
	}
	var formats []CategoryFormat
	if err := json.Unmarshal(raw, &formats); err != nil {
		return nil, err
	}
	for i := range formats {
		formats[i].Category = strings.TrimSpace(formats[i].Category)
	}
	return formats, nil
}

func mustDeserializeFile[T any](fileName string, obj *T) {
	var err error
	var cfgJson []byte
	cfgJson, err = os.ReadFile(fileName)
	if err != nil {
		log.Fatal(err)
	}
	// JSONC => JSON
	cfgJson, err = standardizeJSON(cfgJson)
	if err != nil {
		log.Fatal(err)
	}
	// Parse
	if err := json.Unmarshal(cfgJson, obj); err != nil {
		log.Fatal(err)
	}
}

func standardizeJSON(b []byte) ([]byte, error) {
	ast, err := hujson.Parse(b)
	if err != nil {
		return b, err
	}
	ast.Standardize()
	return ast.Pack(), nil
}
