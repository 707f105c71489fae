package options

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/berkguzel/slsperm/internal/logutil"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
)

// Output formats.
const (
	OutputJSON     = "json"
	OutputYAML     = "yaml"
	OutputCLIInput = "cli-input"
	OutputTable    = "table"
)

const configEnv = "SLSPERM_CONFIG"

type Options struct {
	ConfigFile string
	Output     string
	OutFile    string
	Stage      string
	Region     string
	Profile    string
	PolicyName string
	RiskOnly   bool
	Review     bool
	LogLevel   string
}

func NewOptions() *Options {
	// Check SLSPERM_CONFIG env var first
	configFile := ""
	if envPath := os.Getenv(configEnv); envPath != "" {
		configFile = envPath
	} else {
		// Fall back to default path
		home, _ := homedir.Dir()
		configFile = filepath.Join(home, ".slsperm.yaml")
	}

	return &Options{
		ConfigFile: configFile,
		Output:     OutputJSON,
		LogLevel:   logutil.DefaultLogLevel,
	}
}

// Parse reads args (without the program name) into o. It returns
// pflag.ErrHelp when help was requested.
func (o *Options) Parse(args []string) error {
	fs := pflag.NewFlagSet("slsperm", pflag.ContinueOnError)
	fs.StringVarP(&o.ConfigFile, "config", "c", o.ConfigFile, "project configuration file (YAML or JSON)")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "output format: json, yaml, cli-input or table")
	fs.StringVarP(&o.OutFile, "out-file", "f", o.OutFile, "write the output to this file instead of stdout")
	fs.StringVar(&o.Stage, "stage", o.Stage, "override the stage from the config file")
	fs.StringVar(&o.Region, "region", o.Region, "override the region from the config file")
	fs.StringVar(&o.Profile, "profile", o.Profile, "shared AWS config profile used to look up a missing region")
	fs.StringVar(&o.PolicyName, "policy-name", o.PolicyName, "policy name (default {projectName}-{stage}-{region}-deployer)")
	fs.BoolVarP(&o.RiskOnly, "risk-only", "r", o.RiskOnly, "table output lists broad and high-risk permissions only")
	fs.BoolVar(&o.Review, "review", o.Review, "print review warnings to stderr")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	switch o.Output {
	case OutputJSON, OutputYAML, OutputCLIInput, OutputTable:
	default:
		return fmt.Errorf("unknown output format %q", o.Output)
	}
	return nil
}
