package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/berkguzel/slsperm/internal/config"
	"github.com/berkguzel/slsperm/internal/logutil"
	"github.com/berkguzel/slsperm/internal/options"
	"github.com/berkguzel/slsperm/pkg/analyzer"
	"github.com/berkguzel/slsperm/pkg/aws"
	"github.com/berkguzel/slsperm/pkg/policy"
	"github.com/berkguzel/slsperm/pkg/printer"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func main() {
	os.Exit(runMain(os.Args[1:], os.Stdout, os.Stderr))
}

// runMain returns the process exit code so that deferred calls, such as
// flushing the logger, run before main exits.
func runMain(args []string, stdout, stderr io.Writer) int {
	opts := options.NewOptions()
	if err := opts.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	lg, err := logutil.New(opts.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	defer lg.Sync()

	if err := run(context.Background(), lg, opts, stdout, stderr); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func run(ctx context.Context, lg *zap.Logger, opts *options.Options, stdout, stderr io.Writer) (err error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return err
	}
	lg.Debug("loaded config", zap.String("path", opts.ConfigFile), zap.String("project", cfg.ProjectName))

	// Flags override the file
	if opts.Stage != "" {
		cfg.Stage = opts.Stage
	}
	if opts.Region != "" {
		cfg.Region = opts.Region
	}
	if cfg.Region == "" {
		region, err := aws.ResolveRegion(ctx, opts.Profile)
		if err != nil {
			return err
		}
		lg.Info("resolved region from AWS configuration", zap.String("region", region))
		cfg.Region = region
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config %s: %w", opts.ConfigFile, err)
	}

	name := opts.PolicyName
	if name == "" {
		name = policy.DefaultPolicyName(*cfg)
	}

	doc := policy.Generate(*cfg)
	report := analyzer.New().Analyze(name, doc)
	lg.Info("generated policy",
		zap.String("policy", name),
		zap.Int("statements", len(doc.Statement)),
		zap.Int("warnings", len(report.Warnings)),
	)

	out := stdout
	if opts.OutFile != "" {
		path, expandErr := homedir.Expand(opts.OutFile)
		if expandErr != nil {
			return fmt.Errorf("failed to expand output path %q: %w", opts.OutFile, expandErr)
		}
		f, createErr := os.Create(path)
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		// f.Close reports delayed write failures
		defer func() {
			err = multierr.Append(err, f.Close())
		}()
		out = f
		lg.Debug("writing output", zap.String("path", path), zap.String("format", opts.Output))
	}

	err = printer.New(out).Print(printer.Result{
		Name:     name,
		Config:   *cfg,
		Document: doc,
		Report:   report,
	}, opts)
	if err != nil {
		return err
	}

	if opts.Review {
		printer.PrintReview(stderr, report)
	}
	return nil
}
