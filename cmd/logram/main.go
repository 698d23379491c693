package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/standardbeagle/logram/internal/config"
	"github.com/standardbeagle/logram/internal/debug"
	logerrors "github.com/standardbeagle/logram/internal/errors"
	"github.com/standardbeagle/logram/internal/logformat"
	"github.com/standardbeagle/logram/internal/metrics"
	"github.com/standardbeagle/logram/internal/ngram"
	"github.com/standardbeagle/logram/internal/pkgdict"
	"github.com/standardbeagle/logram/internal/resolver"
	"github.com/standardbeagle/logram/internal/types"
	"github.com/standardbeagle/logram/internal/verifier"
	"github.com/standardbeagle/logram/internal/version"

	"github.com/urfave/cli/v2"
)

var Version = version.Version

// loadConfigWithOverrides loads configuration and applies CLI flag overrides,
// matching the two-tier (global + project) KDL config layering.
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if root := c.String("root"); root != "" {
		cfg.Project.Root = root
	}
	if threads := c.Int("threads"); threads > 0 {
		cfg.Parallelism.NumThreads = threads
	}
	if c.Bool("single-map") {
		cfg.Aggregation.SingleMap = true
	}
	if server := c.String("server"); server != "" {
		cfg.Verifier.Server = server
	}
	if customFormats := c.String("custom-formats"); customFormats != "" {
		cfg.CustomFormatsPath = customFormats
	}

	return cfg, nil
}

func main() {
	app := &cli.App{
		Name:    "logram",
		Usage:   "Parallel log-template n-gram mining and package dependency resolution",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (ignored: .logram.kdl is always read from the current directory, else from the home directory)",
				Value:   ".logram.kdl",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root directory (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Write component-tagged debug output to a temp file and print its path",
			},
		},
		Commands: []*cli.Command{
			ngramCommand,
			pkgCommand,
		},
		Before: func(c *cli.Context) error {
			if !c.Bool("debug") {
				return nil
			}
			os.Setenv("DEBUG", "1")
			path, err := debug.InitDebugLogFile()
			if err != nil {
				return fmt.Errorf("failed to init debug log: %w", err)
			}
			fmt.Fprintf(os.Stderr, "debug log: %s\n", path)
			return nil
		},
		After: func(c *cli.Context) error {
			return debug.CloseDebugLog()
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var ngramCommand = &cli.Command{
	Name:  "ngram",
	Usage: "Build pair/triple n-gram dictionaries from raw log files",
	Subcommands: []*cli.Command{
		{
			Name:      "parse",
			Usage:     "Tokenize a raw log file and build its n-gram dictionary",
			ArgsUsage: "<raw-log-file>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "format",
					Aliases:  []string{"f"},
					Usage:    "Log format name (Linux, OpenStack, Spark, HDFS, HPC, Proxifier, Android, HealthApp, or a custom name)",
					Required: true,
				},
				&cli.IntFlag{
					Name:    "threads",
					Aliases: []string{"t"},
					Usage:   "Number of parallel chunks (0 = use config default)",
				},
				&cli.BoolFlag{
					Name:  "single-map",
					Usage: "Use the partitioned map-reduce aggregator instead of the shared-concurrent one",
				},
				&cli.StringFlag{
					Name:  "custom-formats",
					Usage: "Path to a TOML file of custom log formats",
				},
				&cli.BoolFlag{
					Name:    "verbose",
					Aliases: []string{"v"},
					Usage:   "Print run statistics after parsing",
				},
			},
			Action: ngramParseCommand,
		},
		{
			Name:  "formats",
			Usage: "List the built-in log formats (custom formats are loaded and checked, not listed)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "custom-formats",
					Usage: "Path to a TOML file of custom log formats",
				},
			},
			Action: ngramFormatsCommand,
		},
	},
}

var pkgCommand = &cli.Command{
	Name:  "pkg",
	Usage: "Debian-style package dependency resolution and checksum verification",
	Subcommands: []*cli.Command{
		{
			Name:  "deps",
			Usage: "Print the dependency-availability report for a package",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "installed",
					Usage:    "Path to the installed-packages control file",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "packages",
					Usage:    "Path to the available-packages control file",
					Required: true,
				},
			},
			ArgsUsage: "<package-name>",
			Action:    pkgDepsCommand,
		},
		{
			Name:  "install-plan",
			Usage: "Compute the transitive set of packages to install",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "installed",
					Usage:    "Path to the installed-packages control file",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "packages",
					Usage:    "Path to the available-packages control file",
					Required: true,
				},
			},
			ArgsUsage: "<package-name>",
			Action:    pkgInstallPlanCommand,
		},
		{
			Name:  "verify",
			Usage: "Verify installed package checksums against a remote checksum service",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "installed",
					Usage:    "Path to the installed-packages control file",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "server",
					Usage: "Checksum service host:port (overrides config)",
				},
				&cli.IntFlag{
					Name:  "poll-timeout",
					Usage: "Per-request timeout in seconds",
					Value: 10,
				},
			},
			Action: pkgVerifyCommand,
		},
	},
}

func ngramParseCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: logram ngram parse <raw-log-file> --format <name>")
	}
	rawFile := c.Args().First()

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	registry := logformat.NewRegistry()
	if cfg.CustomFormatsPath != "" {
		if err := logformat.LoadCustomFormats(registry, cfg.CustomFormatsPath); err != nil {
			return err
		}
	}

	lf, ok := registry.Get(types.LogFormatName(c.String("format")))
	if !ok {
		return fmt.Errorf("unknown log format %q", c.String("format"))
	}

	stats := metrics.NewRunStats()
	dict, err := ngram.ParseRaw(rawFile, lf, cfg.Aggregation.SingleMap, cfg.Parallelism.NumThreads, stats)
	if err != nil {
		return err
	}

	fmt.Printf("tokens: %d, pairs: %d, triples: %d\n", len(dict.Tokens), len(dict.Pairs), len(dict.Triples))

	if c.Bool("verbose") {
		snap := stats.Snapshot()
		fmt.Printf("lines scanned: %d, chunks planned: %d, elapsed: %s\n",
			snap.LinesScanned, snap.ChunksPlanned, snap.Elapsed)
	}

	printTopCounts("pairs", dict.Pairs, 20)
	printTopCounts("triples", dict.Triples, 20)

	return nil
}

func printTopCounts(label string, counts map[string]int, limit int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	fmt.Printf("\ntop %s:\n", label)
	for i, k := range keys {
		if i >= limit {
			break
		}
		fmt.Printf("  %s: %d\n", k, counts[k])
	}
}

func ngramFormatsCommand(c *cli.Context) error {
	registry := logformat.NewRegistry()
	if customFormats := c.String("custom-formats"); customFormats != "" {
		if err := logformat.LoadCustomFormats(registry, customFormats); err != nil {
			return err
		}
	}
	for _, name := range []types.LogFormatName{
		types.FormatLinux, types.FormatOpenStack, types.FormatSpark, types.FormatHDFS,
		types.FormatHPC, types.FormatProxifier, types.FormatAndroid, types.FormatHealthApp,
	} {
		lf, _ := registry.Get(name)
		fmt.Printf("%s: %s\n", lf.Name, lf.Template)
	}
	return nil
}

func loadStore(installedPath, packagesPath string) (*pkgdict.Store, error) {
	store := pkgdict.NewStore()
	if err := store.ParseInstalled(installedPath); err != nil {
		return nil, err
	}
	if packagesPath != "" {
		if err := store.ParsePackages(packagesPath); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func pkgDepsCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: logram pkg deps <package-name> --installed <file> --packages <file>")
	}
	packageName := c.Args().First()

	store, err := loadStore(c.String("installed"), c.String("packages"))
	if err != nil {
		return err
	}

	r := resolver.New(store)
	for _, line := range r.DepsAvailable(packageName) {
		fmt.Println(line.Text)
	}
	return nil
}

func pkgInstallPlanCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: logram pkg install-plan <package-name> --installed <file> --packages <file>")
	}
	packageName := c.Args().First()

	store, err := loadStore(c.String("installed"), c.String("packages"))
	if err != nil {
		return err
	}

	r := resolver.New(store)
	plan := r.ComputeHowToInstall(packageName)
	if len(plan) == 0 {
		fmt.Println("nothing to install")
		return nil
	}
	for _, num := range plan {
		name, _ := store.GetPackageName(num)
		fmt.Println(name)
	}
	return nil
}

func pkgVerifyCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	store, err := loadStore(c.String("installed"), "")
	if err != nil {
		return err
	}

	server := cfg.Verifier.Server
	if server == "" {
		return logerrors.NewConfigurationError("server", fmt.Errorf("no checksum service configured; pass --server or set verifier.server"))
	}

	pollTimeout := time.Duration(c.Int("poll-timeout")) * time.Second
	if pollTimeout <= 0 {
		pollTimeout = time.Duration(cfg.Verifier.PollTimeoutSec) * time.Second
	}

	stats := metrics.NewVerifyStats()
	v := verifier.New(server, store, pollTimeout, stats)

	for _, pkg := range store.AllPackageNames() {
		num, _ := store.GetPackageNum(pkg)
		installedVersion, ok := store.GetInstalledVersion(num)
		if !ok {
			continue
		}
		v.Enqueue(num, pkg, installedVersion)
	}

	outcomes, err := v.Execute(context.Background())
	if err != nil {
		return err
	}

	for _, o := range outcomes {
		fmt.Println(verifier.OutputLine(o))
	}

	snap := stats.Snapshot()
	fmt.Printf("\nenqueued: %d, matched: %d, mismatched: %d, errored: %d\n",
		snap.Enqueued, snap.Succeeded, snap.Mismatched, snap.Errored)

	return nil
}
