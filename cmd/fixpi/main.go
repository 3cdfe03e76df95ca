package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/fixpi/internal/cliconfig"
	"github.com/bft-labs/fixpi/internal/domain"
	"github.com/bft-labs/fixpi/pkg/fixpi"
	"github.com/bft-labs/fixpi/pkg/log"
)

const longHelp = `
Copy T10-PI protected sectors and disable the protection information of
every sector by overwriting its 8 byte interval with 0xff.

The source holds records of <data-size>+8 bytes, as produced by
"ddpt ... --protect=3". The destination receives the same records with the
protection interval disabled, ready for "ddpt ... --protect=0,3". The
optional data destination receives only the user data, typically a pipe
into a checksum program.

/dev/stdin and /dev/stdout are valid paths. Diagnostics go to stderr only.

Only tested with Type 2 protection. Operate on clones.
`

var exampleUsage = strings.TrimSpace(`
  fixpi sde.pi sdr.pi
  ddpt if=/dev/sde of=- iflag=pt bs=4096 --protect=3 | fixpi /dev/stdin /dev/stdout >(sha256sum > sde.sha256) | ddpt if=- of=/dev/sdr oflag=pt bs=4096 --protect=0,3
  fixpi --data-size 512 --digest in.pi out.pi
`)

// errFailed reports a pass that already logged its own error.
var errFailed = errors.New("run failed")

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stderr io.Writer) int {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	zl := cliconfig.Logger(stderr, cfg.LogLevel)

	root := &cobra.Command{
		Use:           "fixpi <source> <destination> [data-destination]",
		Short:         "Copy T10-PI protected sectors and disable their protection information",
		Long:          strings.TrimSpace(longHelp),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 && len(args) != 3 {
				return fmt.Errorf("%w: expected 2 or 3 arguments, got %d", domain.ErrUsage, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cliconfig.ApplyFileConfig(&cfg, fc, changed)
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			zl = cliconfig.Logger(stderr, cfg.LogLevel)
			zl.Debug().Interface("config", cfg).Msg("configuration")

			libCfg := fixpi.Config{
				Source:        args[0],
				Destination:   args[1],
				DataSize:      cfg.DataSize,
				ProgressEvery: uint64(cfg.ProgressEvery),
				Digest:        cfg.Digest,
			}
			if len(args) == 3 {
				libCfg.DataDestination = args[2]
			}

			report := fixpi.Run(context.Background(), libCfg,
				fixpi.WithLogger(log.NewZerologAdapterWithLogger(zl)))
			if !report.Outcome.OK() {
				return errFailed
			}
			return nil
		},
	}
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	// Either destination may be stdout, so help and usage go to stderr too.
	root.SetOut(stderr)
	root.SetErr(stderr)

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.fixpi/config.toml)")
	root.Flags().IntVar(&cfg.DataSize, "data-size", cfg.DataSize, "user data bytes per sector (512 or 4096)")
	root.Flags().IntVar(&cfg.ProgressEvery, "progress-every", cfg.ProgressEvery, "sectors between progress lines (0 disables)")
	root.Flags().BoolVar(&cfg.Digest, "digest", cfg.Digest, "report a BLAKE3 digest of the user data")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	err := root.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errFailed):
	case errors.Is(err, domain.ErrUsage):
		zl.Error().Err(err).Msg("fixpi")
		fmt.Fprint(stderr, root.UsageString())
	default:
		zl.Error().Err(err).Msg("fixpi")
	}
	return 1
}
