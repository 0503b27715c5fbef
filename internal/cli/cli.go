package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/assetgate/internal/app"
	"github.com/specialistvlad/assetgate/internal/envconfig"
)

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Parse processes command-line arguments on top of the environment
// settings. Flags win over the environment. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer, settings envconfig.Settings) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("assetgate", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
assetgate - Run the project's asset pipeline before the firmware is compiled.

Usage:
  assetgate [options] [CONFIG_PATH]

Arguments:
  CONFIG_PATH
    Path to a .hcl gate file or a directory of .hcl files.
    Defaults to <project-dir>/assetgate.hcl; without it the project-local
    gulp default task gates $BUILD_DIR/src/main.ino.o and main.ino.cpp.o.
    Cannot be combined with -config or -c. -c wins over -config, and both
    win over ASSETGATE_CONFIG. An explicitly given path must exist.

Environment:
  PROJECT_DIR, BUILD_DIR, ASSETGATE_CONFIG, ASSETGATE_LOG_LEVEL,
  ASSETGATE_LOG_FORMAT, ASSETGATE_NOTIFY_URL

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", settings.ConfigPath, "Path to the gate file or directory.")
	cFlag := flagSet.String("c", "", "Path to the gate file or directory (shorthand).")
	projectDirFlag := flagSet.String("project-dir", settings.ProjectDir, "Project directory. Defaults to the working directory.")
	buildDirFlag := flagSet.String("build-dir", settings.BuildDir, "Build output directory. Defaults to <project-dir>/.pio/build.")
	var targets stringList
	flagSet.Var(&targets, "target", "Target to build; repeatable. Defaults to every gated target.")
	hookOnlyFlag := flagSet.Bool("hook-only", false, "Run the pipelines only, skipping the compile step.")
	notifyURLFlag := flagSet.String("notify-url", settings.NotifyURL, "socket.io URL notified after a successful pipeline run.")
	logFormatFlag := flagSet.String("log-format", orDefault(settings.LogFormat, "text"), "Log output format. Options: 'text', 'json' or 'pretty'.")
	logLevelFlag := flagSet.String("log-level", orDefault(settings.LogLevel, "info"), "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %v", flagSet.Args()[1:])}
	}

	explicit := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	if flagSet.NArg() == 1 && (explicit["config"] || explicit["c"]) {
		return nil, false, &ExitError{Code: 2, Message: "CONFIG_PATH argument cannot be combined with -config or -c"}
	}

	path := *configFlag
	if *cFlag != "" {
		path = *cFlag
	} else if flagSet.NArg() == 1 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Config path determined.", "path", path)

	config, err := app.NewConfig(app.Config{
		ConfigPath: path,
		ProjectDir: *projectDirFlag,
		BuildDir:   *buildDirFlag,
		Targets:    targets,
		HookOnly:   *hookOnlyFlag,
		NotifyURL:  *notifyURLFlag,
		LogFormat:  *logFormatFlag,
		LogLevel:   *logLevelFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
