package cli

import (
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"

	"examkit/internal/config"
	"examkit/internal/console"
	"examkit/internal/logging"
)

// commonOptions are the flags shared by the data commands.
type commonOptions struct {
	configPath string
	verbose    bool
	noColor    bool
}

func (o *commonOptions) register(flags *flag.FlagSet) {
	flags.StringVar(&o.configPath, "config", "", "Path to examkit.yml (default: search from the working directory)")
	flags.BoolVar(&o.verbose, "verbose", false, "Write debug logs to stderr")
	flags.BoolVar(&o.noColor, "no-color", false, "Disable colored output")
}

// session is the environment shared by a command run.
type session struct {
	out    *console.Printer
	errOut *console.Printer
	logger *zap.Logger
	cfg    config.Config
}

func (o *commonOptions) open(stdout, stderr io.Writer) (*session, error) {
	s := &session{
		out:    console.New(stdout, o.noColor),
		errOut: console.New(stderr, o.noColor),
		logger: logging.New(stderr, o.verbose),
	}
	cfg, path, err := loadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	s.cfg = cfg
	if path != "" {
		s.logger.Debug("config loaded", zap.String("path", path))
	}
	return s, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}

// parseFlags parses args and reports help or usage errors. The returned code
// is meaningful only when done is true.
func parseFlags(cmd *Command, flags *flag.FlagSet, args []string, stdout, stderr io.Writer) (done bool, code int) {
	flags.SetOutput(stderr)
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printCommandUsage(cmd, stdout)
			return true, ExitOK
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return true, ExitUsage
	}
	return false, ExitOK
}
