// Package cli maps the command line surface onto the store: one
// subcommand per operation, each performing a single
// load-mutate-persist cycle under the database lock.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/kvutil/datadir"
	"github.com/jrsteele09/kvutil/kvstore"
	"github.com/jrsteele09/kvutil/persistence"
)

// Config carries the process surface so that Run can be exercised in
// tests without a subprocess.
type Config struct {
	Stdout io.Writer
	Stderr io.Writer
	Exit   func(int)
}

type cmdRead struct {
	Key string `arg:"" help:"Key to look up."`
}

type cmdWrite struct {
	Key   string `arg:"" help:"Key to store under."`
	Value string `arg:"" help:"Value to store."`
}

type cmdDelete struct {
	Key string `arg:"" help:"Key to remove. Succeeds even if the key is absent."`
}

type cmdList struct{}

type rootCmd struct {
	Read   cmdRead   `cmd:"" help:"Print the value stored under a key. A missing key prints nothing."`
	Write  cmdWrite  `cmd:"" help:"Store a value under a key, overwriting any existing value."`
	Delete cmdDelete `cmd:"" help:"Remove a key from the store."`
	List   cmdList   `cmd:"" help:"Print every key in the store, one per line."`

	DB          string        `help:"Path to the database file. Defaults to the per-user data directory, honoring $XDG_DATA_DIR." type:"path"`
	LockTimeout time.Duration `help:"Give up if the database lock cannot be acquired within this duration. Zero waits indefinitely." default:"0"`
	Verbose     bool          `short:"v" help:"Enable debug logging."`
}

type appContext struct {
	store  *kvstore.Store
	stdout io.Writer
}

func (c *cmdRead) Run(app *appContext) error {
	value, found, err := app.store.Read(c.Key)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	text, err := kvstore.DecodeText(value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(app.stdout, text)
	return errors.Wrap(err, "read: write stdout")
}

func (c *cmdWrite) Run(app *appContext) error {
	return app.store.Write(c.Key, []byte(c.Value))
}

func (c *cmdDelete) Run(app *appContext) error {
	_, err := app.store.Delete(c.Key)
	return err
}

func (c *cmdList) Run(app *appContext) error {
	keys, err := app.store.List()
	if err != nil {
		return err
	}
	for _, key := range keys {
		text, err := kvstore.DecodeText([]byte(key))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(app.stdout, text); err != nil {
			return errors.Wrap(err, "list: write stdout")
		}
	}
	return nil
}

// Run parses args and executes the selected operation, returning the
// process exit code. Every error kind exits non-zero with a diagnostic
// on stderr; a read of a missing key is not an error and exits zero with
// empty output.
func Run(args []string, config *Config) int {
	var root rootCmd
	parser, err := kong.New(&root,
		kong.Name("kv"),
		kong.Description("A single-file key-value store safe for concurrent use across processes."),
		kong.Writers(config.Stdout, config.Stderr),
		kong.Exit(config.Exit),
	)
	if err != nil {
		fmt.Fprintf(config.Stderr, "kv: error: %v\n", err)
		return 1
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(config.Stderr, "kv: error: %v\n", err)
		return 2
	}

	setupLogging(config.Stderr, root.Verbose)

	dbPath := root.DB
	if dbPath == "" {
		dbPath, err = datadir.DataFilePath()
		if err != nil {
			log.Error().Err(err).Msg("resolve database path")
			return 1
		}
	}

	var options []kvstore.StoreOption
	if root.LockTimeout > 0 {
		options = append(options, kvstore.WithLockTimeoutOption(root.LockTimeout))
	}
	store, err := kvstore.New(dbPath, persistence.NewFile(dbPath), options...)
	if err != nil {
		log.Error().Err(err).Str("db", dbPath).Msg("open store")
		return 1
	}

	if err := ctx.Run(&appContext{store: store, stdout: config.Stdout}); err != nil {
		log.Error().Err(err).Str("db", dbPath).Msg(ctx.Command())
		return 1
	}
	return 0
}

func setupLogging(w io.Writer, verbose bool) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}
