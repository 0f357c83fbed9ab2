// Command flagquiz is a terminal flag-guessing quiz.
//
// Usage:
//
//	flagquiz [play] [-catalog flags.json] [-max-wrong 3] [-seed 0]
//	flagquiz describe [-catalog flags.json] <country>
//	flagquiz import [-catalog flags.json] -db flags.db
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/playperu/flagquiz/internal/catalog"
	"github.com/playperu/flagquiz/internal/config"
	"github.com/playperu/flagquiz/internal/console"
	"github.com/playperu/flagquiz/internal/flagquiz"
	"github.com/playperu/flagquiz/internal/game"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cmd := "play"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet("flagquiz "+cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "catalog file (.json, .yaml, .yml or a .db SQLite catalog)")

	var dbPath string
	switch cmd {
	case "play":
		fs.IntVar(&cfg.MaxWrong, "max-wrong", cfg.MaxWrong, "wrong answers allowed before the game is lost")
		fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for reproducibility (0 = random)")
	case "import":
		fs.StringVar(&dbPath, "db", "", "SQLite catalog database to write")
	case "describe":
	default:
		return fmt.Errorf("unknown command %q (want play, describe or import)", cmd)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	switch cmd {
	case "import":
		return runImport(ctx, logger, stdout, cfg.CatalogPath, dbPath)
	case "describe":
		return runDescribe(ctx, logger, stdout, cfg.CatalogPath, strings.Join(fs.Args(), " "))
	default:
		return runPlay(ctx, logger, cfg, stdin, stdout)
	}
}

// loadCatalog reports a catalog failure to the player and returns ok=false.
// Such failures end the run normally.
func loadCatalog(ctx context.Context, logger *slog.Logger, stdout io.Writer, path string) (flagquiz.Catalog, bool) {
	cat, err := catalog.Load(ctx, path)
	if err != nil {
		logger.Error("loading catalog", "path", path, "error", err)
		fmt.Fprintln(stdout, err)
		return nil, false
	}
	logger.Info("catalog loaded", "path", path, "entries", cat.Len())
	return cat, true
}

func runPlay(ctx context.Context, logger *slog.Logger, cfg *config.Config, stdin io.Reader, stdout io.Writer) error {
	cat, ok := loadCatalog(ctx, logger, stdout, cfg.CatalogPath)
	if !ok {
		return nil
	}

	chooser, err := flagquiz.NewChooser(cfg.Seed)
	if err != nil {
		return err
	}

	con := console.New(stdin, stdout)
	defer con.Close()

	g := game.New(cat, chooser, con,
		game.WithMaxWrong(cfg.MaxWrong),
		game.WithLogger(logger),
	)
	if _, err := g.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("game interrupted", "state", fmt.Sprintf("%+v", g.State()))
			return nil
		}
		return fmt.Errorf("playing: %w", err)
	}
	return nil
}

func runDescribe(ctx context.Context, logger *slog.Logger, stdout io.Writer, path, country string) error {
	if strings.TrimSpace(country) == "" {
		return errors.New("describe: a country name is required")
	}
	cat, ok := loadCatalog(ctx, logger, stdout, path)
	if !ok {
		return nil
	}

	if desc, found := flagquiz.Describe(country, cat); found {
		fmt.Fprintln(stdout, desc)
		return nil
	}
	fmt.Fprintf(stdout, "No description found for %q.\n", country)
	return nil
}

func runImport(ctx context.Context, logger *slog.Logger, stdout io.Writer, src, dbPath string) error {
	if dbPath == "" {
		return errors.New("import: -db is required")
	}
	if catalog.FormatOf(dbPath) != catalog.FormatSQLite {
		return fmt.Errorf("import: %s is not a SQLite catalog path (.db, .sqlite, .sqlite3)", dbPath)
	}

	n, err := catalog.Import(ctx, src, dbPath)
	if err != nil {
		var cerr *catalog.Error
		if errors.As(err, &cerr) {
			logger.Error("loading catalog", "path", src, "error", err)
			fmt.Fprintln(stdout, err)
			return nil
		}
		return fmt.Errorf("importing catalog: %w", err)
	}

	logger.Info("catalog imported", "src", src, "db", dbPath, "entries", n)
	fmt.Fprintf(stdout, "Imported %d flags into %s.\n", n, dbPath)
	return nil
}
