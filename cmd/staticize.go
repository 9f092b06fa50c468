package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/panyam/staticize"
)

var CLI struct {
	Config  string   `short:"c" help:"Manifest file (.yaml, .toml or .md with front matter)" default:"staticize.yaml"`
	Set     []string `short:"s" help:"Override a config field, eg --set DestRoot=./out" placeholder:"FIELD=VALUE"`
	Verbose bool     `short:"v" help:"Enable verbose logging"`

	Convert struct {
		Index  bool `help:"Write an index.html listing the converted pages"`
		Verify bool `help:"Report templating attributes left in the output"`
	} `cmd:"" default:"1" help:"Convert every template in the manifest"`

	Watch struct {
		Index     bool          `help:"Refresh index.html after every rebuild"`
		Frequency time.Duration `help:"How often collected changes are rebuilt" default:"1s"`
		Addr      string        `help:"Also serve the output on this address"`
	} `cmd:"" help:"Convert, then reconvert pages whenever their templates change"`

	Serve struct {
		Addr   string `help:"Address to serve on" default:":8080"`
		Prefix string `help:"URL path the pages are served under" default:"/"`
	} `cmd:"" help:"Serve the converted pages and their assets"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("staticize"),
		kong.Description("Converts Thymeleaf templates into standalone static HTML pages"))

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	switch ctx.Command() {
	case "convert":
		if err := runConvert(cfg); err != nil {
			slog.Error("Conversion failed", "error", err)
			os.Exit(1)
		}
	case "watch":
		if err := runWatch(cfg); err != nil {
			slog.Error("Watch failed", "error", err)
			os.Exit(1)
		}
	case "serve":
		if err := serve(cfg, CLI.Serve.Addr, CLI.Serve.Prefix); err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	default:
		ctx.FatalIfErrorf(fmt.Errorf("unknown command %q", ctx.Command()))
	}
}

func loadConfig() (*staticize.Config, error) {
	cfg, err := staticize.LoadConfig(CLI.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyOverrides(CLI.Set); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func runConvert(cfg *staticize.Config) error {
	conv := staticize.NewConverter(cfg)
	conv.Verify = CLI.Convert.Verify
	conv.Hooks.Trace(slog.Default(), os.Stdout)
	report := conv.Run()
	if CLI.Convert.Index {
		if _, err := staticize.WriteIndex(cfg, report); err != nil {
			return err
		}
	}
	fmt.Println("Conversion complete:", report.Summary())
	fmt.Println("Output directory:", cfg.DestRoot)
	if n := len(report.Failures()); n > 0 {
		return fmt.Errorf("%d of %d pages not converted", n, report.Total)
	}
	return nil
}

func runWatch(cfg *staticize.Config) error {
	conv := staticize.NewConverter(cfg)
	conv.Hooks.Trace(slog.Default(), os.Stdout)
	writeIndex := func(report *staticize.Report) {
		if !CLI.Watch.Index {
			return
		}
		if _, err := staticize.WriteIndex(cfg, report); err != nil {
			slog.Error("Failed to write index", "error", err)
		}
	}
	report := conv.Run()
	writeIndex(report)

	w := staticize.NewWatcher(conv)
	w.BuildFrequency = CLI.Watch.Frequency
	w.OnRebuild = func(r *staticize.Report) {
		report.Merge(r)
		writeIndex(report)
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	if CLI.Watch.Addr != "" {
		go func() {
			if err := serve(cfg, CLI.Watch.Addr, "/"); err != nil {
				slog.Error("Server failed", "error", err)
			}
		}()
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	slog.Info("Stopping watcher")
	return nil
}

func serve(cfg *staticize.Config, addr, prefix string) error {
	router := staticize.PreviewRouter(cfg.DestRoot, filepath.Dir(cfg.DestRoot), prefix, cfg.AssetFolders())
	srv := &http.Server{
		Handler:           staticize.WithLogger(router),
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("Serving pages", "addr", addr, "root", cfg.DestRoot)
	return srv.ListenAndServe()
}
