package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/kowtow/internal/console"
	"github.com/wippyai/kowtow/object"
	"github.com/wippyai/kowtow/shadow"
	"github.com/wippyai/kowtow/wasmobj"
)

func main() {
	var (
		fixture     = flag.String("f", "", "Path to YAML or JSON fixture (default: empty object)")
		exec        = flag.String("e", "", "Commands to run, separated by ';'")
		wasmFile    = flag.String("wasm", "", "Path to a core wasm module mounted at 'wasm'")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log shadow events to stderr")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: kowtow [-f fixture.yaml] [-wasm module.wasm] [-e \"cmd; cmd\"] [-i] [-v]")
		fmt.Fprintln(os.Stderr, "       commands are read from stdin unless -e or -i is given")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*fixture, *exec, *wasmFile, *interactive, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(fixture, exec, wasmFile string, interactive, verbose bool) error {
	ctx := context.Background()

	logger := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		logger = l
		defer logger.Sync()
	}
	shadow.SetLogger(logger)

	realm := object.NewRealm()
	var data []byte
	if fixture != "" {
		var err error
		if data, err = os.ReadFile(fixture); err != nil {
			return fmt.Errorf("read fixture: %w", err)
		}
	}
	root, err := console.LoadFixture(realm, data)
	if err != nil {
		return fmt.Errorf("load fixture: %w", err)
	}
	if !object.IsObject(root) {
		return fmt.Errorf("fixture must describe a mapping or sequence, got %s", object.TypeName(root))
	}

	cfg := shadow.DefaultConfig()
	cfg.Logger = logger
	if verbose {
		cfg.Observers = append(cfg.Observers, shadow.NewLogObserver(logger))
	}
	sess := console.NewSession(realm, root, cfg)

	if wasmFile != "" {
		wasmBytes, err := os.ReadFile(wasmFile)
		if err != nil {
			return fmt.Errorf("read wasm: %w", err)
		}
		mod, err := wasmobj.Load(ctx, realm, wasmBytes, &wasmobj.Config{Logger: logger})
		if err != nil {
			return fmt.Errorf("load wasm: %w", err)
		}
		defer mod.Close(ctx)
		if err := sess.Mount("wasm", mod.Exports()); err != nil {
			return fmt.Errorf("mount wasm: %w", err)
		}
	}

	if exec != "" {
		return sess.Run(strings.NewReader(strings.ReplaceAll(exec, ";", "\n")), os.Stdout)
	}
	if interactive || term.IsTerminal(int(os.Stdin.Fd())) {
		return runInteractive(sess, fixture)
	}
	return sess.Run(os.Stdin, os.Stdout)
}
