package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	sslstats "github.com/wippyai/ssl-stats"
	"github.com/wippyai/ssl-stats/native"
	"github.com/wippyai/ssl-stats/wasmlib"
)

// mutableLibrary is a Library whose counters the simulator can drive.
// Both backends implement it.
type mutableLibrary interface {
	sslstats.Library
	Bump(sslstats.ContextID, sslstats.Counter, uint64) error
}

func main() {
	var (
		useWasm     = flag.Bool("wasm", false, "Host the counter store in a wazero instance")
		interactive = flag.Bool("i", false, "Interactive mode with live dashboard")
		interval    = flag.Duration("interval", 250*time.Millisecond, "Dashboard refresh interval")
		duration    = flag.Duration("duration", 2*time.Second, "Traffic simulation time before a one-shot dump")
		debug       = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if *debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		sslstats.SetLogger(logger)
	}

	if err := run(*useWasm, *interactive, *interval, *duration); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(useWasm, interactive bool, interval, duration time.Duration) error {
	bg := context.Background()

	var lib mutableLibrary
	if useWasm {
		wl, err := wasmlib.New(bg)
		if err != nil {
			return err
		}
		defer wl.Close(bg)
		lib = wl
	} else {
		ll := native.NewLocalLibrary()
		defer ll.Close()
		lib = ll
	}

	ctx, err := sslstats.NewContext(lib)
	if err != nil {
		return err
	}
	defer ctx.Release()

	stop := make(chan struct{})
	defer close(stop)
	go simulate(lib, ctx.ID(), stop)

	if interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("interactive mode requires a terminal")
		}
		return runDashboard(ctx.Stats(), interval)
	}

	time.Sleep(duration)

	snap, err := ctx.Stats().Snapshot()
	if err != nil {
		return err
	}
	for _, kind := range sslstats.Counters() {
		fmt.Printf("%-22s %d\n", kind, snap.Get(kind))
	}
	return nil
}

// simulate plays the TLS engine side: handshakes arrive, sessions get
// reused or miss, tickets rotate. Bump errors are ignored - once the
// context is released the simulator's writes are simply refused.
func simulate(lib mutableLibrary, id sslstats.ContextID, stop <-chan struct{}) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		lib.Bump(id, sslstats.CounterAccept, 1)
		if r.Intn(10) >= 8 {
			continue // handshake failed
		}
		lib.Bump(id, sslstats.CounterAcceptGood, 1)

		switch {
		case r.Intn(10) < 6:
			lib.Bump(id, sslstats.CounterHits, 1)
			lib.Bump(id, sslstats.CounterTicketKeyResume, 1)
		case r.Intn(10) < 8:
			lib.Bump(id, sslstats.CounterMisses, 1)
			lib.Bump(id, sslstats.CounterTicketKeyNew, 1)
			lib.Bump(id, sslstats.CounterNumber, 1)
		default:
			lib.Bump(id, sslstats.CounterTimeouts, 1)
		}
	}
}
