//go:build !tinygo

// cmd/irkey/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sparques/irkey"
	"github.com/sparques/irkey/internal/config"
	"github.com/sparques/irkey/keymap"
	"github.com/sparques/irkey/nec"
	"github.com/sparques/irkey/remote"
)

func main() {
	raw := flag.Bool("raw", false, "log raw NEC/RC6 codes instead of keys")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: irkey [-raw] <config.yaml>")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(flag.Arg(0))
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if *raw {
		cfg.Receiver.Raw = true
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	table, err := cfg.Table()
	if err != nil {
		log.Fatalf("keymap failed: %v", err)
	}

	// --------------------
	// Receiver + edge source
	// --------------------

	recv := remote.New(table)

	rx, err := irkey.OpenPin(cfg.Receiver.Pin, recv)
	if err != nil {
		log.Fatalf("receiver open failed (pin=%s): %v", cfg.Receiver.Pin, err)
	}
	defer rx.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		errc <- rx.Run(ctx)
	}()

	log.Printf("irkey: pin=%s keys=%d poll=%dms raw=%t",
		cfg.Receiver.Pin, table.Len(), cfg.Receiver.PollMs, cfg.Receiver.Raw)

	poll := time.NewTicker(time.Duration(cfg.Receiver.PollMs) * time.Millisecond)
	defer poll.Stop()

	for {
		select {
		case err := <-errc:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Fatalf("receiver failed: %v", err)
			}
			return

		case <-poll.C:
			if cfg.Receiver.Raw {
				logRaw(recv)
				continue
			}
			if k := recv.Decode(); k != keymap.KeyNone {
				log.Printf("key %s", k)
			}
		}
	}
}

func logRaw(recv *remote.Receiver) {
	if code := recv.ReadNEC(); code != 0 {
		var f nec.Frame
		if err := f.UnmarshalFrame(code); err != nil {
			log.Printf("nec 0x%08X (%v)", code, err)
		} else {
			log.Printf("nec 0x%08X addr=0x%04X cmd=0x%02X", code, f.Address, f.Command)
		}
	}
	if code := recv.ReadRC6(); code != 0 {
		log.Printf("rc6 0x%04X", code)
	}
}
