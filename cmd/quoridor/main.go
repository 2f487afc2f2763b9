// Command quoridor is a match engine: it reads positions in the harness
// text format from stdin and answers each with one move on stdout.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/quoridor/bot"
	"github.com/domino14/quoridor/config"
	"github.com/domino14/quoridor/notation"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// stdout carries moves only.
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		log.Error().Err(err).Msg("engine-stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	b := bot.NewBot(cfg)
	dec := notation.NewDecoder(in)
	w := bufio.NewWriter(out)
	for {
		s, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			log.Debug().Msg("input-closed")
			return nil
		}
		if err != nil {
			return err
		}
		log.Debug().Msg("\n" + s.ToDisplayText())

		m, err := b.BestMove(ctx, s)
		if err != nil {
			return err
		}
		res := b.LastResult()
		log.Info().Str("move", m.String()).Int("depth", res.Depth).Int("score", res.Score).
			Uint64("nodes", res.Nodes).Msg("answer")
		if _, err := fmt.Fprintln(w, m); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
