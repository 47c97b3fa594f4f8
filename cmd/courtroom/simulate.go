package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpggio/courtroom/internal/domain/court"
	"github.com/rpggio/courtroom/internal/domain/event"
)

const (
	defaultSimThreshold  = 10 * time.Second
	defaultSimTick       = time.Second
	defaultSimMessageMin = 2 * time.Second
	defaultSimMessageMax = 4 * time.Second
	defaultSimDuration   = 30 * time.Second
)

func runSimulate(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	cfg := court.DefaultConfig()
	cfg.Threshold, _ = flags.GetDuration("threshold")
	cfg.TickInterval, _ = flags.GetDuration("tick")
	cfg.MessageMin, _ = flags.GetDuration("message-min")
	cfg.MessageMax, _ = flags.GetDuration("message-max")
	duration, _ := flags.GetDuration("duration")
	server, _ := flags.GetString("server")
	seed, _ := flags.GetUint64("seed")

	logger, closeLog := newLogger(logConfigFromEnv(), false)
	defer closeLog()

	sink := &printingSink{out: cmd.OutOrStdout()}
	if server != "" {
		sink.next = event.NewHTTPSink(server, nil)
	}

	opts := []court.Option{court.WithEventSink(sink), court.WithLogger(logger)}
	if seed != 0 {
		opts = append(opts, court.WithRand(rand.New(rand.NewPCG(seed, seed))))
	}
	sess, err := court.NewSession("simulation", court.DefaultScenario(), cfg, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	if err := sess.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	if err := sess.Close(); err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), sess.Snapshot())
	return nil
}

// printingSink prints feed messages and forwards every event to next.
type printingSink struct {
	mu   sync.Mutex
	out  io.Writer
	next court.EventSink
}

func (p *printingSink) Record(ctx context.Context, eventType string, payload any) error {
	if eventType == court.EventFeed {
		if fields, ok := payload.(map[string]any); ok {
			p.mu.Lock()
			fmt.Fprintf(p.out, "%s  %-7s %s\n", time.Now().Format(time.TimeOnly), fields["source"], fields["text"])
			p.mu.Unlock()
		}
	}
	if p.next == nil {
		return nil
	}
	return p.next.Record(ctx, eventType, payload)
}

func printSummary(out io.Writer, snap court.Snapshot) {
	fmt.Fprintln(out)
	for _, task := range snap.Tasks {
		fmt.Fprintf(out, "%-12s %s\n", task.Key, task.Status)
	}
	if !snap.AnyCourt {
		return
	}
	fmt.Fprintln(out, "\nCourt summons:")
	for _, s := range snap.Summons {
		fmt.Fprintf(out, "  %s %s\n", s.Label, s.Note)
	}
}
