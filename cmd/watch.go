package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/wlptr/internal/config"
	"github.com/bnema/wlptr/internal/logger"
	"github.com/bnema/wlptr/internal/pointer"
	"github.com/bnema/wlptr/internal/trace"
	"github.com/bnema/wlptr/internal/ui"
	"github.com/bnema/wlptr/internal/wayland"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var watchTUI bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print a summary line for every pointer frame",
	Long: `Connect to the compositor, bind the first seat's pointer and print one line
per wl_pointer.frame. The compositor only routes pointer events to surfaces
owned by the connection, so frames show up once a surface is mapped on it.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringP("output", "o", "", "Frame output: stderr, stdout or a file path")
	watchCmd.Flags().StringP("record", "r", "", "Record sub-events to a trace file")
	watchCmd.Flags().StringP("display", "d", "", "Wayland display name (default $WAYLAND_DISPLAY)")
	watchCmd.Flags().BoolVar(&watchTUI, "tui", false, "Show frames in an interactive view")

	// Bind flags to viper
	_ = viper.BindPFlag("output.target", watchCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("trace.record_path", watchCmd.Flags().Lookup("record"))
	_ = viper.BindPFlag("wayland.display", watchCmd.Flags().Lookup("display"))
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	// Terminal output would corrupt the interactive view
	target := cfg.Output.Target
	var out io.Writer = io.Discard
	if !watchTUI || !isTerminalTarget(target) {
		w, closeOut, err := openOutput(target)
		if err != nil {
			return err
		}
		defer closeOut()
		out = w
	}

	acc := pointer.NewAccumulator(out)
	handlers := pointer.Multi{acc}

	if cfg.Trace.RecordPath != "" {
		rec, closeRec, err := openRecorder(cfg.Trace.RecordPath)
		if err != nil {
			return err
		}
		defer closeRec()
		handlers = append(handlers, rec)
	}

	if watchTUI {
		logger.SetOutput(io.Discard)
		defer logger.SetOutput(os.Stderr)
	}

	client, err := wayland.Connect(ctx, wayland.Options{Display: cfg.Wayland.Display}, handlers)
	if err != nil {
		return err
	}
	defer client.Close()

	if !watchTUI {
		err = client.Run(ctx)
		logger.Infof("Flushed %d frames, dropped %d malformed sub-events", acc.Frames(), client.Listener().Dropped())
		return err
	}

	return watchInteractive(ctx, client, acc, cfg.Output.FrameHistory)
}

func watchInteractive(ctx context.Context, client *wayland.Client, acc *pointer.Accumulator, history int) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	runner := ui.NewProgramRunner(ui.DefaultProgramConfig(), ui.NewFramesModel(history))
	acc.OnFrame(func(f pointer.Frame) {
		runner.Send(ui.FrameMsg(f))
	})

	seat := client.Seat()
	dispatchDone := make(chan error, 1)
	go func() {
		runner.Send(ui.StatusMsg(fmt.Sprintf("Seat %q v%d", seat.Name, seat.Version)))
		err := client.Run(runCtx)
		runner.Send(ui.DoneMsg{Err: err})
		dispatchDone <- err
	}()

	uiErr := runner.Run(runCtx)
	cancel()
	if err := <-dispatchDone; err != nil {
		return err
	}
	return uiErr
}

func openRecorder(path string) (*trace.Recorder, func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create trace file: %w", err)
	}

	rec := trace.NewRecorder(f)
	closeRec := func() {
		if err := rec.Close(); err != nil {
			logger.Errorf("Trace recording failed: %v", err)
		}
		if err := f.Close(); err != nil {
			logger.Errorf("Failed to close trace file: %v", err)
		}
		logger.Infof("Recorded %d sub-events to %s", rec.Records(), path)
	}
	return rec, closeRec, nil
}
