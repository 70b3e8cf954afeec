package cmd

import (
	"fmt"
	"os"

	"github.com/bnema/wlptr/internal/config"
	"github.com/bnema/wlptr/internal/logger"
	"github.com/bnema/wlptr/internal/pointer"
	"github.com/bnema/wlptr/internal/trace"
	"github.com/spf13/cobra"
)

var replayOutput string

var replayCmd = &cobra.Command{
	Use:   "replay <trace>",
	Short: "Print the frames of a recorded trace",
	Long: `Replay a trace written by 'wlptr watch --record' through the frame
accumulator, printing exactly the lines the live session printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVarP(&replayOutput, "output", "o", "", "Frame output: stderr, stdout or a file path (default output.target)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	target := replayOutput
	if target == "" {
		target = config.Get().Output.Target
	}

	out, closeOut, err := openOutput(target)
	if err != nil {
		return err
	}
	defer closeOut()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open trace: %w", err)
	}
	defer f.Close()

	acc := pointer.NewAccumulator(out)
	n, err := trace.Replay(f, acc)
	if err != nil {
		return fmt.Errorf("replay of %s stopped after %d records: %w", args[0], n, err)
	}

	if !acc.Pending().Empty() {
		logger.Warn("Trace ends with sub-events that were never framed")
	}
	logger.Debugf("Replayed %d records into %d frames", n, acc.Frames())
	return nil
}
