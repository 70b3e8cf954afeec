package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/wlptr/internal/config"
	"github.com/bnema/wlptr/internal/inject"
	"github.com/bnema/wlptr/internal/logger"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// settle gives the compositor time to pick up a new input device
const settle = 500 * time.Millisecond

var injectYes bool

var injectCmd = &cobra.Command{
	Use:   "inject <step>...",
	Short: "Drive the real pointer through a uinput virtual mouse",
	Long: `Create a uinput virtual mouse and play a script of steps on it, so a running
'wlptr watch' receives genuine compositor frames.

Steps are separated by ';' or given as separate arguments:
  move DX DY | click left|right|middle | scroll N | hscroll N | sleep DURATION

Example:
  wlptr inject "move 20 0; click left; scroll 1"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInject,
}

func init() {
	injectCmd.Flags().String("device", "", "uinput device path (default inject.device)")
	injectCmd.Flags().Int("delay", 0, "Delay between steps in milliseconds (default inject.step_delay_ms)")
	injectCmd.Flags().BoolVarP(&injectYes, "yes", "y", false, "Do not ask for confirmation")
}

func runInject(cmd *cobra.Command, args []string) error {
	steps, err := inject.ParseScript(args...)
	if err != nil {
		return err
	}

	if !injectYes {
		confirmed, err := confirmInject(len(steps))
		if err != nil {
			return err
		}
		if !confirmed {
			logger.Info("Injection cancelled")
			return nil
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()
	device := cfg.Inject.Device
	if cmd.Flags().Changed("device") {
		device, _ = cmd.Flags().GetString("device")
	}
	delay := time.Duration(cfg.Inject.StepDelayMs) * time.Millisecond
	if cmd.Flags().Changed("delay") {
		ms, _ := cmd.Flags().GetInt("delay")
		delay = time.Duration(ms) * time.Millisecond
	}

	mouse, err := inject.NewVirtualMouse(device)
	if err != nil {
		return err
	}
	defer func() {
		if err := mouse.Close(); err != nil {
			logger.Errorf("Failed to close virtual mouse: %v", err)
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case <-time.After(settle):
	}

	if err := inject.Run(ctx, mouse, steps, delay); err != nil {
		if ctx.Err() != nil {
			logger.Warn("Injection interrupted")
			return nil
		}
		return err
	}

	logger.Infof("Injected %d steps", len(steps))
	return nil
}

func confirmInject(steps int) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Move the real pointer?").
				Description(fmt.Sprintf("%d steps will be played on a virtual mouse and affect the focused window.", steps)).
				Affirmative("Inject").
				Negative("Cancel").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return confirmed, nil
}
