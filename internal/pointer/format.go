package pointer

import (
	"fmt"
	"strings"
)

// Format renders e as a single frame summary line, newline included
func Format(e Event) string {
	var b strings.Builder

	fmt.Fprintf(&b, "pointer frame @ %d: ", e.Time)

	if e.Mask.Has(MaskEnter) {
		fmt.Fprintf(&b, "entered %f, %f ", e.SurfaceX.Float(), e.SurfaceY.Float())
	}

	if e.Mask.Has(MaskLeave) {
		b.WriteString("leave")
	}

	if e.Mask.Has(MaskMotion) {
		fmt.Fprintf(&b, "motion %f, %f ", e.SurfaceX.Float(), e.SurfaceY.Float())
	}

	if e.Mask.Has(MaskButton) {
		fmt.Fprintf(&b, "button %d %s ", e.Button, e.State)
	}

	if e.Mask.Any(MaskAxisAny) {
		for _, axis := range []Axis{AxisVertical, AxisHorizontal} {
			state := e.Axes[axis]
			if !state.Valid {
				continue
			}
			fmt.Fprintf(&b, "%s axis ", axis)
			if e.Mask.Has(MaskAxis) {
				fmt.Fprintf(&b, "value %f ", state.Value.Float())
			}
			if e.Mask.Has(MaskAxisDiscrete) {
				fmt.Fprintf(&b, "discrete %d ", state.Discrete)
			}
			if e.Mask.Has(MaskAxisSource) {
				fmt.Fprintf(&b, "via %s ", e.Source)
			}
			if e.Mask.Has(MaskAxisStop) {
				b.WriteString("(stopped) ")
			}
		}
	}

	b.WriteString("\n")
	return b.String()
}
