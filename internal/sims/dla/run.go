package dla

import (
	"fmt"
	"iter"

	"dla/internal/core"
)

// Run yields the occupancy grid once with count 0 and then again after every
// attachment, up to budget attachments. A budget <= 0 uses the configured
// iteration count.
//
// The grid is the field's live buffer; copy it to keep a frame. Count is
// local to this call. Stopping the loop early leaves the field consistent
// and a later Run continues growing the same aggregate. If a walk fails the
// sequence ends and Err reports why. With zero stickiness no walker can ever
// join, so Run stops after the first yield with ErrNoGrowth.
func (f *Field) Run(budget int) iter.Seq2[*core.ByteGrid, int] {
	if budget <= 0 {
		budget = f.cfg.Params.Iterations
	}
	return func(yield func(*core.ByteGrid, int) bool) {
		if !yield(f.grid, 0) {
			return
		}
		if budget > 0 && f.cfg.Params.Stickiness == 0 {
			f.err = fmt.Errorf("run of %d attachments with stickiness 0: %w", budget, ErrNoGrowth)
			return
		}
		for count := 1; count <= budget; {
			out, err := f.Advance()
			if err != nil {
				f.err = err
				return
			}
			if !out.Joined() {
				continue
			}
			if !yield(f.grid, count) {
				return
			}
			count++
		}
	}
}

// Outcomes yields the outcome of every walk, rejected ones included, for at
// most limit walks. A limit <= 0 never stops on its own.
func (f *Field) Outcomes(limit int) iter.Seq[Outcome] {
	return func(yield func(Outcome) bool) {
		for n := 0; limit <= 0 || n < limit; n++ {
			out, err := f.Advance()
			if err != nil {
				f.err = err
				return
			}
			if !yield(out) {
				return
			}
		}
	}
}
