package runners

import (
	"context"

	"github.com/Ahmed-Sermani/pagerank/pipeline"
	"golang.org/x/xerrors"
)

type fifo struct {
	proc pipeline.Processor
}

// FIFO returns a StageRunner that processes payloads in first-in-first-out
// fashion. Input is passed to the specified processor and its output is
// forwarded to the next stage.
func FIFO(proc pipeline.Processor) pipeline.StageRunner {
	return fifo{proc: proc}
}

func (runner fifo) Run(ctx context.Context, params pipeline.StageParams) {
	for {
		select {
		case <-ctx.Done():
			return
		case payload, open := <-params.Input():
			if !open {
				return
			}
			processedPayload, err := runner.proc.Process(ctx, payload)
			if err != nil {
				emitError(
					xerrors.Errorf("pipeline stage %d: %w", params.StageIndex(), err),
					params.Error(),
				)
			}
			// nothing left to do for payloads dropped by the processor.
			if processedPayload == nil {
				payload.MarkAsProcessed()
				continue
			}

			select {
			case params.Output() <- processedPayload:
			case <-ctx.Done():
				return
			}
		}
	}
}
