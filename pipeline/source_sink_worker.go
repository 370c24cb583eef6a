package pipeline

import (
	"context"

	"golang.org/x/xerrors"
)

// sourceWorker consumes payloads from a Source and pushes them into the
// input channel of the first pipeline stage.
func sourceWorker(ctx context.Context, source Source, outCh chan<- Payload, errCh chan<- error) {
	for source.Next(ctx) {
		payload := source.Payload()
		select {
		case outCh <- payload:
		case <-ctx.Done():
			return
		}
	}

	if err := source.Error(); err != nil {
		emitError(xerrors.Errorf("pipeline source: %w", err), errCh)
	}
}

// sinkWorker hands every payload emitted by the last stage to the sink and
// marks it as processed.
func sinkWorker(ctx context.Context, sink Sink, inCh <-chan Payload, errCh chan<- error) {
	for {
		select {
		case <-ctx.Done():
			return
		case payload, open := <-inCh:
			if !open {
				return
			}
			if err := sink.Consume(ctx, payload); err != nil {
				emitError(xerrors.Errorf("pipeline sink: %w", err), errCh)
			}
			payload.MarkAsProcessed()
		}
	}
}

func emitError(err error, errCh chan<- error) {
	select {
	case errCh <- err:
	default: // error channel is full.
	}
}
