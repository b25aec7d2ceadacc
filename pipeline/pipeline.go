package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/tributary-io/tributary/processor"
	"github.com/tributary-io/tributary/types"
	"github.com/tributary-io/tributary/utils/logger"
)

// Pipeline drives batches of events through an ordered chain of processor
// stages. Stages mutate events in place; batch size and order are preserved
// end to end. Concurrency happens across batches, never inside one: each
// batch is owned by exactly one worker at a time, so stages only need their
// shared state (configs, splitters) to be read-only.
type Pipeline struct {
	definition *Definition
	stages     []processor.Processor
	hash       uint64
}

func New(definition *Definition, diagnostics processor.Diagnostics) (*Pipeline, error) {
	if err := definition.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline definition: %s", err)
	}

	var buildErr error
	stages := make([]processor.Processor, 0, len(definition.Processors))
	for idx, stage := range definition.Processors {
		for name, settings := range stage {
			proc, err := processor.Build(name, settings, diagnostics)
			if err != nil {
				buildErr = multierror.Append(buildErr, fmt.Errorf("processors[%d]: %s", idx, err))
				continue
			}
			stages = append(stages, proc)
		}
	}
	if buildErr != nil {
		return nil, buildErr
	}

	hash, err := definition.Hash()
	if err != nil {
		return nil, fmt.Errorf("failed to hash pipeline definition: %s", err)
	}

	return &Pipeline{definition: definition, stages: stages, hash: hash}, nil
}

// ID identifies this pipeline configuration, stable across restarts.
func (p *Pipeline) ID() string {
	return fmt.Sprintf("%s-%d", p.definition.Name, p.hash)
}

func (p *Pipeline) BatchSize() int {
	return p.definition.BatchSize
}

// ProcessBatch runs one batch through every stage in order.
func (p *Pipeline) ProcessBatch(batch *types.Batch) *types.Batch {
	events := batch.Events
	for _, stage := range p.stages {
		events = stage.Execute(events)
	}
	batch.Events = events
	return batch
}

// Run fans incoming batches out across workers and writes processed batches
// to out. Within a batch event order is preserved; across batches completion
// order decides. Run closes out before returning.
func (p *Pipeline) Run(ctx context.Context, batches <-chan *types.Batch, out chan<- *types.Batch) error {
	defer close(out)

	group, ctx := errgroup.WithContext(ctx)
	for i := 0; i < p.definition.Workers; i++ {
		group.Go(func() error {
			for batch := range batches {
				select {
				case out <- p.ProcessBatch(batch):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	return group.Wait()
}

// Shutdown drains the stages: signal, wait for readiness, then stop.
func (p *Pipeline) Shutdown(ctx context.Context) {
	for _, stage := range p.stages {
		stage.PrepareForShutdown()
	}

	for _, stage := range p.stages {
	wait:
		for !stage.IsReadyForShutdown() {
			select {
			case <-ctx.Done():
				logger.Warnf("shutdown wait cancelled, stopping %s stage while busy", stage.Type())
				break wait
			case <-time.After(100 * time.Millisecond):
			}
		}
		stage.Shutdown()
	}
	logger.Infof("pipeline %s shut down", p.ID())
}
