package protocol

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tributary-io/tributary/pipeline"
	"github.com/tributary-io/tributary/processor"
	"github.com/tributary-io/tributary/types"
	"github.com/tributary-io/tributary/utils"
	"github.com/tributary-io/tributary/utils/logger"
)

// maxLineSize caps a single input line at 16MB
const maxLineSize = 16 << 20

// runCmd streams newline-delimited JSON events from the input through the
// pipeline and writes the processed events back out as NDJSON.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run command",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if inputPath == "" {
			return fmt.Errorf("--input not passed")
		}
		return loadDefinition()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		pipe, err := pipeline.New(definition, processor.DefaultDiagnostics())
		if err != nil {
			return err
		}

		input, err := openInput()
		if err != nil {
			return err
		}
		defer input.Close()

		output, err := openOutput()
		if err != nil {
			return err
		}
		defer output.Close()

		batches := make(chan *types.Batch, definition.Workers)
		processed := make(chan *types.Batch, definition.Workers)

		var ingested, written int64
		group, ctx := errgroup.WithContext(cmd.Context())

		group.Go(func() error {
			defer close(batches)
			count, err := readBatches(ctx, input, pipe.BatchSize(), batches)
			ingested = count
			return err
		})

		group.Go(func() error {
			return pipe.Run(ctx, batches, processed)
		})

		group.Go(func() error {
			count, err := writeBatches(processed, output)
			written = count
			return err
		})

		runErr := group.Wait()
		pipe.Shutdown(cmd.Context())

		if runErr != nil {
			return runErr
		}
		logger.Infof("pipeline %s processed %d event(s), wrote %d", pipe.ID(), ingested, written)
		return nil
	},
}

// readBatches scans NDJSON lines into ingested events and groups them into
// batches. A line that is not valid JSON is dropped with a diagnostic; the
// rest of the input keeps flowing.
func readBatches(ctx context.Context, input io.Reader, batchSize int, batches chan<- *types.Batch) (int64, error) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var ingested, seq int64
	events := make([]*types.Event, 0, batchSize)

	flush := func() error {
		if len(events) == 0 {
			return nil
		}
		select {
		case batches <- types.NewBatch(events, seq):
		case <-ctx.Done():
			return ctx.Err()
		}
		seq++
		events = make([]*types.Event, 0, batchSize)
		return nil
	}

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		data := types.Record{}
		if err := json.Unmarshal(line, &data); err != nil {
			logger.Warnf("dropping input line %d, not valid JSON: %s", ingested+1, err)
			continue
		}

		events = append(events, types.CreateIngestedEvent(utils.ULID(), data))
		ingested++

		if len(events) >= batchSize {
			if err := flush(); err != nil {
				return ingested, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return ingested, fmt.Errorf("failed to read input: %s", err)
	}

	return ingested, flush()
}

func writeBatches(processed <-chan *types.Batch, output io.Writer) (int64, error) {
	writer := bufio.NewWriter(output)

	var written int64
	for batch := range processed {
		for _, event := range batch.Events {
			encoded, err := json.Marshal(event.Data())
			if err != nil {
				return written, fmt.Errorf("failed to encode event: %s", err)
			}
			if _, err := writer.Write(append(encoded, '\n')); err != nil {
				return written, fmt.Errorf("failed to write output: %s", err)
			}
			written++
		}
	}

	return written, writer.Flush()
}

func openInput() (io.ReadCloser, error) {
	if inputPath == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	if err := utils.CheckIfFilesExists(inputPath); err != nil {
		return nil, err
	}
	return os.Open(inputPath)
}

func openOutput() (io.WriteCloser, error) {
	if outputPath == "" || outputPath == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(outputPath)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
