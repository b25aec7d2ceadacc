package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tributary-io/tributary/processor"
	_ "github.com/tributary-io/tributary/processor/csvfield"
	"github.com/tributary-io/tributary/types"
)

func testDefinition() *Definition {
	return &Definition{
		Name: "access-logs",
		Processors: []StageDefinition{
			{
				"csv": {
					"source":       "message",
					"column_names": []any{"ip", "verb", "path"},
				},
			},
		},
	}
}

func TestDefinitionValidateDefaults(t *testing.T) {
	definition := testDefinition()
	require.NoError(t, definition.Validate())
	assert.Equal(t, 3, definition.Workers)
	assert.Equal(t, 1000, definition.BatchSize)
}

func TestDefinitionValidateErrors(t *testing.T) {
	tests := []struct {
		name       string
		definition *Definition
	}{
		{
			name:       "missing name",
			definition: &Definition{Processors: []StageDefinition{{"csv": {}}}},
		},
		{
			name:       "no processors",
			definition: &Definition{Name: "empty"},
		},
		{
			name: "stage with two plugins",
			definition: &Definition{
				Name:       "doubled",
				Processors: []StageDefinition{{"csv": {}, "other": {}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.definition.Validate())
		})
	}
}

func TestNewAggregatesBuildErrors(t *testing.T) {
	definition := &Definition{
		Name: "broken",
		Processors: []StageDefinition{
			{"does-not-exist": {}},
			{"csv": {"delimiter": "||"}},
		},
	}

	_, err := New(definition, processor.DefaultDiagnostics())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist")
	assert.Contains(t, err.Error(), "delimiter")
}

func TestProcessBatch(t *testing.T) {
	pipe, err := New(testDefinition(), processor.DefaultDiagnostics())
	require.NoError(t, err)

	batch := types.NewBatch([]*types.Event{
		types.NewEvent(types.Record{"message": "10.0.0.1,GET,/health"}),
		types.NewEvent(types.Record{"message": "10.0.0.2,POST,/ingest,extra"}),
	}, 1)

	result := pipe.ProcessBatch(batch)
	require.Equal(t, 2, result.Len())

	first, _ := result.Events[0].GetString("ip")
	assert.Equal(t, "10.0.0.1", first)

	overflow, _ := result.Events[1].GetString("column4")
	assert.Equal(t, "extra", overflow)
}

func TestRunPreservesBatchContents(t *testing.T) {
	pipe, err := New(testDefinition(), processor.DefaultDiagnostics())
	require.NoError(t, err)

	batches := make(chan *types.Batch, 4)
	out := make(chan *types.Batch, 4)
	for seq := int64(0); seq < 4; seq++ {
		batches <- types.NewBatch([]*types.Event{
			types.NewEvent(types.Record{"message": "1.2.3.4,GET,/"}),
		}, seq)
	}
	close(batches)

	require.NoError(t, pipe.Run(context.Background(), batches, out))

	seen := map[int64]bool{}
	for batch := range out {
		require.Equal(t, 1, batch.Len())
		verb, _ := batch.Events[0].GetString("verb")
		assert.Equal(t, "GET", verb)
		seen[batch.SeqNum] = true
	}
	assert.Len(t, seen, 4, "every batch must come out exactly once")

	pipe.Shutdown(context.Background())
}

func TestPipelineID(t *testing.T) {
	first, err := New(testDefinition(), nil)
	require.NoError(t, err)
	second, err := New(testDefinition(), nil)
	require.NoError(t, err)

	assert.Equal(t, first.ID(), second.ID(), "identical definitions must map to the same ID")
	assert.Contains(t, first.ID(), "access-logs")
}
