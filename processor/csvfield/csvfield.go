package csvfield

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/tributary-io/tributary/constants"
	"github.com/tributary-io/tributary/processor"
	"github.com/tributary-io/tributary/types"
)

// headerOrigin records which tier of the resolution policy produced a header.
type headerOrigin string

const (
	headerFromEventField   headerOrigin = "event_field"
	headerFromStaticConfig headerOrigin = "static_config"
	headerAutoGenerated    headerOrigin = "auto_generated"
)

type Stats struct {
	Processed atomic.Int64
	Failed    atomic.Int64
}

// CSV parses a delimited line held in one event field and merges the
// resulting named values back into the event.
//
// Header names come from, in priority order: a per-event header field, the
// statically configured column_names, or generated "columnN" names. The
// processor is stateless across events; the splitter is built once at Init
// and shared read-only, so Execute is safe to call from concurrent workers
// operating on disjoint events.
type CSV struct {
	config      Config
	splitter    Splitter
	diagnostics processor.Diagnostics
	stats       Stats
}

func init() {
	processor.Registered[constants.CSVProcessor] = func() processor.Processor {
		return &CSV{diagnostics: processor.DefaultDiagnostics()}
	}
}

func (p *CSV) GetConfigRef() processor.Config {
	return &p.config
}

func (p *CSV) Spec() any {
	return Config{
		Source:         constants.DefaultSourceKey,
		Delimiter:      constants.DefaultDelimiter,
		QuoteCharacter: constants.DefaultQuoteCharacter,
	}
}

func (p *CSV) Type() string {
	return string(constants.CSVProcessor)
}

func (p *CSV) SetDiagnostics(diagnostics processor.Diagnostics) {
	p.diagnostics = diagnostics
}

// Init builds the shared splitter; config is validated before Init runs, so
// the single-character indexing here is safe.
func (p *CSV) Init() error {
	p.splitter = NewSplitter(p.config.Delimiter[0], p.config.QuoteCharacter[0])
	return nil
}

// Execute transforms each event independently. A failure on one event never
// affects another and never escapes the batch call; the worst outcome for a
// single event is passing through unmodified with a diagnostic emitted.
func (p *CSV) Execute(events []*types.Event) []*types.Event {
	for _, event := range events {
		p.processEvent(event)
	}
	return events
}

func (p *CSV) processEvent(event *types.Event) {
	line, ok := event.GetString(p.config.Source)
	if !ok {
		p.stats.Failed.Add(1)
		p.diagnostics.EventFailure(event, fmt.Errorf("source field %q is missing or not a string", p.config.Source))
		return
	}

	eventHasHeaderSource := p.config.ColumnNamesSourceKey != "" && event.Contains(p.config.ColumnNamesSourceKey)

	row, err := p.splitter.SplitLine(line)
	if err != nil {
		p.stats.Failed.Add(1)
		p.diagnostics.EventFailure(event, fmt.Errorf("failed to parse source field %q: %s", p.config.Source, err))
	} else if len(row) > 0 {
		// a blank source line means no data, not one empty column; skip
		// header resolution entirely in that case
		header, _ := p.resolveHeader(event, eventHasHeaderSource)
		putRowInEvent(event, header, row)
		p.stats.Processed.Add(1)
	} else {
		p.stats.Processed.Add(1)
	}

	// The header field is consumed whenever it was configured and present,
	// even when its own parse failed above. Contractual behavior, do not
	// gate this on the header resolution outcome.
	if eventHasHeaderSource && p.config.DeleteHeader {
		event.Delete(p.config.ColumnNamesSourceKey)
	}
}

// resolveHeader picks the column names for one event.
//
// A malformed header source is recoverable: the event still gets its values
// under generated column names, and the failure only surfaces through the
// diagnostics observer.
func (p *CSV) resolveHeader(event *types.Event, eventHasHeaderSource bool) ([]string, headerOrigin) {
	if eventHasHeaderSource {
		headerLine, ok := event.GetString(p.config.ColumnNamesSourceKey)
		if !ok {
			p.diagnostics.RecoveredFailure(event, fmt.Errorf("header source field %q is not a string, auto generating columns", p.config.ColumnNamesSourceKey))
			return nil, headerAutoGenerated
		}
		header, err := p.splitter.SplitLine(headerLine)
		if err != nil {
			p.diagnostics.RecoveredFailure(event, fmt.Errorf("failed to parse header source field %q, auto generating columns: %s", p.config.ColumnNamesSourceKey, err))
			return nil, headerAutoGenerated
		}
		return header, headerFromEventField
	}

	if p.config.ColumnNames != nil {
		return p.config.ColumnNames, headerFromStaticConfig
	}

	return nil, headerAutoGenerated
}

// putRowInEvent zips header names against row values. Row positions past the
// header get generated names keyed off their absolute 1-based position;
// header names past the row are dropped without creating empty fields.
func putRowInEvent(event *types.Event, header, row []string) {
	idx := 0
	for ; idx < len(header) && idx < len(row); idx++ {
		event.Put(header[idx], row[idx])
	}
	for ; idx < len(row); idx++ {
		event.Put(autoColumnName(idx), row[idx])
	}
}

func autoColumnName(idx int) string {
	return constants.AutoColumnPrefix + strconv.Itoa(idx+1)
}

func (p *CSV) Stats() (processed, failed int64) {
	return p.stats.Processed.Load(), p.stats.Failed.Load()
}

func (p *CSV) PrepareForShutdown() {}

// IsReadyForShutdown is always true: the processor holds no buffered state.
func (p *CSV) IsReadyForShutdown() bool {
	return true
}

func (p *CSV) Shutdown() {}
