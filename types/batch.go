package types

// Batch is an ordered collection of events flowing through the pipeline in
// one processing cycle. Processors must return a batch of identical length
// and order; events are mutated in place.
type Batch struct {
	Events []*Event
	SeqNum int64
}

func NewBatch(events []*Event, seqNum int64) *Batch {
	return &Batch{Events: events, SeqNum: seqNum}
}

func (b *Batch) Len() int {
	return len(b.Events)
}
