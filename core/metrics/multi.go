package metrics

// MultiSink fans evaluation events out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordEvaluation forwards the records to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordEvaluation(recs []EvaluationRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordEvaluation(recs); err != nil {
			return err
		}
	}
	return nil
}

// RecordBatch forwards batch events to the sinks that record them.
func (m *MultiSink) RecordBatch(ev BatchEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(BatchRecorder); ok {
			if err := rec.RecordBatch(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
