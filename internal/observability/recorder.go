package observability

// Recorder adapts this package's prometheus collectors to
// pipeline.Metrics, so an Injector can be instrumented without the
// core pipeline package importing prometheus.
type Recorder struct {
	PipelineName string
}

func (r Recorder) RecordDispatch(direction string) {
	RecordDispatch(r.PipelineName, direction)
}

func (r Recorder) RecordManagementFanout() {
	RecordManagementFanout(r.PipelineName)
}

func (r Recorder) RecordInjectionFailure(direction string) {
	RecordInjectionFailure(r.PipelineName, direction)
}
