package topology

type Processor interface {
	Process(map[string]any) map[string]any
}

// Pipeline sends an event through the filter boxes and then to every output.
type Pipeline struct {
	Filters []*FilterBox
	Outputs OutputsProcessor
}

func NewPipeline(config map[string]any, buildFilter buildFilterFunc, buildOutput buildOutputFunc) *Pipeline {
	return &Pipeline{
		Outputs: BuildOutputs(config, buildOutput),
		Filters: BuildFilterBoxes(config, buildFilter),
	}
}

// Process implement Processor interface
func (p *Pipeline) Process(event map[string]any) map[string]any {
	for _, f := range p.Filters {
		if event = f.Process(event); event == nil {
			return nil
		}
	}
	return p.Outputs.Process(event)
}

func (p *Pipeline) Shutdown() {
	p.Outputs.Shutdown()
}
