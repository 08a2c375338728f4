package topology

import "k8s.io/klog/v2"

type Output interface {
	Emit(map[string]any)
	Shutdown()
}

type buildOutputFunc func(outputType string, config map[any]any) Output

// BuildOutputs builds the outputs listed under `outputs`.
func BuildOutputs(config map[string]any, buildOutput buildOutputFunc) OutputsProcessor {
	rst := make(OutputsProcessor, 0)

	outputsI, _ := config["outputs"].([]any)
	for _, outputI := range outputsI {
		// len(outputI) is 1
		for outputTypeI, outputConfigI := range outputI.(map[any]any) {
			outputType := outputTypeI.(string)
			klog.Infof("output type: %s", outputType)

			outputConfig, _ := outputConfigI.(map[any]any)
			if outputConfig == nil {
				outputConfig = make(map[any]any)
			}
			klog.Infof("output config: %v", outputConfig)

			outputPlugin := buildOutput(outputType, outputConfig)
			if outputPlugin == nil {
				klog.Fatalf("could not build %s output", outputType)
			}
			rst = append(rst, outputPlugin)
		}
	}
	return rst
}

type OutputsProcessor []Output

// Process implement Processor interface
func (p OutputsProcessor) Process(event map[string]any) map[string]any {
	for _, o := range p {
		o.Emit(event)
	}
	return nil
}

func (p OutputsProcessor) Shutdown() {
	for _, o := range p {
		klog.Infof("try to shutdown output %T", o)
		o.Shutdown()
	}
}
