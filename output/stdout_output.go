package output

import (
	"io"
	"os"
	"sync"

	"github.com/childe/omitter/codec"
	"github.com/childe/omitter/topology"
	"k8s.io/klog/v2"
)

// StdoutConfig defines the configuration structure for Stdout output
type StdoutConfig struct {
	Codec string `mapstructure:"codec"`
}

// every worker has its own StdoutOutput, they share one writer
var (
	stdoutLock sync.Mutex
	stdout     io.Writer = os.Stdout
)

// SetStdout redirects every Stdout output to w and returns a func restoring the previous writer.
func SetStdout(w io.Writer) (restore func()) {
	stdoutLock.Lock()
	defer stdoutLock.Unlock()
	prev := stdout
	stdout = w
	return func() {
		stdoutLock.Lock()
		defer stdoutLock.Unlock()
		stdout = prev
	}
}

type StdoutOutput struct {
	config  map[any]any
	encoder codec.Encoder
}

func init() {
	Register("Stdout", newStdoutOutput)
}

func newStdoutOutput(config map[any]any) topology.Output {
	var stdoutConfig StdoutConfig
	SafeDecodeConfig("Stdout", config, &stdoutConfig)

	encoder, err := codec.NewEncoder(stdoutConfig.Codec)
	if err != nil {
		panic("Stdout output: " + err.Error())
	}
	return &StdoutOutput{
		config:  config,
		encoder: encoder,
	}
}

func (p *StdoutOutput) Emit(event map[string]any) {
	buf, err := p.encoder.Encode(event)
	if err != nil {
		klog.Errorf("marshal %v error: %v", event, err)
		return
	}
	buf = append(buf, '\n')

	stdoutLock.Lock()
	defer stdoutLock.Unlock()
	if _, err := stdout.Write(buf); err != nil {
		klog.Errorf("write stdout error: %v", err)
	}
}

func (p *StdoutOutput) Shutdown() {}
