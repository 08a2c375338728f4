package input

import (
	"bufio"
	"io"
	"os"
	"sync"

	"github.com/childe/omitter/codec"
	"github.com/childe/omitter/topology"
	"k8s.io/klog/v2"
)

// StdinConfig defines the configuration structure for Stdin input
type StdinConfig struct {
	Codec string `mapstructure:"codec"`
}

type StdinInput struct {
	config  map[any]any
	decoder codec.Decoder

	messages chan []byte

	once sync.Once
	stop chan struct{}
}

func init() {
	Register("Stdin", newStdinInput)
}

func newStdinInput(config map[any]any) topology.Input {
	return NewStdinInput(config, os.Stdin)
}

// NewStdinInput reads one event per line from r.
func NewStdinInput(config map[any]any, r io.Reader) *StdinInput {
	var stdinConfig StdinConfig
	SafeDecodeConfig("Stdin", config, &stdinConfig)

	decoder, err := codec.NewDecoder(stdinConfig.Codec)
	if err != nil {
		panic("Stdin input: " + err.Error())
	}

	p := &StdinInput{
		config:   config,
		decoder:  decoder,
		messages: make(chan []byte, 10),
		stop:     make(chan struct{}),
	}

	go func() {
		defer close(p.messages)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := make([]byte, len(scanner.Bytes()))
			copy(line, scanner.Bytes())
			select {
			case p.messages <- line:
			case <-p.stop:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			klog.Errorf("read stdin error: %v", err)
		}
	}()
	return p
}

func (p *StdinInput) ReadOneEvent() map[string]any {
	select {
	case text, more := <-p.messages:
		if !more {
			return nil
		}
		return p.decoder.Decode(text)
	case <-p.stop:
		return nil
	}
}

func (p *StdinInput) Shutdown() {
	p.once.Do(func() { close(p.stop) })
}
