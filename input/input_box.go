package input

import (
	"context"
	"sync"

	"github.com/childe/omitter/filter"
	"github.com/childe/omitter/output"
	"github.com/childe/omitter/topology"
	"k8s.io/klog/v2"
)

type InputBox struct {
	config    map[string]any // whole config
	input     topology.Input
	pipelines []*topology.Pipeline

	mu      sync.Mutex
	beating bool
	stopped bool

	once sync.Once
	stop chan struct{}
	done chan struct{}
}

func NewInputBox(input topology.Input, config map[string]any) *InputBox {
	return &InputBox{
		input:  input,
		config: config,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (box *InputBox) beat(ctx context.Context, p *topology.Pipeline) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		event := box.input.ReadOneEvent()
		if event == nil {
			klog.Info("receive nil message. stop worker")
			return
		}
		p.Process(event)
	}
}

// Beat runs worker goroutines, each with its own filters and outputs, until
// the input is exhausted or Shutdown is called. It returns true when the
// input ran out of events by itself.
func (box *InputBox) Beat(worker int) (exhausted bool) {
	box.mu.Lock()
	if box.stopped {
		box.mu.Unlock()
		return false
	}
	box.beating = true
	box.mu.Unlock()
	defer close(box.done)

	box.pipelines = make([]*topology.Pipeline, worker)
	for i := range box.pipelines {
		box.pipelines[i] = topology.NewPipeline(box.config, filter.BuildFilter, output.BuildOutput)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(worker)
	for i := 0; i < worker; i++ {
		go func(i int) {
			defer wg.Done()
			box.beat(ctx, box.pipelines[i])
		}(i)
	}

	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		exhausted = true
	case <-box.stop:
	}

	klog.Infof("try to shutdown input %T", box.input)
	cancel()
	box.input.Shutdown()
	<-finished

	for i, p := range box.pipelines {
		klog.Infof("try to shutdown outputs in worker %d", i)
		p.Shutdown()
	}
	return exhausted
}

// Shutdown stops the box and waits for Beat to finish. A box shut down before
// Beat starts only closes its input, and a later Beat returns at once.
func (box *InputBox) Shutdown() {
	box.once.Do(func() {
		box.mu.Lock()
		box.stopped = true
		beating := box.beating
		box.mu.Unlock()

		close(box.stop)
		if !beating {
			klog.Infof("shutdown input %T before it beat", box.input)
			box.input.Shutdown()
			close(box.done)
		}
	})
	<-box.done
}
