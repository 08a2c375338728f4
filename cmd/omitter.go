package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
	"sync/atomic"

	"github.com/childe/omitter/input"
	"github.com/childe/omitter/internal/config"
	"github.com/childe/omitter/internal/signal"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"
)

var options = &struct {
	config     string
	autoReload bool // reload when config file changes
	worker     int
	prometheus string
	pprof      bool
	pprofAddr  string
	cpuprofile string
	memprofile string
}{}

var (
	gitCommit string

	boxes           []*input.InputBox
	reloadBoxesLock sync.Mutex

	quitOnce sync.Once
	quit     = make(chan struct{})
)

func init() {
	klog.InitFlags(nil)

	flag.StringVar(&options.config, "config", options.config, "path or http(s) url of the yaml configuration file")
	flag.BoolVar(&options.autoReload, "reload", false, "reload while config file changed")
	flag.IntVar(&options.worker, "worker", 1, "worker thread count")
	flag.StringVar(&options.prometheus, "prometheus", "", "address to expose prometheus metrics on /metrics, e.g. 127.0.0.1:8080")

	flag.BoolVar(&options.pprof, "pprof", false, "if pprof")
	flag.StringVar(&options.pprofAddr, "pprof-address", "127.0.0.1:8899", "default: 127.0.0.1:8899")
	flag.StringVar(&options.cpuprofile, "cpuprofile", "", "write cpu profile to `file`")
	flag.StringVar(&options.memprofile, "memprofile", "", "write mem profile to `file`")
}

func exit() {
	quitOnce.Do(func() { close(quit) })
}

func buildPluginLink(config map[string]any) (boxes []*input.InputBox, err error) {
	inputsI, ok := config["inputs"].([]any)
	if !ok || len(inputsI) == 0 {
		return nil, errors.New("no inputs in config")
	}
	if _, ok := config["outputs"].([]any); !ok {
		return nil, errors.New("no outputs in config")
	}

	boxes = make([]*input.InputBox, 0)
	for inputIdx, inputI := range inputsI {
		i, ok := inputI.(map[any]any)
		if !ok {
			return nil, fmt.Errorf("input[%d] is not a map", inputIdx+1)
		}
		klog.Infof("input[%d] %v", inputIdx+1, i)

		// len(i) is 1
		for inputTypeI, inputConfigI := range i {
			inputType, _ := inputTypeI.(string)
			inputConfig, _ := inputConfigI.(map[any]any)
			if inputConfig == nil {
				inputConfig = make(map[any]any)
			}

			inputPlugin := input.GetInput(inputType, inputConfig)
			if inputPlugin == nil {
				return nil, fmt.Errorf("invalid input plugin %q", inputType)
			}
			boxes = append(boxes, input.NewInputBox(inputPlugin, config))
		}
	}
	return boxes, nil
}

func main() {
	flag.Parse()
	defer klog.Flush()

	klog.Infof("Current build version: %s", gitCommit)

	if options.config == "" {
		klog.Fatal("-config is required")
	}

	if options.pprof {
		go func() {
			klog.Error(http.ListenAndServe(options.pprofAddr, nil))
		}()
	}

	if options.prometheus != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			klog.Error(http.ListenAndServe(options.prometheus, mux))
		}()
	}

	if options.memprofile != "" {
		defer func() {
			f, err := os.Create(options.memprofile)
			if err != nil {
				klog.Fatalf("could not create memory profile: %v", err)
			}
			defer f.Close()
			runtime.GC() // get up-to-date statistics
			if err := pprof.WriteHeapProfile(f); err != nil {
				klog.Fatalf("could not write memory profile: %v", err)
			}
		}()
	}

	if options.cpuprofile != "" {
		f, err := os.Create(options.cpuprofile)
		if err != nil {
			klog.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			klog.Fatalf("could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	cfg, err := config.ParseConfig(options.config)
	if err != nil {
		klog.Fatalf("could not parse config: %v", err)
	}
	if err := ReloadBoxes(cfg); err != nil {
		klog.Fatalf("could not build plugins from config: %v", err)
	}

	if options.autoReload {
		stop, err := config.WatchConfig(options.config, reloadConfig)
		if err != nil {
			klog.Fatalf("watch config fail: %v", err)
		}
		defer stop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go signal.ListenSignal(ctx, exit, reloadConfig)

	<-quit
	reloadBoxesLock.Lock()
	defer reloadBoxesLock.Unlock()
	stopBoxesBeat()
}

func reloadConfig() {
	cfg, err := config.ParseConfig(options.config)
	if err != nil {
		klog.Errorf("could not parse config: %v", err)
		return
	}
	if err := ReloadBoxes(cfg); err != nil {
		klog.Errorf("could not build plugins from config: %v", err)
	}
}

// ReloadBoxes stop current boxes and start new ones.
// it will do nothing if config is not valid
func ReloadBoxes(cfg map[string]any) error {
	reloadBoxesLock.Lock()
	defer reloadBoxesLock.Unlock()

	klog.Infof("config:\n%s", config.RemoveSensitiveInfo(cfg))

	newBoxes, err := buildPluginLink(cfg)
	if err != nil {
		return err
	}
	stopBoxesBeat()
	startBoxesBeat(newBoxes)
	return nil
}

func startBoxesBeat(newBoxes []*input.InputBox) {
	remaining := int32(len(newBoxes))
	for _, box := range newBoxes {
		go func(box *input.InputBox) {
			if box.Beat(options.worker) && atomic.AddInt32(&remaining, -1) == 0 {
				klog.Info("all inputs are exhausted")
				exit()
			}
		}(box)
	}
	boxes = newBoxes
}

func stopBoxesBeat() {
	for _, box := range boxes {
		box.Shutdown()
	}
	boxes = nil
}
