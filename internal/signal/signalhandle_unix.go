//go:build linux || darwin
// +build linux darwin

package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"k8s.io/klog/v2"
)

// ListenSignal calls termFunc on SIGINT/SIGTERM and reloadFunc on SIGUSR1 until ctx is done.
func ListenSignal(ctx context.Context, termFunc func(), reloadFunc func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR1)
	defer signal.Stop(c)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-c:
			klog.Infof("capture signal: %v", sig)
			switch sig {
			case syscall.SIGINT, syscall.SIGTERM:
				termFunc()
			case syscall.SIGUSR1:
				reloadFunc()
			}
		}
	}
}
