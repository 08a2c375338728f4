//go:build windows
// +build windows

package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"k8s.io/klog/v2"
)

// ListenSignal calls termFunc on SIGINT/SIGTERM until ctx is done. There is no reload signal on windows.
func ListenSignal(ctx context.Context, termFunc func(), reloadFunc func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(c)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-c:
			klog.Infof("capture signal: %v", sig)
			termFunc()
		}
	}
}
