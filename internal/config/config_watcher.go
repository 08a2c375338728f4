package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"
)

// WatchConfig calls reloadFunc each time filename is written or replaced.
// The watch stops when the returned func is called.
func WatchConfig(filename string, reloadFunc func()) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// editors replace the file on save, so the directory is watched instead of the file
	if err := watcher.Add(filepath.Dir(filename)); err != nil {
		watcher.Close()
		return nil, err
	}
	target := filepath.Clean(filename)

	go func() {
		for {
			select {
			case event, more := <-watcher.Events:
				if !more {
					klog.Info("no more event from config file watcher")
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				klog.V(2).Infof("config file event: %v", event)
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					reloadFunc()
				}
			case err, more := <-watcher.Errors:
				if !more {
					klog.Info("no more event from error channel of config file watcher")
					return
				}
				klog.Errorf("error from config file watcher: %v", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
