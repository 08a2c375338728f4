package filter

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"k8s.io/klog/v2"
)

func decodeConfig(filterType string, config map[any]any, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           result,
		ErrorUnused:      false,
	})
	if err != nil {
		return fmt.Errorf("%s filter: failed to create config decoder: %w", filterType, err)
	}
	if err := decoder.Decode(config); err != nil {
		return fmt.Errorf("%s filter configuration error: %w", filterType, err)
	}
	return nil
}

// SafeDecodeConfig decodes filter configuration with mapstructure and exits on error.
func SafeDecodeConfig(filterType string, config map[any]any, result any) {
	if err := decodeConfig(filterType, config, result); err != nil {
		klog.Fatal(err)
	}
}
