package output

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// SafeDecodeConfig decodes output configuration with mapstructure and panics on error.
func SafeDecodeConfig(outputType string, config map[any]any, result any) {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		Result:           result,
	})
	if err != nil {
		panic(fmt.Sprintf("%s output: failed to create config decoder: %v", outputType, err))
	}
	if err := decoder.Decode(config); err != nil {
		panic(fmt.Sprintf("%s output configuration error: %v", outputType, err))
	}
}
