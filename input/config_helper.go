package input

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// SafeDecodeConfig decodes input configuration with mapstructure and panics on error.
func SafeDecodeConfig(inputType string, config map[any]any, result any) {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           result,
	})
	if err != nil {
		panic(fmt.Sprintf("%s input: failed to create config decoder: %v", inputType, err))
	}
	if err := decoder.Decode(config); err != nil {
		panic(fmt.Sprintf("%s input configuration error: %v", inputType, err))
	}
}
