package config

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

type YamlParser struct{}

func (yp *YamlParser) parse(filepath string) (map[string]any, error) {
	var (
		buffer []byte
		err    error
	)
	if strings.HasPrefix(filepath, "http://") || strings.HasPrefix(filepath, "https://") {
		resp, err := http.Get(filepath)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("get config from %s: %s", filepath, resp.Status)
		}
		if buffer, err = io.ReadAll(resp.Body); err != nil {
			return nil, err
		}
	} else {
		if buffer, err = os.ReadFile(filepath); err != nil {
			return nil, err
		}
	}
	if len(buffer) == 0 {
		return nil, fmt.Errorf("config file (%s) is empty", filepath)
	}

	buffer = []byte(os.ExpandEnv(string(buffer)))

	config := make(map[string]any)
	if err = yaml.Unmarshal(buffer, &config); err != nil {
		return nil, err
	}
	return config, nil
}
