package main

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
	yaml "gopkg.in/yaml.v2"
)

func TestBuildPluginLink(t *testing.T) {
	convey.Convey("test buildPluginLink", t, func() {
		c := `inputs:
    - Stdin:
        codec: json
    - TCP:
        address: 127.0.0.1:0
        codec: json

filters:
  - Omit:
      fields: ['user.password', 'token']

outputs:
  - Stdout: {}`

		config := make(map[string]any)
		convey.So(yaml.Unmarshal([]byte(c), &config), convey.ShouldBeNil)

		boxes, err := buildPluginLink(config)
		convey.So(err, convey.ShouldBeNil)
		convey.So(len(boxes), convey.ShouldEqual, 2)
	})

	convey.Convey("invalid configs", t, func() {
		for _, c := range []string{
			`outputs: [{Stdout: {}}]`,
			`inputs: [{Stdin: {}}]`,
			`inputs: [{NoSuchInput: {}}]
outputs: [{Stdout: {}}]`,
		} {
			config := make(map[string]any)
			convey.So(yaml.Unmarshal([]byte(c), &config), convey.ShouldBeNil)

			_, err := buildPluginLink(config)
			convey.So(err, convey.ShouldNotBeNil)
		}
	})
}
