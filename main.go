/*
Copyright 2024 SerialLink Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// seriscope is a terminal multiplexer for serial ports: it opens every
// port in config/ports.toml and presents their combined output in a
// single scrollable, searchable TUI.
package main

import (
	"fmt"
	"os"

	"github.com/kesler-labs/seriscope/cmd"
)

// version is set via ldflags at build time.
var version = "dev"

func main() {
	cmd.Version = version

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
