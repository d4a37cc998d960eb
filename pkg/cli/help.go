/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cli

import (
	"fmt"
	"os"
)

// ShowHelp prints usage for meshmap-cli.
func ShowHelp() {
	fmt.Fprint(os.Stderr, `Usage: meshmap-cli -snapshot <file> [options]

Browse the Thread or WiFi topology inferred from a diagnostics snapshot.

Options:
  -snapshot string   path to a JSON diagnostics snapshot (required)
  -network string    graph to show: thread or wifi (default "thread")
  -print             render the graph once and exit
  -help              show this help message

Keys (interactive mode):
  up/down    move the selection
  enter      show the selected node's connections and re-poll set
  tab        switch between the thread and wifi graphs
  esc        back to the node list
  q, ctrl+c  quit

Examples:
  # Browse the Thread mesh
  meshmap-cli -snapshot /var/lib/meshradar/snapshot.json

  # Print the WiFi star graph
  meshmap-cli -snapshot snapshot.json -network wifi -print
`)
}
