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

// Package version reports the meshradar build, set via -ldflags -X at link time.
package version

import (
	"fmt"
	"runtime"
)

//nolint:gochecknoglobals // overwritten by ldflags
var (
	version = "dev"
	commit  = "unknown"
)

// Version returns the release version.
func Version() string {
	return version
}

// String renders version, commit and Go runtime on one line.
func String() string {
	return fmt.Sprintf("%s (commit %s, %s)", version, commit, runtime.Version())
}
