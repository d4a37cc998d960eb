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

package refresh

import "errors"

var (
	ErrRefreshFailed   = errors.New("topology refresh failed")
	ErrRepollFailed    = errors.New("re-poll request failed")
	ErrNoSnapshot      = errors.New("no topology snapshot available yet")
	ErrNothingToPoll   = errors.New("no online node can be polled for this target")
	errNoPollRequester = errors.New("no poll requester configured")
)
