// Copyright 2026 cloudygreybeard
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bookmark

import "errors"

// Errors returned by the import pipeline. Callers match them with errors.Is;
// the wrapping error carries the path or node involved.
var (
	// ErrFileNotFound reports a missing export file or persisted state.
	ErrFileNotFound = errors.New("file not found")

	// ErrUnsupportedFormat reports an export whose extension has no parser.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrParse reports a structurally invalid export. The markup parser
	// never returns it.
	ErrParse = errors.New("parse error")

	// ErrInvalidBookmark reports a bookmark node without a URL. It is
	// collected per node and never aborts an import.
	ErrInvalidBookmark = errors.New("invalid bookmark")

	// ErrNotFound reports an unknown bookmark ID in an edit operation.
	ErrNotFound = errors.New("bookmark not found")
)
