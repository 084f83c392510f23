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

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var whitespace = regexp.MustCompile(`\s+`)

// TagsFromPath derives tags from a folder path: each segment lower-cased with
// runs of whitespace replaced by a hyphen.
//
//	TagsFromPath([]string{"Dev Tools", "Go"}) // ["dev-tools", "go"]
func TagsFromPath(path []string) []string {
	lower := cases.Lower(language.Und)
	tags := make([]string, 0, len(path))
	for _, segment := range path {
		tags = append(tags, whitespace.ReplaceAllString(lower.String(segment), "-"))
	}
	return tags
}
