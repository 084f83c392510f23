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

package pipeline

// Register every export parser so ParserFor can dispatch on extension.
import (
	_ "github.com/cloudygreybeard/shelf/pkg/input/firefoxjson"
	_ "github.com/cloudygreybeard/shelf/pkg/input/netscape"
	_ "github.com/cloudygreybeard/shelf/pkg/input/opml"
	_ "github.com/cloudygreybeard/shelf/pkg/input/places"
	_ "github.com/cloudygreybeard/shelf/pkg/input/safari"
)
