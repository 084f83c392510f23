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
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// idLength is the number of hex characters kept from the digest.
const idLength = 16

// BookmarkID derives the stable identifier of a bookmark from its URL and
// title. Two imports of the same bookmark produce the same ID without any
// shared database.
func BookmarkID(url, title string) string {
	return digest(url + "::" + title)
}

// FolderID derives the stable identifier of a folder from its path.
func FolderID(path []string) string {
	return digest(strings.Join(path, "::"))
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:idLength]
}
