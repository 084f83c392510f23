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

package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
	"github.com/cloudygreybeard/shelf/pkg/config"
	"github.com/cloudygreybeard/shelf/pkg/state"
)

type reply struct {
	ID     interface{}     `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *Error          `json:"error"`
}

type textContent struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "bookmarks.json")

	data := &bookmark.Data{
		SchemaVersion: bookmark.SchemaVersion,
		Root:          bookmark.NewRoot(),
		FlatBookmarks: []*bookmark.Bookmark{},
		SyncInfo:      &bookmark.SyncInfo{ImportHistory: []bookmark.ImportRecord{}},
	}
	now := time.Unix(1700000000, 0)
	_, err := bookmark.AddManual(data, "Example", "https://example.com", []string{"Reading"}, now)
	require.NoError(t, err)
	_, err = bookmark.AddManual(data, "The Go Blog", "https://go.dev/blog", []string{"Dev", "Go"}, now)
	require.NoError(t, err)
	require.NoError(t, state.Save(path, data))

	cfg := config.Default()
	cfg.State.Path = path
	return NewServer(cfg, nil, "test"), dir
}

// roundTrip feeds the request lines to the server and decodes every reply.
func roundTrip(t *testing.T, s *Server, lines ...string) []reply {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, s.Serve(context.Background(), in, &out))

	var replies []reply
	dec := json.NewDecoder(&out)
	for dec.More() {
		var r reply
		require.NoError(t, dec.Decode(&r))
		replies = append(replies, r)
	}
	return replies
}

func call(t *testing.T, s *Server, line string) reply {
	t.Helper()
	replies := roundTrip(t, s, line)
	require.Len(t, replies, 1)
	return replies[0]
}

func text(t *testing.T, r reply) string {
	t.Helper()
	require.Nil(t, r.Error)
	var c textContent
	require.NoError(t, json.Unmarshal(r.Result, &c))
	require.Len(t, c.Content, 1)
	assert.Equal(t, "text", c.Content[0].Type)
	return c.Content[0].Text
}

func TestInitializeAndPing(t *testing.T) {
	s, _ := newTestServer(t)
	replies := roundTrip(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	)
	require.Len(t, replies, 2)

	assert.EqualValues(t, 1, replies[0].ID)
	var init struct {
		ProtocolVersion string            `json:"protocolVersion"`
		ServerInfo      map[string]string `json:"serverInfo"`
	}
	require.NoError(t, json.Unmarshal(replies[0].Result, &init))
	assert.Equal(t, protocolVersion, init.ProtocolVersion)
	assert.Equal(t, "shelf", init.ServerInfo["name"])
	assert.Equal(t, "test", init.ServerInfo["version"])

	assert.EqualValues(t, 2, replies[1].ID)
	assert.Nil(t, replies[1].Error)
}

func TestProtocolErrors(t *testing.T) {
	s, _ := newTestServer(t)
	replies := roundTrip(t, s,
		`{not json`,
		`{"jsonrpc":"2.0","id":"x","method":"bookmarks/delete"}`,
		`{"jsonrpc":"2.0","id":3,"method":"resources/read","params":{"uri":"shelf://nope"}}`,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"nope"}}`,
	)
	require.Len(t, replies, 4)

	require.NotNil(t, replies[0].Error)
	assert.Equal(t, codeParseError, replies[0].Error.Code)
	assert.Nil(t, replies[0].ID)

	require.NotNil(t, replies[1].Error)
	assert.Equal(t, codeMethodNotFound, replies[1].Error.Code)
	assert.Equal(t, "x", replies[1].ID)

	require.NotNil(t, replies[2].Error)
	assert.Equal(t, codeInvalidParams, replies[2].Error.Code)
	assert.Contains(t, replies[2].Error.Message, "shelf://nope")

	require.NotNil(t, replies[3].Error)
	assert.Equal(t, codeInvalidParams, replies[3].Error.Code)
}

func TestServeStopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := s.Serve(ctx, strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`+"\n"), &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, out.Len())
}

func TestResources(t *testing.T) {
	s, _ := newTestServer(t)

	r := call(t, s, `{"jsonrpc":"2.0","id":1,"method":"resources/list"}`)
	var list struct {
		Resources []Resource `json:"resources"`
	}
	require.NoError(t, json.Unmarshal(r.Result, &list))
	var uris []string
	for _, res := range list.Resources {
		uris = append(uris, res.URI)
	}
	assert.Equal(t, []string{"shelf://bookmarks", "shelf://markdown", "shelf://netscape", "shelf://history"}, uris)

	r = call(t, s, `{"jsonrpc":"2.0","id":2,"method":"resources/read","params":{"uri":"shelf://bookmarks"}}`)
	require.Nil(t, r.Error)
	var read struct {
		Contents []struct {
			URI      string `json:"uri"`
			MimeType string `json:"mimeType"`
			Text     string `json:"text"`
		} `json:"contents"`
	}
	require.NoError(t, json.Unmarshal(r.Result, &read))
	require.Len(t, read.Contents, 1)
	assert.Equal(t, "application/json", read.Contents[0].MimeType)
	assert.Contains(t, read.Contents[0].Text, "https://go.dev/blog")

	r = call(t, s, `{"jsonrpc":"2.0","id":3,"method":"resources/read","params":{"uri":"shelf://netscape"}}`)
	require.NoError(t, json.Unmarshal(r.Result, &read))
	assert.Contains(t, read.Contents[0].Text, "<!DOCTYPE NETSCAPE-Bookmark-file-1>")

	r = call(t, s, `{"jsonrpc":"2.0","id":4,"method":"resources/read","params":{"uri":"shelf://history"}}`)
	require.NoError(t, json.Unmarshal(r.Result, &read))
	assert.Equal(t, "[]", read.Contents[0].Text)
}

func TestMissingState(t *testing.T) {
	cfg := config.Default()
	cfg.State.Path = filepath.Join(t.TempDir(), "missing.json")
	s := NewServer(cfg, nil, "test")

	r := call(t, s, `{"jsonrpc":"2.0","id":1,"method":"resources/read","params":{"uri":"shelf://bookmarks"}}`)
	require.NotNil(t, r.Error)
	assert.Equal(t, codeServerError, r.Error.Code)
	assert.Contains(t, r.Error.Message, bookmark.ErrFileNotFound.Error())
}

func TestToolsList(t *testing.T) {
	s, _ := newTestServer(t)
	r := call(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)

	var list struct {
		Tools []Tool `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(r.Result, &list))
	var names []string
	for _, tool := range list.Tools {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"search_bookmarks", "get_bookmark", "preview_import", "reload"}, names)
}

func TestSearchBookmarks(t *testing.T) {
	s, _ := newTestServer(t)

	out := text(t, call(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"search_bookmarks","arguments":{"query":"GO"}}}`))
	assert.True(t, strings.HasPrefix(out, "Found 1 matches:"), out)
	assert.Contains(t, out, `"folder": "Dev/Go"`)

	out = text(t, call(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"search_bookmarks","arguments":{"query":"","tag":"reading"}}}`))
	assert.True(t, strings.HasPrefix(out, "Found 1 matches:"), out)
	assert.Contains(t, out, "https://example.com")

	out = text(t, call(t, s, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"search_bookmarks","arguments":{"query":"nothing here"}}}`))
	assert.Equal(t, "Found 0 matches:\n[]", out)
}

func TestGetBookmark(t *testing.T) {
	s, _ := newTestServer(t)
	id := bookmark.BookmarkID("https://example.com", "Example")

	out := text(t, call(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"get_bookmark","arguments":{"id":"`+id+`"}}}`))
	var b bookmark.Bookmark
	require.NoError(t, json.Unmarshal([]byte(out), &b))
	assert.Equal(t, "Example", b.Title)
	assert.Equal(t, bookmark.SourceManual, b.Source)

	r := call(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"get_bookmark","arguments":{"id":"0000000000000000"}}}`)
	require.NotNil(t, r.Error)
	assert.Contains(t, r.Error.Message, bookmark.ErrNotFound.Error())

	r = call(t, s, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"get_bookmark"}}`)
	require.NotNil(t, r.Error)
	assert.Equal(t, codeInvalidParams, r.Error.Code)
}

func TestPreviewImport(t *testing.T) {
	s, dir := newTestServer(t)
	export := filepath.Join(dir, "export.html")
	require.NoError(t, os.WriteFile(export, []byte(`<DL><p>
<DT><H3>Reading</H3>
<DL><p>
<DT><A HREF="https://example.com">Example Domain</A>
</DL><p>
<DT><A HREF="https://new.example.org">New</A>
</DL><p>`), 0644))

	args, err := json.Marshal(map[string]interface{}{
		"name":      "preview_import",
		"arguments": map[string]string{"path": export},
	})
	require.NoError(t, err)

	out := text(t, call(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":`+string(args)+`}`))
	assert.Contains(t, out, "https://go.dev/blog")
	assert.Contains(t, out, "https://new.example.org")
	assert.Contains(t, out, "Example Domain")

	r := call(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"preview_import","arguments":{}}}`)
	require.NotNil(t, r.Error)
	assert.Equal(t, codeInvalidParams, r.Error.Code)
}

func TestReload(t *testing.T) {
	s, _ := newTestServer(t)

	out := text(t, call(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"reload"}}`))
	assert.Equal(t, "Loaded 2 bookmarks", out)

	doc, err := state.Load(s.config.State.Path)
	require.NoError(t, err)
	_, err = bookmark.Remove(doc, bookmark.BookmarkID("https://example.com", "Example"))
	require.NoError(t, err)
	require.NoError(t, state.Save(s.config.State.Path, doc))

	out = text(t, call(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"reload"}}`))
	assert.Equal(t, "Loaded 1 bookmarks", out)
}
