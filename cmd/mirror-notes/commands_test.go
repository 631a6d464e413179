package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"OPENAI_API_KEY", "GEMINI_API_KEY", "DEBUG", "MIRROR_NOTES_LLM_API_KEY", "MIRROR_NOTES_LLM_BASE_URL"} {
		t.Setenv(key, "")
	}
	return filepath.Join(t.TempDir(), "notes.json")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAddListShow(t *testing.T) {
	notes := isolate(t)

	out, err := run(t, "--notes-file", notes, "--log-level", "error", "add", "--title", "Groceries", "--content", "milk\neggs")
	require.NoError(t, err)
	assert.Equal(t, "saved note 0\n", out)

	_, err = run(t, "--notes-file", notes, "--log-level", "error", "add", "-t", "Ideas", "-c", "robots")
	require.NoError(t, err)

	out, err = run(t, "--notes-file", notes, "--log-level", "error", "list")
	require.NoError(t, err)
	assert.Equal(t, "0\tGroceries\n1\tIdeas\n", out)

	out, err = run(t, "--notes-file", notes, "--log-level", "error", "show", "0")
	require.NoError(t, err)
	assert.Equal(t, "Groceries\n\nmilk\neggs\n", out)

	data, err := os.ReadFile(notes)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title":"Groceries","content":"milk\neggs"},{"title":"Ideas","content":"robots"}]`, string(data))
}

func TestAddRejectsEmptyContent(t *testing.T) {
	notes := isolate(t)

	_, err := run(t, "--notes-file", notes, "--log-level", "error", "add", "--title", "only a title")
	assert.Error(t, err)

	_, statErr := os.Stat(notes)
	assert.True(t, os.IsNotExist(statErr))
}

func TestShowOutOfRange(t *testing.T) {
	notes := isolate(t)

	_, err := run(t, "--notes-file", notes, "--log-level", "error", "show", "3")
	assert.Error(t, err)

	_, err = run(t, "--notes-file", notes, "--log-level", "error", "show", "three")
	assert.Error(t, err)
}

func TestAskUsesSelectedNote(t *testing.T) {
	notes := isolate(t)

	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotPrompt = body.Messages[0].Content
		w.Write([]byte(`{"choices":[{"message":{"content":"Buy milk."}}]}`))
	}))
	defer server.Close()

	t.Setenv("MIRROR_NOTES_LLM_BASE_URL", server.URL)
	t.Setenv("MIRROR_NOTES_LLM_API_KEY", "sk-test")

	_, err := run(t, "--notes-file", notes, "--log-level", "error", "add", "-t", "Groceries", "-c", "milk")
	require.NoError(t, err)

	out, err := run(t, "--notes-file", notes, "--log-level", "error", "ask", "--raw", "--note", "0", "what", "now?")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk.\n", out)
	assert.Equal(t,
		"Titles of all notes:\nGroceries\n\nCurrent note title: Groceries\nCurrent note content: milk\n\nUser's question: what now?",
		gotPrompt)
}

func TestAskBlankQuestionMakesNoRequest(t *testing.T) {
	notes := isolate(t)

	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()
	t.Setenv("MIRROR_NOTES_LLM_BASE_URL", server.URL)
	t.Setenv("MIRROR_NOTES_LLM_API_KEY", "sk-test")

	_, err := run(t, "--notes-file", notes, "--log-level", "error", "ask", "  ")
	assert.Error(t, err)
	assert.Zero(t, atomic.LoadInt32(&hits))

	_, statErr := os.Stat(notes)
	assert.True(t, os.IsNotExist(statErr))
}

func TestImportCommand(t *testing.T) {
	notes := isolate(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "todo.md"), []byte("---\ntitle: Todo\n---\nship it\n"), 0o644))

	out, err := run(t, "--notes-file", notes, "--log-level", "error", "import", filepath.Join(dir, "**", "*.md"))
	require.NoError(t, err)
	assert.Equal(t, "imported 1 notes\n", out)

	out, err = run(t, "--notes-file", notes, "--log-level", "error", "list")
	require.NoError(t, err)
	assert.Equal(t, "0\tTodo\n", out)
}

func TestRenderMarkdownKeepsText(t *testing.T) {
	assert.Contains(t, renderMarkdown("**bold** answer"), "answer")
}
