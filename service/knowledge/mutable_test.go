package knowledge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTrendDoc(t *testing.T, dir, name, content string, modTime time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func TestMutableHandlerNewestFirst(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeTrendDoc(t, dir, "old.txt", "old trends", now.Add(-2*time.Hour))
	writeTrendDoc(t, dir, "new.txt", "new trends", now)

	h := NewMutableHandler(dir, nil)
	result, err := h.Answer(context.Background(), "anything")
	require.NoError(t, err)

	assert.Equal(t, []string{"new.txt", "old.txt"}, result.Sources)
	assert.Less(t,
		strings.Index(result.Answer, "new trends"),
		strings.Index(result.Answer, "old trends"),
		"newer content must come first")
}

func TestMutableHandlerSkipsBinaryFiles(t *testing.T) {
	dir := t.TempDir()
	writeTrendDoc(t, dir, "good.txt", "valid trends", time.Now())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"),
		[]byte{0xFF, 0xFE, 0x00, 0x89, 0x50}, 0o644))

	h := NewMutableHandler(dir, nil)
	result, err := h.Answer(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, []string{"good.txt"}, result.Sources)
}

func TestMutableHandlerCapsDocuments(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	for i := 0; i < 8; i++ {
		writeTrendDoc(t, dir, fmt.Sprintf("doc%d.txt", i), "content", now.Add(time.Duration(i)*time.Minute))
	}

	h := NewMutableHandler(dir, nil)
	result, err := h.Answer(context.Background(), "anything")
	require.NoError(t, err)
	assert.Len(t, result.Sources, mutableMaxDocs)
}

func TestTruncateOnRuneKeepsValidUTF8(t *testing.T) {
	s := strings.Repeat("색", 10)

	for max := 0; max <= len(s); max++ {
		out := truncateOnRune(s, max)
		assert.LessOrEqual(t, len(out), max)
		assert.True(t, utf8.ValidString(out), "max %d yields invalid UTF-8", max)
	}

	assert.Equal(t, "abc", truncateOnRune("abc", 5))
}

func TestMutableHandlerEmptyDir(t *testing.T) {
	h := NewMutableHandler(t.TempDir(), nil)
	_, err := h.Answer(context.Background(), "anything")
	assert.Error(t, err)
}

func TestMutableHandlerResyncPicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	h := NewMutableHandler(dir, nil)

	_, err := h.Answer(context.Background(), "anything")
	require.Error(t, err)

	writeTrendDoc(t, dir, "fresh.txt", "fresh trends", time.Now())
	require.NoError(t, h.Resync())

	result, err := h.Answer(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh.txt"}, result.Sources)
}
