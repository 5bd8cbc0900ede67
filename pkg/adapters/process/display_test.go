package process

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func newDisplay(t *testing.T, command string, args []string, opts ...Option) *Display {
	t.Helper()
	d := New(command, args, opts...)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func readFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

func hasFailed(d *Display, slot string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.failed[slot]
	return ok
}

func TestDisplay_PassesChunkInEnvironment(t *testing.T) {
	skipWithoutShell(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	d := newDisplay(t, "sh", []string{"-c", `printf '%s|%s' "$MARQUEE_SLOT" "$MARQUEE_TEXT" > out.tmp && mv out.tmp out.txt`}, WithBaseDir(dir))
	d.Set("status", "Hello,\n$(whoami); world")

	assert.Eventually(t, func() bool {
		return readFile(out) == "status|Hello,\n$(whoami); world"
	}, 3*time.Second, 10*time.Millisecond)
}

func TestDisplay_SkipsRepeatedText(t *testing.T) {
	skipWithoutShell(t)
	dir := t.TempDir()
	log := filepath.Join(dir, "log.txt")

	d := newDisplay(t, "sh", []string{"-c", `echo "$MARQUEE_TEXT" >> log.txt`}, WithBaseDir(dir))
	d.Set("status", "a")
	require.Eventually(t, func() bool { return readFile(log) == "a\n" }, 3*time.Second, 10*time.Millisecond)

	d.Set("status", "a")
	d.Set("status", "b")
	require.Eventually(t, func() bool { return readFile(log) == "a\nb\n" }, 3*time.Second, 10*time.Millisecond)

	require.NoError(t, d.Close())
	assert.Equal(t, "a\nb\n", readFile(log))
}

func TestDisplay_SetDoesNotWaitForCommand(t *testing.T) {
	skipWithoutShell(t)

	d := New("sh", []string{"-c", "exec sleep 5"}, WithTimeout(5*time.Second))

	start := time.Now()
	d.Set("status", "same chunk")
	d.Set("status", "same chunk")
	d.Set("status", "next chunk")
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	start = time.Now()
	require.NoError(t, d.Close())
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestDisplay_RetriesFailedChunkAfterDelay(t *testing.T) {
	skipWithoutShell(t)
	dir := t.TempDir()
	log := filepath.Join(dir, "log.txt")

	d := newDisplay(t, "sh", []string{"-c", `echo "$MARQUEE_TEXT" >> log.txt; exit 1`},
		WithBaseDir(dir), WithRetryDelay(time.Minute))

	base := time.Now()
	d.mu.Lock()
	d.now = func() time.Time { return base }
	d.mu.Unlock()

	d.Set("status", "a")
	require.Eventually(t, func() bool { return hasFailed(d, "status") }, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, "a\n", readFile(log))

	// Within the delay the failed chunk is not run again.
	d.Set("status", "a")
	d.Set("status", "a")
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, "a\n", readFile(log))

	d.mu.Lock()
	d.now = func() time.Time { return base.Add(2 * time.Minute) }
	d.mu.Unlock()

	d.Set("status", "a")
	assert.Eventually(t, func() bool { return readFile(log) == "a\na\n" }, 3*time.Second, 10*time.Millisecond)
}

func TestDisplay_NewTextRunsDespiteFailure(t *testing.T) {
	skipWithoutShell(t)
	dir := t.TempDir()
	log := filepath.Join(dir, "log.txt")

	d := newDisplay(t, "sh", []string{"-c", `echo "$MARQUEE_TEXT" >> log.txt; exit 1`}, WithBaseDir(dir))

	d.Set("status", "a")
	require.Eventually(t, func() bool { return hasFailed(d, "status") }, 3*time.Second, 10*time.Millisecond)

	d.Set("status", "b")
	assert.Eventually(t, func() bool { return readFile(log) == "a\nb\n" }, 3*time.Second, 10*time.Millisecond)
}

func TestDisplay_Timeout(t *testing.T) {
	skipWithoutShell(t)

	d := newDisplay(t, "sh", []string{"-c", "exec sleep 5"}, WithTimeout(50*time.Millisecond))
	d.Set("status", "slow")

	assert.Eventually(t, func() bool { return hasFailed(d, "status") }, 4*time.Second, 10*time.Millisecond)
}

func TestDisplay_MissingCommand(t *testing.T) {
	d := newDisplay(t, filepath.Join(t.TempDir(), "does-not-exist"), nil)

	assert.NotPanics(t, func() { d.Set("status", "x") })
	assert.Eventually(t, func() bool { return hasFailed(d, "status") }, 3*time.Second, 10*time.Millisecond)
}

func TestDisplay_CloseIsIdempotent(t *testing.T) {
	d := New("true", nil)
	require.NoError(t, d.Close())
	require.NoError(t, d.Close())

	assert.NotPanics(t, func() { d.Set("status", "after close") })
}
