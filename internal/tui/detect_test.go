package tui

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorEnabled_NO_COLOR(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("CI", "")

	assert.False(t, ColorEnabled(os.Stderr))
}

func TestColorEnabled_CI(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CI", "true")

	assert.False(t, ColorEnabled(os.Stderr))
}

func TestColorEnabled_DumbTerminal(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CI", "")
	t.Setenv("TERM", "dumb")

	assert.False(t, ColorEnabled(os.Stderr))
}

func TestColorEnabled_NotATerminal(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CI", "")

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	assert.False(t, ColorEnabled(f))
}

func TestIsTerminal_Nil(t *testing.T) {
	assert.False(t, IsTerminal(nil))
}

func TestPaint_Disabled(t *testing.T) {
	assert.Equal(t, "[WARN]", Paint(WarningStyle, "[WARN]", false))
}

func TestPaint_EnabledKeepsText(t *testing.T) {
	assert.Contains(t, Paint(ErrorStyle, "[ERROR]", true), "[ERROR]")
}
