package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/fairway/internal/ui/output"
	"go.trai.ch/fairway/internal/ui/style"
)

func TestColorProfile(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile())

	t.Setenv("NO_COLOR", "")
	p := output.ColorProfile()
	assert.True(t, p >= termenv.TrueColor && p <= termenv.Ascii)
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	out := output.New(&buf)

	_, _ = out.WriteString("Magdeburg")
	assert.Equal(t, "Magdeburg", buf.String())
}

func TestNew_NilWriter(t *testing.T) {
	assert.NotNil(t, output.New(nil))
}

func TestPaint_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	out := output.New(&bytes.Buffer{})

	assert.Equal(t, "open", output.Paint(out, "open", style.Marker))
}
