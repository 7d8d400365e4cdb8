package notify_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/devantler-tech/flutterkit/pkg/utils/notify"
	"github.com/devantler-tech/flutterkit/pkg/utils/timer"
	"github.com/stretchr/testify/assert"
)

func TestWriteMessage_Types(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		msgType notify.MessageType
		want    string
	}{
		{name: "error", msgType: notify.ErrorType, want: "✗ hello\n"},
		{name: "warning", msgType: notify.WarningType, want: "⚠ hello\n"},
		{name: "activity", msgType: notify.ActivityType, want: "► hello\n"},
		{name: "generate", msgType: notify.GenerateType, want: "✚ hello\n"},
		{name: "success", msgType: notify.SuccessType, want: "✔ hello\n"},
		{name: "info", msgType: notify.InfoType, want: "ℹ hello\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			notify.WriteMessage(notify.Message{
				Type:    testCase.msgType,
				Content: "hello",
				Writer:  &out,
			})

			assert.Equal(t, testCase.want, out.String())
		})
	}
}

func TestWriteMessage_WithFormatting(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Errorf(&out, "error: %s (%d)", "failed", 42)

	assert.Equal(t, "✗ error: failed (42)\n", out.String())
}

func TestWriteMessage_MultiLineContentIndented(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Errorf(&out, "first\nsecond\n\nfourth")

	assert.Equal(t, "✗ first\n  second\n\n  fourth\n", out.String())
}

func TestTitlef_DefaultAndCustomEmoji(t *testing.T) {
	t.Parallel()

	var custom, fallback bytes.Buffer

	notify.Titlef(&custom, "🚀", "Create %s", "app")
	notify.Titlef(&fallback, "", "Info")

	assert.Equal(t, "🚀 Create app\n", custom.String())
	assert.Equal(t, "ℹ️ Info\n", fallback.String())
}

func TestSuccessWithTimerf_RendersTotal(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	tmr := timer.NewWithClock(func() time.Time {
		calls++
		if calls == 1 {
			return base
		}

		return base.Add(1500 * time.Millisecond)
	})
	tmr.Start()

	var out bytes.Buffer

	notify.SuccessWithTimerf(&out, tmr, "done")

	assert.Equal(t, "✔ done\n⏲ total: 1.5s\n", out.String())
}

func TestLineWriter_GenerationsAndSkips(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	writer := notify.NewLineWriter(&out)

	_, err := writer.Write([]byte("  would write: flavorizr.yaml\n  skipped init: .git already present\n"))
	assert.NoError(t, err)

	assert.Equal(
		t,
		"✚ would write: flavorizr.yaml\n⚠ skipped init: .git already present\n",
		out.String(),
	)
}

func TestLineWriter_StylesLines(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	writer := notify.NewLineWriter(&out)

	_, err := writer.Write([]byte("[1/11] Installing\n  ✔ installed\n  would run: x"))
	assert.NoError(t, err)

	_, err = writer.Write([]byte(" y\n✗ broken\ntail"))
	assert.NoError(t, err)

	writer.Flush()

	assert.Equal(
		t,
		"► [1/11] Installing\n✔ installed\n  would run: x y\n✗ broken\ntail\n",
		out.String(),
	)
}
