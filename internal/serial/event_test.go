package serial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventTextTrimsTrailingLineEndingAndFixesUTF8(t *testing.T) {
	cases := map[string]string{
		"hello\r\n":           "hello",
		"hello\n":             "hello",
		"hello\r":             "hello",
		"no newline":          "no newline",
		"hello\xff\r\n":       "hello�",
		"mid\nline":           "mid\nline",
		"trailing space \r\n": "trailing space ",
	}
	for in, want := range cases {
		ev := DataEvent("A", []byte(in), time.Time{})
		assert.Equal(t, want, ev.Text(), "input %q", in)
	}
}
