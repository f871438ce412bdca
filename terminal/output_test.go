package terminal

import (
	"bytes"
	"testing"
)

func TestOutput_NothingBeforeFlush(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutput(&buf)
	o.WriteString("$ ")
	if buf.Len() != 0 {
		t.Fatalf("expected buffered output, device saw %q", buf.String())
	}
	if err := o.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if buf.String() != "$ " {
		t.Errorf("got %q", buf.String())
	}
}

func TestOutput_Column(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{0, "\x1b[1G"},
		{1, "\x1b[1G"},
		{3, "\x1b[3G"},
		{42, "\x1b[42G"},
		{999, "\x1b[999G"},
		{4099, "\x1b[4099G"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		o := NewOutput(&buf)
		o.Column(tt.col)
		o.Flush()
		if buf.String() != tt.want {
			t.Errorf("Column(%d) = %q, want %q", tt.col, buf.String(), tt.want)
		}
	}
}

func TestOutput_Newline(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutput(&buf)
	o.Newline()
	o.Flush()
	if buf.String() != "\r\n" {
		t.Errorf("default newline = %q", buf.String())
	}

	buf.Reset()
	o = NewOutput(&buf, WithNewline(NewlineLF))
	o.Newline()
	o.Flush()
	if buf.String() != "\n" {
		t.Errorf("lf newline = %q", buf.String())
	}
}

func TestOutput_CharsetEncoding(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutput(&buf, WithOutputCharset(Latin1))
	o.WriteRunes([]rune("né世"))
	o.Flush()
	if !bytes.Equal(buf.Bytes(), []byte{'n', 0xe9, '?'}) {
		t.Errorf("got %x", buf.Bytes())
	}
}

func TestOutput_SpacesAndBell(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutput(&buf)
	o.Spaces(3)
	o.Bell()
	o.Spaces(0)
	o.Flush()
	if buf.String() != "   \a" {
		t.Errorf("got %q", buf.String())
	}
}
