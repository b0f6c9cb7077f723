package memguard

import "testing"

func bufString(l *lineBuf) string { return string(l.b[:l.n]) }

func TestLineBufHex(t *testing.T) {
	cases := map[uintptr]string{
		0x0:        "0x0",
		0x1:        "0x1",
		0x2F50:     "0x2f50",
		0xDEADBEEF: "0xdeadbeef",
	}
	for v, want := range cases {
		var l lineBuf
		l.hex(v)
		if got := bufString(&l); got != want {
			t.Errorf("hex(0x%x) = %q, want %q", v, got, want)
		}
	}
}

func TestLineBufDec(t *testing.T) {
	cases := map[uint64]string{
		0:     "0",
		7:     "7",
		12345: "12345",
	}
	for v, want := range cases {
		var l lineBuf
		l.dec(v)
		if got := bufString(&l); got != want {
			t.Errorf("dec(%d) = %q, want %q", v, got, want)
		}
	}
}

func TestLineBufZoneLabel(t *testing.T) {
	var l lineBuf
	l.zone("detstack", 0)
	if got := bufString(&l); got != "detstack#0" {
		t.Errorf("zone label = %q", got)
	}
	l.n = 0
	l.zone("nondetstack", 12)
	if got := bufString(&l); got != "nondetstack#12" {
		t.Errorf("zone label = %q", got)
	}
}

func TestLineBufTruncates(t *testing.T) {
	var l lineBuf
	for i := 0; i < 100; i++ {
		l.str("0123456789")
	}
	if l.n != len(l.b) {
		t.Errorf("overlong message not truncated at buffer size: n=%d", l.n)
	}
	// Further appends must not panic or grow.
	l.str("more").hex(0x1234).dec(99)
	if l.n != len(l.b) {
		t.Errorf("append past truncation changed length: n=%d", l.n)
	}
}

func TestLineBufComposition(t *testing.T) {
	var l lineBuf
	l.str("address involved: ").hex(0x2F50).str("\n")
	if got := bufString(&l); got != "address involved: 0x2f50\n" {
		t.Errorf("composed message = %q", got)
	}
}
