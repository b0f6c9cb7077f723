package memguard

// Signal-safe diagnostic output. The fault path may run while the
// process is in an inconsistent state, so every message is assembled
// in a fixed buffer and emitted with a single raw write; nothing here
// touches fmt, buffered writers or the allocator.

const stderrFD = 2

// lineBuf assembles one diagnostic message. Overlong content is
// silently truncated; partial output is tolerated since the process is
// already exiting when these messages matter.
type lineBuf struct {
	b [512]byte
	n int
}

func (l *lineBuf) str(s string) *lineBuf {
	for i := 0; i < len(s) && l.n < len(l.b); i++ {
		l.b[l.n] = s[i]
		l.n++
	}
	return l
}

func (l *lineBuf) byteChar(c byte) *lineBuf {
	if l.n < len(l.b) {
		l.b[l.n] = c
		l.n++
	}
	return l
}

const hexDigits = "0123456789abcdef"

// hex renders v as 0x-prefixed lowercase hexadecimal.
func (l *lineBuf) hex(v uintptr) *lineBuf {
	l.str("0x")
	if v == 0 {
		return l.byteChar('0')
	}
	var tmp [16]byte
	i := len(tmp)
	for v > 0 {
		i--
		tmp[i] = hexDigits[v&0xf]
		v >>= 4
	}
	for ; i < len(tmp); i++ {
		l.byteChar(tmp[i])
	}
	return l
}

// dec renders v in decimal.
func (l *lineBuf) dec(v uint64) *lineBuf {
	if v == 0 {
		return l.byteChar('0')
	}
	var tmp [20]byte
	i := len(tmp)
	for v > 0 {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
	}
	for ; i < len(tmp); i++ {
		l.byteChar(tmp[i])
	}
	return l
}

// zone renders the "name#id" diagnostic label without allocating.
func (l *lineBuf) zone(name string, id int) *lineBuf {
	l.str(name).byteChar('#')
	if id < 0 {
		l.byteChar('-')
		return l.dec(uint64(-id))
	}
	return l.dec(uint64(id))
}

// flush emits the buffered message with one write and resets the
// buffer for reuse.
func (l *lineBuf) flush() {
	l.flushTo(stderrFD)
}

func (l *lineBuf) flushTo(fd int) {
	if l.n > 0 {
		rawWrite(fd, l.b[:l.n])
	}
	l.n = 0
}
