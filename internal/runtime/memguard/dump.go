//go:build meridian_guarddebug

package memguard

// guardDebugBuild reports whether location-history dumps are compiled
// in. See dump_off.go for the normal-build hint.
const guardDebugBuild = true

// dumpLocationHistory emits the compressed recent-location dump.
// Consecutive duplicates collapse to "<label> * <count>".
func dumpLocationHistory(labels []string) {
	var l lineBuf
	l.str("A dump of recent locations follows\n\n").flush()
	for _, line := range compressHistory(labels) {
		l.str(line).str("\n").flush()
	}
	l.str("\nend of location dump\n").flush()
}
