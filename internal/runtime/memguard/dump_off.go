//go:build !meridian_guarddebug

package memguard

const guardDebugBuild = false

// dumpLocationHistory in normal builds only points at the capability.
func dumpLocationHistory(labels []string) {
	var l lineBuf
	l.str("You can get a location dump by building with the meridian_guarddebug tag\n").flush()
}
