//go:build !(meridian_sigctx && linux && cgo)

package memguard

import "errors"

func sigctxBuilt() bool { return false }

func installSigcontext() error {
	return errors.New("memguard: sigcontext strategy not compiled in (needs linux, cgo and the meridian_sigctx build tag)")
}
