package memguard

import (
	"encoding/json"
	"fmt"

	"github.com/meridian-lang/meridian/internal/runtime/memzone"
)

// FaultContext is the opaque platform context handed to the router and
// growth policies. The concrete type depends on the delivery strategy.
type FaultContext = memzone.FaultContext

// Signal identifies the hardware trap kind after normalization.
type Signal uint8

const (
	SigUnknown Signal = iota
	SigSegv
	SigBus
)

func (s Signal) String() string {
	switch s {
	case SigSegv:
		return "segmentation violation"
	case SigBus:
		return "bus error"
	default:
		return "unknown signal"
	}
}

// Strategy selects how faults are delivered to the router.
type Strategy int

const (
	// StrategyAuto picks the best strategy the build and host support.
	StrategyAuto Strategy = iota

	// StrategySigcontext installs an inline sigaction handler that
	// reads the fault address and program counter straight out of the
	// delivered context. Needs linux, cgo and the meridian_sigctx
	// build tag.
	StrategySigcontext

	// StrategySiginfo uses the Go runtime's structured fault
	// descriptors: faults on guarded regions surface as panics
	// carrying the fault address, and the captured call stack stands
	// in for the execution context.
	StrategySiginfo

	// StrategyMinimal registers bare signal notification. No fault
	// address is recoverable, so routing is skipped and every
	// delivery is fatal.
	StrategyMinimal
)

func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategySigcontext:
		return "sigcontext"
	case StrategySiginfo:
		return "siginfo"
	case StrategyMinimal:
		return "minimal"
	default:
		return "invalid"
	}
}

// MarshalJSON renders the strategy name, not its ordinal, so
// capability reports stay readable.
func (s Strategy) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the same names ParseStrategy does.
func (s *Strategy) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseStrategy(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStrategy maps a config string to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "auto":
		return StrategyAuto, nil
	case "sigcontext":
		return StrategySigcontext, nil
	case "siginfo":
		return StrategySiginfo, nil
	case "minimal":
		return StrategyMinimal, nil
	default:
		return StrategyAuto, fmt.Errorf("memguard: unknown strategy %q", s)
	}
}

// Trap is the normalized form of one signal delivery.
type Trap struct {
	Sig     Signal
	Addr    uintptr
	HasAddr bool
	Ctx     FaultContext
}

// callersContext is the opaque context produced by the siginfo
// strategy: the fault address from the runtime's descriptor plus the
// call stack captured at recovery.
type callersContext struct {
	addr uintptr
	pcs  [32]uintptr
	npc  int
}

func (c *callersContext) FaultAddress() (uintptr, bool) { return c.addr, true }

func (c *callersContext) PC() (uintptr, bool) {
	if c.npc == 0 {
		return 0, false
	}
	return c.pcs[0], true
}
