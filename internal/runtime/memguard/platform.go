package memguard

import (
	semver "github.com/Masterminds/semver/v3"

	"github.com/meridian-lang/meridian/internal/runtime/memzone"
)

// Capabilities describes the fault-handling surface of this build on
// this host. Resolved once at startup, not a runtime API.
type Capabilities struct {
	// Strategies lists the usable delivery strategies in preference
	// order; the first entry is what StrategyAuto resolves to. Never
	// empty: the minimal strategy is always present.
	Strategies []Strategy `json:"strategies"`

	PageSize      uintptr `json:"page_size"`
	Protection    bool    `json:"protection"`
	GuardDebug    bool    `json:"guard_debug"`
	KernelRelease string  `json:"kernel_release,omitempty"`
}

// Inline sigcontext delivery needs a siginfo-capable kernel.
var minSigctxKernel = semver.MustParse("2.2.0")

// Probe resolves the capability surface.
func Probe() Capabilities {
	caps := Capabilities{
		PageSize:   memzone.Unit(),
		Protection: memzone.HaveProtection,
		GuardDebug: guardDebugBuild,
	}

	rel, err := kernelRelease()
	if err == nil {
		caps.KernelRelease = rel.Original()
	}
	if sigctxBuilt() && err == nil && !rel.LessThan(minSigctxKernel) {
		caps.Strategies = append(caps.Strategies, StrategySigcontext)
	}
	if memzone.HaveProtection {
		caps.Strategies = append(caps.Strategies, StrategySiginfo)
	}
	caps.Strategies = append(caps.Strategies, StrategyMinimal)
	return caps
}
