package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pkg/profile"
)

var profileModes = map[string]func(*profile.Profile){
	"block":     profile.BlockProfile,
	"cpu":       profile.CPUProfile,
	"clock":     profile.ClockProfile,
	"goroutine": profile.GoroutineProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"heap":      profile.MemProfileHeap,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

type noProfile struct{}

func (noProfile) Stop() {}

// startProfile starts the profiler for mode, writing into dir.
// An empty mode disables profiling.
func startProfile(mode, dir string) (interface{ Stop() }, error) {
	if mode == "" {
		return noProfile{}, nil
	}
	fn, ok := profileModes[mode]
	if !ok {
		return nil, fmt.Errorf("profile: unknown mode %q, want one of %s",
			mode, strings.Join(slices.Sorted(maps.Keys(profileModes)), ", "))
	}

	return profile.Start(fn, profile.ProfilePath(dir), profile.Quiet, profile.NoShutdownHook), nil
}
