// Package version implements the Version Compatibility Gate (spec §4.1): a
// pre-check that rejects controller/participant pairs whose declared
// primary versions are incompatible before any state computation runs.
//
// Grounded on original_source's CompatibilityCheckStage: primary version is
// the prefix of a dot-separated version string up to (but not including)
// its second '.', and compatibility is decided by lexicographic string
// comparison of that prefix plus a small, static, process-wide set of known
// incompatible pairs.
package version

import (
	"fmt"
	"sort"
	"strings"

	hcversion "github.com/hashicorp/go-version"
	"github.com/rs/zerolog"

	"github.com/Beaver-Company/helix/pkg/model"
	"github.com/Beaver-Company/helix/pkg/stageerr"
)

type pair struct {
	controllerPrimary  string
	participantPrimary string
}

// incompatiblePairs is process-wide, immutable after init, per spec.md §9's
// "no global mutable state" note. Seeded from the one pair the original
// Helix source shipped.
var incompatiblePairs = map[pair]struct{}{
	{controllerPrimary: "0.4", participantPrimary: "0.3"}: {},
}

// PrimaryVersion returns the prefix of v up to (not including) its second
// '.', e.g. "0.6.1.3" -> "0.6". It validates v is a well-formed version
// first (via hashicorp/go-version) so a malformed string is rejected with a
// clear error rather than silently truncated or panicking on a missing
// separator.
func PrimaryVersion(v string) (string, error) {
	parsed, err := hcversion.NewVersion(v)
	if err != nil {
		return "", fmt.Errorf("parse version %q: %w", v, err)
	}
	segs := parsed.Segments()
	if len(segs) < 2 {
		return "", fmt.Errorf("version %q has fewer than two segments", v)
	}

	first := strings.Index(v, ".")
	if first < 0 {
		return "", fmt.Errorf("version %q has no '.' separator", v)
	}
	secondRel := strings.Index(v[first+1:], ".")
	if secondRel < 0 {
		return "", fmt.Errorf("version %q has only one '.' separator", v)
	}
	return v[:first+1+secondRel], nil
}

// IsCompatible reports whether a controller with primary version
// controllerPrimary may manage a participant with primary version
// participantPrimary. Comparison is lexicographic, matching the original
// Helix source's String.compareTo — this is a known quirk (e.g. "0.10" <
// "0.9" lexicographically) preserved deliberately, not a bug to silently
// fix; spec.md §4.1 calls out the comparison method explicitly.
func IsCompatible(controllerPrimary, participantPrimary string) bool {
	if controllerPrimary < participantPrimary {
		return false
	}
	_, incompatible := incompatiblePairs[pair{controllerPrimary, participantPrimary}]
	return !incompatible
}

// InstanceVersions maps a live instance to its declared version, if any.
type InstanceVersions map[model.InstanceID]*string

// Check runs the Version Compatibility Gate: it validates controllerVersion,
// then walks liveInstances in sorted instance-ID order (for deterministic
// error reporting) checking each declared participant version against the
// controller's. A missing or unparseable participant version only logs a
// warning and skips that instance; a missing or unparseable controller
// version, or the first incompatible participant found, is fatal.
func Check(log zerolog.Logger, controllerName, controllerVersion string, liveInstances InstanceVersions) error {
	if controllerVersion == "" {
		return stageerr.MissingControllerVersion(controllerName, nil)
	}
	ctrlPrimary, err := PrimaryVersion(controllerVersion)
	if err != nil {
		return stageerr.MissingControllerVersion(controllerName, err)
	}

	ids := make([]model.InstanceID, 0, len(liveInstances))
	for id := range liveInstances {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		participantVersion := liveInstances[id]
		if participantVersion == nil || *participantVersion == "" {
			log.Warn().Str("participant", string(id)).Msg("missing version of participant, skipping version check")
			continue
		}
		partPrimary, err := PrimaryVersion(*participantVersion)
		if err != nil {
			log.Warn().Str("participant", string(id)).Err(err).Msg("unparseable version of participant, skipping version check")
			continue
		}
		if !IsCompatible(ctrlPrimary, partPrimary) {
			return stageerr.IncompatibleVersion(controllerName, controllerVersion, string(id), *participantVersion)
		}
	}
	return nil
}
