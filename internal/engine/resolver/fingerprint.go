package resolver

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/cppdeps/internal/core/domain"
)

// Fingerprint returns a stable digest of a registry's records.
// Two registries with equal records in the same order share a fingerprint.
func Fingerprint(reg *domain.Registry) string {
	hasher := xxhash.New()

	for _, rec := range reg.All() {
		probe, _ := rec.ProbeName()
		target, _ := rec.TargetName()

		_, _ = hasher.WriteString(rec.Dependency.String())
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(rec.Status().String())
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(probe)
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(target)
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(rec.Strategy.String())
		_, _ = hasher.Write([]byte{0})

		for _, section := range [][]string{rec.Features, rec.AttemptedProbeNames, rec.AttemptedTargetNames} {
			for _, s := range section {
				_, _ = hasher.WriteString(s)
				_, _ = hasher.Write([]byte{0})
			}
			_, _ = hasher.Write([]byte{0}) // Section separator
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64())
}
