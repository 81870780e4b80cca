package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-kernel/pkg/errors"
)

// CheckStrategyCompatibility checks that the engine version satisfies the
// constraint declared by a strategy file (its engine_version field).
//
// Rules:
//   - An empty constraint accepts any engine.
//   - A "main" engine (development build) accepts any constraint.
//   - Otherwise the constraint uses semver syntax, e.g. "1.0.x", ">= 1.0, < 2.0", "~1.2".
func CheckStrategyCompatibility(engineVersion, constraint string) error {
	engineVersion = strings.TrimPrefix(strings.TrimSpace(engineVersion), "v")
	constraint = strings.TrimSpace(constraint)

	if constraint == "" || engineVersion == "main" {
		return nil
	}

	engineSemver, err := semver.NewVersion(engineVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid engine version '%s'", engineVersion)
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid engine_version constraint '%s'", constraint)
	}

	if ok, reasons := c.Validate(engineSemver); !ok {
		msg := make([]string, 0, len(reasons))
		for _, r := range reasons {
			msg = append(msg, r.Error())
		}

		return errors.Newf(errors.ErrCodeVersionMismatch,
			"engine %s does not satisfy strategy constraint '%s': %s",
			engineSemver.String(), constraint, strings.Join(msg, "; "))
	}

	return nil
}
