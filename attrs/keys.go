package attrs

import "strings"

// Scalar keys.
const (
	KeyEnergy         = "Energy"
	KeyTotalSaved     = "TotalEnergySaved"
	KeySessionSaved   = "SessionEnergySaved"
	KeyPreviousStatus = "PreviousEnergyStatus"
)

// Per-upgrade key prefixes. Suffixes are upgrade spellings.
const (
	PrefixLevel     = "upgrade_"
	PrefixOwned     = "HasUpgrade_"
	PrefixDisabled  = "Disabled_"
	PrefixPaused    = "IsPaused_"
	PrefixOwnedMax  = "OwnedMax_"
	PrefixPenCap    = "PenaltyCap_"
	PrefixPenExpire = "PenaltyExpire_"
	PrefixPenTier   = "PenaltyTier_"
	PrefixPenDebtFE = "PenaltyDebtFE_"
	PrefixPenDebtXP = "PenaltyDebtXP_"
)

// upgradePrefixes lists every per-upgrade prefix, longest first so that
// SplitKey never matches a shorter prefix of a longer one.
var upgradePrefixes = []string{
	PrefixPenExpire,
	PrefixPenDebtFE,
	PrefixPenDebtXP,
	PrefixPenTier,
	PrefixDisabled,
	PrefixOwnedMax,
	PrefixPenCap,
	PrefixPaused,
	PrefixOwned,
	PrefixLevel,
}

// Level returns the level key for a spelling.
func Level(spelling string) string { return PrefixLevel + spelling }

// Owned returns the ownership flag key.
func Owned(spelling string) string { return PrefixOwned + spelling }

// Disabled returns the disabled flag key.
func Disabled(spelling string) string { return PrefixDisabled + spelling }

// Paused returns the paused-via-zero flag key.
func Paused(spelling string) string { return PrefixPaused + spelling }

// OwnedMax returns the owned high-water mark key.
func OwnedMax(spelling string) string { return PrefixOwnedMax + spelling }

// PenaltyCap returns the penalty cap key.
func PenaltyCap(id string) string { return PrefixPenCap + id }

// PenaltyExpire returns the penalty expiry key (unix milliseconds).
func PenaltyExpire(id string) string { return PrefixPenExpire + id }

// PenaltyTier returns the penalty tier key.
func PenaltyTier(id string) string { return PrefixPenTier + id }

// PenaltyDebtEnergy returns the energy debt key.
func PenaltyDebtEnergy(id string) string { return PrefixPenDebtFE + id }

// PenaltyDebtOther returns the secondary-resource debt key.
func PenaltyDebtOther(id string) string { return PrefixPenDebtXP + id }

// SplitKey splits a per-upgrade key into its prefix and spelling.
func SplitKey(key string) (prefix, spelling string, ok bool) {
	for _, p := range upgradePrefixes {
		if strings.HasPrefix(key, p) && len(key) > len(p) {
			return p, key[len(p):], true
		}
	}
	return "", "", false
}
