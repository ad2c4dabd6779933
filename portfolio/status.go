package portfolio

import models "gtm-portfolio/database/models_pkg"

// RecomputeStatus derives a brand's performance status from updated revenue
// and margin figures against its fixed targets. Called by the brand PATCH
// handler whenever either figure changes.
//
// The branches are evaluated in order and deliberately overlap: revenue at
// 79% of target goes CRITICAL even when margin is fine, because the first
// matching branch wins. This mirrors the long-standing dashboard behavior and
// must not be "simplified" into disjoint conditions.
func RecomputeStatus(revenue, margin, targetRevenue, targetMargin float64) string {
	revenueRatio := 1.0
	if targetRevenue > 0 {
		revenueRatio = revenue / targetRevenue
	}
	marginOk := margin >= targetMargin

	switch {
	case revenueRatio >= 1 && marginOk:
		return models.StatusOnTrack
	case revenueRatio >= 0.8 || (margin >= targetMargin*0.75 && margin < targetMargin):
		return models.StatusNeedsAttention
	case revenueRatio < 0.8 || margin < targetMargin*0.75:
		return models.StatusCritical
	}
	// Unreachable with real numbers; keep the prior status semantics by
	// reporting needs-attention as the conservative middle ground.
	return models.StatusNeedsAttention
}
