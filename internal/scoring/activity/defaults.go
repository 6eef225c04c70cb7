package activity

func oddMansions() []int {
	out := make([]int, 0, 14)
	for i := 1; i <= 27; i += 2 {
		out = append(out, i)
	}
	return out
}

func evenMansions() []int {
	out := make([]int, 0, 13)
	for i := 2; i <= 27; i += 2 {
		out = append(out, i)
	}
	return out
}

func intRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// Defaults returns the built-in activity tables. Weight vectors sum to
// approximately 1.0 across positive entries; penalty factors carry
// negative weights. The tier memberships are traditional lookup data
// and deliberately approximate.
func Defaults() *Tables {
	return &Tables{
		Profiles: map[string]Profile{
			"travel": {
				Weights: map[string]float64{
					"lunarStrength":            0.20,
					"beneficPlacement":         0.15,
					"mansionSuitability":       0.15,
					"lunarDaySuitability":      0.10,
					"planetaryHourSuitability": 0.10,
					"taraBala":                 0.10,
					"chandraBala":              0.10,
					"transitToNatalAngles":     0.05,
					"eventChartHygiene":        0.05,
					"maleficsOnAngles":         -0.20,
					"shadowPeriodPenalty":      -0.15,
					"combustionPenalty":        -0.10,
					"retrogradePenalty":        -0.15,
				},
				Mansions:     TriTier{Excellent: oddMansions(), Good: evenMansions()},
				LunarDays:    TriTier{Excellent: intRange(2, 29), Good: []int{1, 30}},
				Hours:        TriTier{Excellent: intRange(6, 23), Good: []int{1, 2, 3, 4, 5, 24}},
				AvoidWindows: []string{"rahu_kalam", "yamaganda"},
			},
			"business": {
				Weights: map[string]float64{
					"lunarStrength":            0.15,
					"beneficPlacement":         0.20,
					"mansionSuitability":       0.15,
					"lunarDaySuitability":      0.15,
					"planetaryHourSuitability": 0.10,
					"taraBala":                 0.10,
					"chandraBala":              0.05,
					"transitToNatalAngles":     0.05,
					"eventChartHygiene":        0.05,
					"maleficsOnAngles":         -0.20,
					"shadowPeriodPenalty":      -0.15,
					"combustionPenalty":        -0.10,
					"retrogradePenalty":        -0.20,
				},
				Mansions:     TriTier{Excellent: evenMansions(), Good: oddMansions()},
				LunarDays:    TriTier{Excellent: intRange(2, 29), Good: []int{1, 30}},
				Hours:        TriTier{Excellent: intRange(7, 23), Good: []int{1, 2, 3, 4, 5, 6, 24}},
				AvoidWindows: []string{"rahu_kalam", "gulika_kalam"},
			},
			"marriage": {
				Weights: map[string]float64{
					"lunarStrength":            0.20,
					"beneficPlacement":         0.20,
					"mansionSuitability":       0.20,
					"lunarDaySuitability":      0.15,
					"planetaryHourSuitability": 0.05,
					"taraBala":                 0.10,
					"chandraBala":              0.05,
					"transitToNatalAngles":     0.03,
					"eventChartHygiene":        0.02,
					"maleficsOnAngles":         -0.25,
					"shadowPeriodPenalty":      -0.20,
					"combustionPenalty":        -0.10,
					"retrogradePenalty":        -0.10,
				},
				Mansions:     TriTier{Excellent: intRange(1, 27)},
				LunarDays:    TriTier{Excellent: intRange(1, 30)},
				Hours:        TriTier{Excellent: intRange(6, 23), Good: []int{1, 2, 3, 4, 5, 24}},
				AvoidWindows: []string{"rahu_kalam", "yamaganda", "gulika_kalam"},
			},
			"health": {
				Weights: map[string]float64{
					"lunarStrength":            0.20,
					"beneficPlacement":         0.20,
					"mansionSuitability":       0.15,
					"lunarDaySuitability":      0.15,
					"planetaryHourSuitability": 0.05,
					"taraBala":                 0.10,
					"chandraBala":              0.05,
					"transitToNatalAngles":     0.05,
					"eventChartHygiene":        0.05,
					"maleficsOnAngles":         -0.25,
					"shadowPeriodPenalty":      -0.20,
					"combustionPenalty":        -0.15,
					"retrogradePenalty":        -0.10,
				},
				Mansions:     TriTier{Excellent: oddMansions(), Good: evenMansions()},
				LunarDays:    TriTier{Excellent: intRange(1, 30)},
				Hours:        TriTier{Excellent: intRange(6, 23), Good: []int{1, 2, 3, 4, 5, 24}},
				AvoidWindows: []string{"rahu_kalam", "yamaganda", "gulika_kalam"},
			},
		},
	}
}
