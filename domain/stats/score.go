package stats

// FlameScore computes the weighted flame score:
//
//	main + power*4 + allStats%*8 + secondary/8
//
// The secondary term uses real division. For magic weapons (MATT) the magic
// power field feeds the power term instead of weapon power. The weights are a
// fixed business rule of flame scoring and are not configurable.
func FlameScore(s FlameStats, useMagic bool) float64 {
	power := s.WeaponPower
	if useMagic {
		power = s.MagicPower
	}
	return float64(s.Main) + float64(power*4) + float64(s.AllStatsPct*8) + float64(s.Secondary)/8
}
