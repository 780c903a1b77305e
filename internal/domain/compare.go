package domain

// Compare imposes a total order over two evaluations of equal-size lanes.
// It returns 1 if a is stronger, -1 if b is stronger and 0 on a genuine tie.
func Compare(a, b Evaluation) int {
	if a.Category != b.Category {
		return sign(int32(a.Category) - int32(b.Category))
	}
	if a.Primary != b.Primary {
		return sign(a.Primary - b.Primary)
	}
	if a.Secondary != b.Secondary {
		return sign(a.Secondary - b.Secondary)
	}
	if a.Tertiary != b.Tertiary {
		return sign(a.Tertiary - b.Tertiary)
	}
	for i := range a.Kickers {
		if i >= len(b.Kickers) {
			break
		}
		if a.Kickers[i] != b.Kickers[i] {
			return sign(a.Kickers[i] - b.Kickers[i])
		}
	}
	return 0
}

func sign(d int32) int {
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	default:
		return 0
	}
}
