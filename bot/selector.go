package main

// SelectMove picks the top-ranked candidate. The boolean is false when
// the list is empty, which is the "no legal move" outcome; the caller
// decides how to express that on the wire. A placement is never
// synthesized here.
func SelectMove(ranked []ScoredPlacement) (ScoredPlacement, bool) {
	if len(ranked) == 0 {
		return ScoredPlacement{}, false
	}
	return ranked[0], true
}
