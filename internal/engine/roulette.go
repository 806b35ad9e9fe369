package engine

// runRoulette - один выстрел.
// SPIN: барабан крутится, под курком случайная камора (независимое испытание).
// NO_SPIN: стреляет камора под указателем, указатель сдвигается по кругу,
// поэтому без вращения смерть наступает не позже чем за 6 выстрелов.
// Позиция пули не меняется до конца прохождения.
func runRoulette(s Sampler, st *State, choice Choice) (Outcome, error) {
	var chamber int
	if choice == ChoiceSpin {
		c, err := s.UniformInt(1, chambers)
		if err != nil {
			return Outcome{}, err
		}
		chamber = c
	} else {
		chamber = st.ChamberPointer
	}

	out := Outcome{Facts: Facts{
		FactChoice:  string(choice),
		FactChamber: chamber,
	}}

	if chamber == st.BulletPosition {
		out.Facts[FactSurvived] = false
		out.Facts[FactSurvivalProbability] = st.SurvivalProbability
		out.Ending = EndingRouletteDeath
		return out, nil
	}

	if choice == ChoiceSpin {
		pointer, err := s.UniformInt(1, chambers)
		if err != nil {
			return Outcome{}, err
		}
		st.ChamberPointer = pointer
	} else {
		st.ChamberPointer = st.ChamberPointer%chambers + 1
	}
	st.SurvivalProbability *= pullSurvival
	st.Toxicity = clampToxicity(st.Toxicity - pullToxicRelief)

	out.Facts[FactSurvived] = true
	out.Facts[FactSurvivalProbability] = st.SurvivalProbability
	out.Facts[FactToxicity] = st.Toxicity

	st.Phase = st.Phase.next()
	return out, nil
}
