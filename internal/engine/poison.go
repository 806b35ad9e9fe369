package engine

// runPoison - утечка яда (составной Пуассон) и возможный антидот.
// Концовка TOXIC_DEATH при токсичности >= 100.
func runPoison(s Sampler, st *State) (Outcome, error) {
	before := st.Toxicity

	drops, err := s.Poisson(leakRate)
	if err != nil {
		return Outcome{}, err
	}
	tox := st.Toxicity
	if drops > 0 {
		tox = clampToxicity(tox + float64(drops)*toxicityPerDrop)
	}

	antidote := s.UniformFloat() < antidoteChance
	reduction := 0
	if antidote {
		reduction, err = s.UniformInt(antidoteMin, antidoteMax)
		if err != nil {
			return Outcome{}, err
		}
		tox = clampToxicity(tox - float64(reduction))
	}
	st.Toxicity = tox

	facts := Facts{
		FactDrops:         drops,
		FactToxicityDelta: tox - before,
		FactAntidote:      antidote,
		FactToxicity:      tox,
	}
	if antidote {
		facts[FactReduction] = reduction
	}
	out := Outcome{Facts: facts}

	if tox >= toxicityMax {
		out.Ending = EndingToxicDeath
		return out, nil
	}

	st.Phase = st.Phase.next()
	return out, nil
}
