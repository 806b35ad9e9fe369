package engine

// runQueue - фаза очереди: дрейф λ и μ, прибытия и обслуживание за такт.
// Концовка QUEUE_COLLAPSE, если λ >= μ или очередь длиннее queueCollapseLength.
func runQueue(s Sampler, st *State) (Outcome, error) {
	lambda, err := s.GaussianClamped(st.Lambda, lambdaDriftSD, lambdaFloor)
	if err != nil {
		return Outcome{}, err
	}
	mu, err := s.GaussianClamped(st.Mu, muDriftSD, muFloor)
	if err != nil {
		return Outcome{}, err
	}

	arrivals, err := s.Poisson(lambda)
	if err != nil {
		return Outcome{}, err
	}
	capacity, err := s.Poisson(mu)
	if err != nil {
		return Outcome{}, err
	}
	if capacity < 1 {
		capacity = 1
	}
	serviceTime, err := s.Exponential(1 / mu)
	if err != nil {
		return Outcome{}, err
	}

	processed := min(st.QueueLength+arrivals, capacity)
	st.QueueLength = max(0, st.QueueLength+arrivals-processed)
	st.Lambda = lambda
	st.Mu = mu

	out := Outcome{Facts: Facts{
		FactArrivals:          arrivals,
		FactServiceCapacity:   capacity,
		FactServicesProcessed: processed,
		FactServiceTime:       serviceTime,
		FactQueueLength:       st.QueueLength,
		FactLambda:            lambda,
		FactMu:                mu,
		FactWaitProbability:   lambda / mu,
	}}

	if lambda >= mu || st.QueueLength > queueCollapseLength {
		out.Ending = EndingQueueCollapse
		return out, nil
	}

	st.Phase = st.Phase.next()
	return out, nil
}
