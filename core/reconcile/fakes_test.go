package reconcile

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
)

// fakeProvider serves draws from a map and counts calls per draw.
type fakeProvider struct {
	mu      sync.Mutex
	draws   map[int][]int
	errs    map[int]error
	latest  int
	calls   map[int]int
	total   atomic.Int64
	release chan struct{}
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		draws: make(map[int][]int),
		errs:  make(map[int]error),
		calls: make(map[int]int),
	}
}

func (p *fakeProvider) withDraw(n int, numbers ...int) *fakeProvider {
	p.draws[n] = numbers
	if n > p.latest {
		p.latest = n
	}
	return p
}

func (p *fakeProvider) withError(n int, err error) *fakeProvider {
	p.errs[n] = err
	return p
}

func (p *fakeProvider) FetchDraw(ctx context.Context, number int) (*DrawResult, error) {
	p.total.Add(1)
	p.mu.Lock()
	p.calls[number]++
	gate := p.release
	p.mu.Unlock()

	if gate != nil {
		<-gate
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err, ok := p.errs[number]; ok {
		return nil, err
	}
	numbers, ok := p.draws[number]
	if !ok {
		return nil, ErrNotYetAvailable
	}
	return &DrawResult{Number: number, Numbers: append([]int(nil), numbers...)}, nil
}

func (p *fakeProvider) FetchLatestDrawNumber(ctx context.Context) (int, error) {
	return p.latest, nil
}

func (p *fakeProvider) callsFor(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[n]
}

// memoryDrawStore is a DrawStore backed by a map.
type memoryDrawStore struct {
	mu      sync.Mutex
	draws   map[int]*DrawResult
	saveErr error
	saves   int
}

func newMemoryDrawStore() *memoryDrawStore {
	return &memoryDrawStore{draws: make(map[int]*DrawResult)}
}

func (s *memoryDrawStore) Get(ctx context.Context, number int) (*DrawResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.draws[number]
	if !ok {
		return nil, ErrDrawNotStored
	}
	return d, nil
}

func (s *memoryDrawStore) Save(ctx context.Context, draw *DrawResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	if _, ok := s.draws[draw.Number]; !ok {
		s.draws[draw.Number] = draw
	}
	return nil
}

// memoryBetStore is a BetStore backed by a map with set-once outcome merges.
type memoryBetStore struct {
	mu      sync.Mutex
	nextID  int64
	bets    map[int64]*Bet
	failFor map[int64]error
}

func newMemoryBetStore() *memoryBetStore {
	return &memoryBetStore{bets: make(map[int64]*Bet), failFor: make(map[int64]error)}
}

func (s *memoryBetStore) Create(ctx context.Context, bet Bet) (Bet, error) {
	if err := ValidateBet(&bet); err != nil {
		return Bet{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	bet.ID = s.nextID
	bet.Numbers = SortedCopy(bet.Numbers)
	if bet.Outcomes == nil {
		bet.Outcomes = make(map[int]Outcome)
	}
	stored := bet.Clone()
	s.bets[bet.ID] = &stored
	return bet.Clone(), nil
}

func (s *memoryBetStore) List(ctx context.Context) ([]Bet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Bet, 0, len(s.bets))
	for _, b := range s.bets {
		out = append(out, b.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memoryBetStore) Get(ctx context.Context, id int64) (Bet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bets[id]
	if !ok {
		return Bet{}, ErrNotFound
	}
	return b.Clone(), nil
}

func (s *memoryBetStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bets[id]; !ok {
		return ErrNotFound
	}
	delete(s.bets, id)
	return nil
}

func (s *memoryBetStore) UpdateOutcomes(ctx context.Context, id int64, outcomes map[int]Outcome) ([]Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failFor[id]; err != nil {
		return nil, err
	}
	b, ok := s.bets[id]
	if !ok {
		return nil, ErrNotFound
	}
	var inserted []Outcome
	for _, o := range outcomes {
		if b.MergeOutcome(o) {
			inserted = append(inserted, o)
		}
	}
	sort.Slice(inserted, func(i, j int) bool { return inserted[i].Draw < inserted[j].Draw })
	return inserted, nil
}

// recordingNotifier keeps every notification it receives.
type recordingNotifier struct {
	mu      sync.Mutex
	reports []*Report
	merged  [][]Outcome
	err     error
}

func (n *recordingNotifier) PassCompleted(ctx context.Context, report *Report, merged []Outcome) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reports = append(n.reports, report)
	n.merged = append(n.merged, merged)
	return n.err
}

var errUpstream = errors.New("upstream 503")
