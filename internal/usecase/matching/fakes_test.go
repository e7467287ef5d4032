package matching

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gdugdh24/opportunity-matcher/internal/domain"
	"github.com/gdugdh24/opportunity-matcher/internal/infrastructure/events"
)

type fakeProfiles struct {
	profiles map[string]*domain.Profile
	err      error
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

type fakeOpportunities struct {
	mu            sync.Mutex
	calls         int
	opportunities []*domain.Opportunity
	err           error
}

func (f *fakeOpportunities) List(context.Context) ([]*domain.Opportunity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.opportunities, nil
}

func (f *fakeOpportunities) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeMatches struct {
	created  [][]domain.Match
	upserted [][]domain.Match
	stored   []*domain.Match
	err      error
	listErr  error
	gotLimit int
}

func (f *fakeMatches) CreateBatch(_ context.Context, matches []domain.Match) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, append([]domain.Match(nil), matches...))
	return nil
}

func (f *fakeMatches) UpsertBatch(_ context.Context, matches []domain.Match) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, append([]domain.Match(nil), matches...))
	return nil
}

func (f *fakeMatches) GetStudentMatches(_ context.Context, _ string, limit int) ([]*domain.Match, error) {
	f.gotLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.stored, nil
}

type fakePublisher struct {
	events []events.MatchesComputed
	err    error
}

func (f *fakePublisher) PublishMatchesComputed(_ context.Context, event events.MatchesComputed) error {
	f.events = append(f.events, event)
	return f.err
}

type fakeExplainer struct {
	mu    sync.Mutex
	calls int
	fail  map[string]bool
}

func (f *fakeExplainer) ExplainMatch(_ context.Context, _ *domain.Profile, opp *domain.Opportunity, match domain.Match) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.fail[opp.ID] {
		return "", errors.New("model unavailable")
	}
	return fmt.Sprintf("Good fit for %s with score %d", opp.Title, match.Score), nil
}
