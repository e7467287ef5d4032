package matching

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gdugdh24/opportunity-matcher/internal/domain"
	"github.com/gdugdh24/opportunity-matcher/internal/infrastructure/events"
	scoring "github.com/gdugdh24/opportunity-matcher/internal/matching"
	"github.com/gdugdh24/opportunity-matcher/internal/repository"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// Publisher announces finished runs
type Publisher interface {
	PublishMatchesComputed(ctx context.Context, event events.MatchesComputed) error
}

// Explainer rewrites the reasoning of a scored match in plain language
type Explainer interface {
	ExplainMatch(ctx context.Context, profile *domain.Profile, opp *domain.Opportunity, match domain.Match) (string, error)
}

type Settings struct {
	Threshold       int
	TopN            int
	Workers         int
	ConcurrentFetch bool
	PersistMode     string
}

func DefaultSettings() Settings {
	return Settings{
		Threshold:   scoring.AcceptanceThreshold,
		TopN:        scoring.DefaultTopN,
		Workers:     8,
		PersistMode: domain.PersistAppend,
	}
}

type Option func(*MatchingUseCase)

func WithPublisher(p Publisher) Option {
	return func(uc *MatchingUseCase) { uc.publisher = p }
}

func WithExplainer(e Explainer) Option {
	return func(uc *MatchingUseCase) { uc.explainer = e }
}

func WithLogger(l *zap.Logger) Option {
	return func(uc *MatchingUseCase) { uc.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(uc *MatchingUseCase) { uc.now = now }
}

func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(uc *MatchingUseCase) { uc.newID = newID }
}

type MatchingUseCase struct {
	profileRepo     repository.ProfileRepository
	opportunityRepo repository.OpportunityRepository
	matchRepo       repository.MatchRepository
	settings        Settings

	publisher Publisher
	explainer Explainer
	logger    *zap.Logger
	now       func() time.Time
	newID     func() uuid.UUID
}

func NewMatchingUseCase(
	profileRepo repository.ProfileRepository,
	opportunityRepo repository.OpportunityRepository,
	matchRepo repository.MatchRepository,
	settings Settings,
	opts ...Option,
) *MatchingUseCase {
	if settings.TopN < 1 {
		settings.TopN = scoring.DefaultTopN
	}
	if settings.Workers < 1 {
		settings.Workers = 1
	}
	if settings.PersistMode == "" {
		settings.PersistMode = domain.PersistAppend
	}

	uc := &MatchingUseCase{
		profileRepo:     profileRepo,
		opportunityRepo: opportunityRepo,
		matchRepo:       matchRepo,
		settings:        settings,
		logger:          zap.NewNop(),
		now:             time.Now,
		newID:           uuid.New,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// run carries the state of a single invocation
type run struct {
	id        uuid.UUID
	studentID string
	stage     Stage
	started   time.Time
}

// Run executes one matching pass for a student: validate, load the
// profile, gate on completeness, score every opportunity, keep the best
// and store them. A storage failure while persisting is logged and does
// not fail the run.
func (uc *MatchingUseCase) Run(ctx context.Context, req RunRequest) (*RunResponse, error) {
	r := &run{id: uc.newID(), stage: StageValidating, started: time.Now()}

	resp, err := uc.run(ctx, r, req)
	if err != nil {
		uc.logFailure(r, err)
		return nil, err
	}

	r.stage = StageDone
	uc.logger.Info("matching run finished",
		zap.String("run_id", r.id.String()),
		zap.String("student_id", r.studentID),
		zap.Stringer("stage", r.stage),
		zap.Int("completion", resp.CompletionPercentage),
		zap.Int("total_matches", resp.TotalMatches),
		zap.Int("top_matches", len(resp.TopMatches)),
		zap.Duration("duration", time.Since(r.started)),
	)
	return resp, nil
}

func (uc *MatchingUseCase) run(ctx context.Context, r *run, req RunRequest) (*RunResponse, error) {
	studentID, err := validateStudentID(req.StudentID)
	if err != nil {
		return nil, err
	}
	r.studentID = studentID

	r.stage = StageFetching
	profile, opportunities, completion, err := uc.fetchAndGate(ctx, r)
	if err != nil {
		return nil, err
	}

	r.stage = StageScoring
	accepted := uc.score(profile, opportunities)

	r.stage = StageRanking
	top := scoring.Rank(accepted, uc.settings.TopN)
	if uc.explainer != nil {
		uc.explain(ctx, profile, opportunities, top)
	}

	r.stage = StagePersisting
	uc.stamp(top)
	uc.persist(ctx, r, top, len(accepted))

	return &RunResponse{
		Success:              true,
		CompletionPercentage: completion.Rounded(),
		TotalMatches:         len(accepted),
		TopMatches:           top,
	}, nil
}

// fetchAndGate loads the profile and applies the completeness gate. In
// sequential mode opportunities are only read once the gate has passed.
func (uc *MatchingUseCase) fetchAndGate(ctx context.Context, r *run) (*domain.Profile, []*domain.Opportunity, scoring.Completion, error) {
	var (
		profile       *domain.Profile
		opportunities []*domain.Opportunity
		profileErr    error
		listErr       error
	)

	if uc.settings.ConcurrentFetch {
		// Both reads run to completion so a profile error always wins.
		var g errgroup.Group
		g.Go(func() error {
			profile, profileErr = uc.loadProfile(ctx, r.studentID)
			return profileErr
		})
		g.Go(func() error {
			opportunities, listErr = uc.loadOpportunities(ctx)
			return listErr
		})
		_ = g.Wait()
	} else {
		profile, profileErr = uc.loadProfile(ctx, r.studentID)
	}
	if profileErr != nil {
		return nil, nil, scoring.Completion{}, profileErr
	}

	r.stage = StageGating
	completion := scoring.Evaluate(profile)
	if err := completion.Err(); err != nil {
		return nil, nil, completion, err
	}

	r.stage = StageFetching
	if !uc.settings.ConcurrentFetch {
		opportunities, listErr = uc.loadOpportunities(ctx)
	}
	if listErr != nil {
		return nil, nil, completion, listErr
	}
	return profile, opportunities, completion, nil
}

func (uc *MatchingUseCase) loadProfile(ctx context.Context, studentID string) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Resource: "student", ID: studentID}
		}
		return nil, &domain.UpstreamError{Op: "get profile", Err: err}
	}
	if profile == nil {
		return nil, &domain.NotFoundError{Resource: "student", ID: studentID}
	}
	return profile, nil
}

func (uc *MatchingUseCase) loadOpportunities(ctx context.Context) ([]*domain.Opportunity, error) {
	opportunities, err := uc.opportunityRepo.List(ctx)
	if err != nil {
		return nil, &domain.UpstreamError{Op: "list opportunities", Err: err}
	}
	return opportunities, nil
}

// score runs the scoring function for every opportunity on a bounded pool
// of goroutines. Each goroutine owns one slot of the result slices, and
// accepted matches come back in fetch order.
func (uc *MatchingUseCase) score(profile *domain.Profile, opportunities []*domain.Opportunity) []domain.Match {
	candidates := make([]domain.Match, len(opportunities))
	ok := make([]bool, len(opportunities))

	var g errgroup.Group
	g.SetLimit(uc.settings.Workers)
	for i, opp := range opportunities {
		if opp == nil {
			continue
		}
		g.Go(func() error {
			candidates[i], ok[i] = scoring.ScoreOpportunity(profile, opp, uc.settings.Threshold)
			return nil
		})
	}
	_ = g.Wait()

	accepted := make([]domain.Match, 0, len(candidates))
	for i := range candidates {
		if ok[i] {
			accepted = append(accepted, candidates[i])
		}
	}
	return accepted
}

// explain replaces the reasoning of the top matches with the explainer's
// text. Any failure keeps the rule-based reasoning.
func (uc *MatchingUseCase) explain(ctx context.Context, profile *domain.Profile, opportunities []*domain.Opportunity, top []domain.Match) {
	byID := make(map[string]*domain.Opportunity, len(opportunities))
	for _, opp := range opportunities {
		if opp != nil {
			byID[opp.ID] = opp
		}
	}

	var g errgroup.Group
	g.SetLimit(uc.settings.Workers)
	for i := range top {
		opp, found := byID[top[i].OpportunityID]
		if !found {
			continue
		}
		g.Go(func() error {
			text, err := uc.explainer.ExplainMatch(ctx, profile, opp, top[i])
			if err != nil {
				uc.logger.Debug("keeping rule-based reasoning",
					zap.String("opportunity_id", opp.ID),
					zap.Error(err),
				)
				return nil
			}
			if text = strings.TrimSpace(text); text != "" {
				top[i].Reasoning = text
			}
			return nil
		})
	}
	_ = g.Wait()
}

// stamp gives every match of the run a fresh id and one shared timestamp
func (uc *MatchingUseCase) stamp(matches []domain.Match) {
	analyzedAt := uc.now().UTC()
	for i := range matches {
		matches[i].ID = uc.newID()
		matches[i].AnalyzedAt = analyzedAt
	}
}

// persist stores the top matches and announces the run. total is the
// number of accepted matches before truncation.
func (uc *MatchingUseCase) persist(ctx context.Context, r *run, matches []domain.Match, total int) {
	var err error
	switch uc.settings.PersistMode {
	case domain.PersistUpsert:
		err = uc.matchRepo.UpsertBatch(ctx, matches)
	default:
		err = uc.matchRepo.CreateBatch(ctx, matches)
	}
	if err != nil {
		warning := &domain.PersistenceWarning{Count: len(matches), Err: err}
		uc.logger.Warn("matches not persisted",
			zap.String("run_id", r.id.String()),
			zap.String("student_id", r.studentID),
			zap.Error(warning),
		)
		return
	}

	if uc.publisher == nil {
		return
	}
	event := events.MatchesComputed{
		RunID:          r.id.String(),
		StudentID:      r.studentID,
		TotalMatches:   total,
		OpportunityIDs: make([]string, 0, len(matches)),
	}
	for _, m := range matches {
		event.OpportunityIDs = append(event.OpportunityIDs, m.OpportunityID)
	}
	if len(matches) > 0 {
		event.TopScore = matches[0].Score
		event.AnalyzedAt = matches[0].AnalyzedAt
	}
	if err := uc.publisher.PublishMatchesComputed(ctx, event); err != nil {
		uc.logger.Warn("publish matches computed failed",
			zap.String("run_id", r.id.String()),
			zap.Error(err),
		)
	}
}

func (uc *MatchingUseCase) logFailure(r *run, err error) {
	failedAt := r.stage
	r.stage = StageFailed

	fields := []zap.Field{
		zap.String("run_id", r.id.String()),
		zap.String("student_id", r.studentID),
		zap.Stringer("stage", r.stage),
		zap.Stringer("failed_at", failedAt),
		zap.Duration("duration", time.Since(r.started)),
		zap.Error(err),
	}
	if errors.Is(err, domain.ErrUpstream) {
		uc.logger.Error("matching run failed", fields...)
		return
	}
	uc.logger.Info("matching run rejected", fields...)
}

// CheckCompletion runs only the completeness gate for a student
func (uc *MatchingUseCase) CheckCompletion(ctx context.Context, studentID string) (*CompletionResponse, error) {
	studentID, err := validateStudentID(studentID)
	if err != nil {
		return nil, err
	}
	profile, err := uc.loadProfile(ctx, studentID)
	if err != nil {
		return nil, err
	}

	completion := scoring.Evaluate(profile)
	return &CompletionResponse{
		StudentID:            studentID,
		CompletionPercentage: completion.Rounded(),
		Passed:               completion.Passed,
		RequiredFields:       completion.Missing(),
	}, nil
}

// ListMatches returns stored matches for a student, newest first. limit
// defaults to DefaultListLimit and is capped at MaxListLimit.
func (uc *MatchingUseCase) ListMatches(ctx context.Context, studentID string, limit int) (*ListMatchesResponse, error) {
	studentID, err := validateStudentID(studentID)
	if err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, &domain.ValidationError{Field: "limit", Message: "limit must not be negative"}
	}
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	matches, err := uc.matchRepo.GetStudentMatches(ctx, studentID, limit)
	if err != nil {
		return nil, &domain.UpstreamError{Op: "list matches", Err: err}
	}
	if matches == nil {
		matches = []*domain.Match{}
	}
	return &ListMatchesResponse{StudentID: studentID, Matches: matches}, nil
}

func validateStudentID(raw string) (string, error) {
	studentID := strings.TrimSpace(raw)
	if studentID == "" {
		return "", &domain.ValidationError{Field: "studentId", Message: "studentId is required"}
	}
	return studentID, nil
}
