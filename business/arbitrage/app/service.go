package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fd1az/aptos-arbitrage/business/arbitrage/domain"
	"github.com/fd1az/aptos-arbitrage/internal/logger"
)

// DefaultCacheTTL bounds how long a last good result stays usable as a
// fallback.
const DefaultCacheTTL = 30 * time.Second

// Service is the arbitrage context facade. Every operation is a pure
// computation over its inputs; the per-operation caches only serve callers
// that want the last good result after a failure.
type Service struct {
	log  logger.LoggerInterface
	calc ChargeCalculator
	eval Evaluator
	enum Enumerator
	opt  Optimizer

	charges       *lastResult[domain.ChargeBreakdown]
	evaluations   *lastResult[Evaluation]
	reports       *lastResult[domain.OpportunityReport]
	optimizations *lastResult[domain.OptimizationReport]
}

// NewService creates the service with the given cache TTL; ttl <= 0 uses
// DefaultCacheTTL.
func NewService(log logger.LoggerInterface, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{
		log:           log,
		enum:          NewEnumerator(log),
		charges:       newLastResult[domain.ChargeBreakdown](ttl),
		evaluations:   newLastResult[Evaluation](ttl),
		reports:       newLastResult[domain.OpportunityReport](ttl),
		optimizations: newLastResult[domain.OptimizationReport](ttl),
	}
}

// Charges itemizes the execution costs of a route.
func (s *Service) Charges(ctx context.Context, in ChargeInput) (domain.ChargeBreakdown, error) {
	breakdown, err := s.calc.Calculate(in)
	if err != nil {
		return domain.ChargeBreakdown{}, err
	}
	s.charges.store(breakdown)
	return breakdown, nil
}

// Evaluate judges the profitability of one route.
func (s *Service) Evaluate(ctx context.Context, in ChargeInput) (Evaluation, error) {
	ev, err := s.eval.Evaluate(in)
	if err != nil {
		return Evaluation{}, err
	}
	s.evaluations.store(ev)
	return ev, nil
}

// FindOpportunities enumerates all candidate routes for the given inputs.
func (s *Service) FindOpportunities(ctx context.Context, in SearchInput) (domain.OpportunityReport, error) {
	report, err := s.enum.Find(ctx, in)
	if err != nil {
		return domain.OpportunityReport{}, err
	}
	s.reports.store(report)
	return report, nil
}

// Optimize sweeps the investment ladder for the best amount.
func (s *Service) Optimize(ctx context.Context, in OptimizeInput) (domain.OptimizationReport, error) {
	report, err := s.opt.Optimize(in)
	if err != nil {
		return domain.OptimizationReport{}, err
	}
	s.optimizations.store(report)
	return report, nil
}

// AnalyzeAmount prices a single investment amount.
func (s *Service) AnalyzeAmount(ctx context.Context, amountAPT decimal.Decimal, in OptimizeInput) (domain.AmountAnalysis, error) {
	return s.opt.AnalyzeAmount(amountAPT, in)
}

// Breakeven searches for the zero-net investment amount.
func (s *Service) Breakeven(ctx context.Context, in OptimizeInput) (domain.BreakevenReport, error) {
	return s.opt.Breakeven(in)
}

// LastCharges returns the most recent unexpired charge breakdown.
func (s *Service) LastCharges() (domain.ChargeBreakdown, time.Time, bool) {
	return s.charges.load()
}

// LastEvaluation returns the most recent unexpired evaluation.
func (s *Service) LastEvaluation() (Evaluation, time.Time, bool) {
	return s.evaluations.load()
}

// LastReport returns the most recent unexpired opportunity report.
func (s *Service) LastReport() (domain.OpportunityReport, time.Time, bool) {
	return s.reports.load()
}

// LastOptimization returns the most recent unexpired optimization report.
func (s *Service) LastOptimization() (domain.OptimizationReport, time.Time, bool) {
	return s.optimizations.load()
}
