// Package app turns evaluation results into short natural-language
// summaries, optionally polished by an LLM when an OpenAI key is configured.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"

	arbapp "github.com/fd1az/aptos-arbitrage/business/arbitrage/app"
	"github.com/fd1az/aptos-arbitrage/business/arbitrage/domain"
	"github.com/fd1az/aptos-arbitrage/internal/logger"
)

const systemPrompt = "You are a concise DeFi analyst. Rewrite the given " +
	"arbitrage assessment as two plain sentences for a trader. Keep every " +
	"number exactly as given. No advice disclaimers."

// Verdict thresholds for the narrated recommendation. These are stricter
// than the evaluator's EXECUTE rule on purpose: prose that says "execute"
// should only appear on comfortable margins.
var (
	executeMarginPct  = decimal.RequireFromString("1.0")
	considerMarginPct = decimal.RequireFromString("0.5")
)

// Narrator renders evaluation summaries. A nil Narrator is valid and
// renders nothing.
type Narrator struct {
	client *openai.Client
	model  string
	log    logger.LoggerInterface
}

// NewNarrator creates a narrator. With an empty API key the narrator still
// works, producing only the rule-based summary.
func NewNarrator(apiKey, model string, log logger.LoggerInterface) *Narrator {
	n := &Narrator{model: model, log: log}
	if apiKey != "" {
		n.client = openai.NewClient(apiKey)
	}
	return n
}

// Enabled reports whether LLM polishing is configured.
func (n *Narrator) Enabled() bool {
	return n != nil && n.client != nil
}

// Narrate summarizes an evaluation. The rule-based text is always produced;
// the LLM rewrite is best effort and falls back to it on any failure.
func (n *Narrator) Narrate(ctx context.Context, ev arbapp.Evaluation) string {
	if n == nil {
		return ""
	}

	summary := ruleSummary(ev)
	if n.client == nil {
		return summary
	}

	resp, err := n.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: n.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: summary},
		},
		MaxTokens:   160,
		Temperature: 0.2,
	})
	if err != nil || len(resp.Choices) == 0 {
		if n.log != nil {
			n.log.Warn(ctx, "narration fell back to rule-based summary", "error", err)
		}
		return summary
	}
	polished := strings.TrimSpace(resp.Choices[0].Message.Content)
	if polished == "" {
		return summary
	}
	return polished
}

// ruleSummary builds the deterministic summary from the evaluation numbers.
func ruleSummary(ev arbapp.Evaluation) string {
	tier := domain.AnalysisRiskPolicy.Assess(ev.Result.MarginPct, ev.Route.AmountUSD)
	verdict := narratedVerdict(ev.Result, tier)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s via %s to %s via %s on $%s: ",
		ev.Route.FromPair, ev.Route.FromDEX, ev.Route.ToPair, ev.Route.ToDEX,
		ev.Route.AmountUSD.StringFixed(2))
	if ev.Result.IsProfitable {
		fmt.Fprintf(&sb, "net profit $%s (%s%% margin) after $%s in costs. ",
			ev.Result.NetUSD.StringFixed(2),
			ev.Result.MarginPct.StringFixed(3),
			ev.Charges.TotalUSD.StringFixed(2))
	} else {
		fmt.Fprintf(&sb, "unprofitable, net $%s after $%s in costs. ",
			ev.Result.NetUSD.StringFixed(2),
			ev.Charges.TotalUSD.StringFixed(2))
	}
	fmt.Fprintf(&sb, "Risk %s, recommendation %s.", tier, verdict)
	return sb.String()
}

func narratedVerdict(result domain.ProfitabilityResult, tier domain.RiskTier) domain.Recommendation {
	switch {
	case result.IsProfitable && result.MarginPct.GreaterThan(executeMarginPct) &&
		(tier == domain.RiskLow || tier == domain.RiskMedium):
		return domain.RecommendExecute
	case result.IsProfitable && result.MarginPct.GreaterThan(considerMarginPct):
		return domain.RecommendConsider
	default:
		return domain.RecommendSkip
	}
}
