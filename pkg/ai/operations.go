package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/forgeapps/onboardgen/pkg/spec"
)

const repairSystemPrompt = `You are an expert in the onboardgen spec format: markdown with an
optional YAML front-matter block, a '## Theme' section of '- key: value'
color fields, and one '## Screen: <id>' section per onboarding screen.
Fix every validation error in the spec you are given. Preserve the
author's intent and wording; change only what the errors require.
Reply with the complete corrected spec in a fenced markdown block,
followed by a fenced json block: {"changes": ["..."], "explanation": "..."}.`

const enhanceSystemPrompt = `You are an expert mobile onboarding designer working in the onboardgen
spec format. Improve the spec you are given: tighten copy, add helpful
subtitles, and fill obvious gaps. Never remove screens and never change
screen ids. Reply with the complete enhanced spec in a fenced markdown
block, followed by a fenced json block:
{"enhancements": ["..."], "explanation": "..."}.`

// Outcome is what a repair or enhancement pass produced.
type Outcome struct {
	Spec        string
	Changes     []string
	Explanation string
	Model       string
}

// Ops exposes the two AI operations the workflow uses. Every provider
// call goes through the retry policy.
type Ops struct {
	provider Provider
	policy   RetryPolicy
	model    string
}

// NewOps wires a provider into the repair/enhance operations.
func NewOps(provider Provider, policy RetryPolicy) *Ops {
	ops := &Ops{provider: provider, policy: policy}
	if ap, ok := provider.(*AnthropicProvider); ok {
		ops.model = ap.Model()
	}
	return ops
}

// Repair asks the provider to fix a spec that failed validation.
func (o *Ops) Repair(ctx context.Context, rawSpec string, errs []spec.ValidationError) (*Outcome, error) {
	prompt := fmt.Sprintf("Validation errors:\n%s\nSpec:\n```markdown\n%s\n```",
		spec.FormatErrors(errs), rawSpec)

	return o.send(ctx, repairSystemPrompt, prompt, "changes")
}

// Enhance asks the provider to improve a valid spec.
func (o *Ops) Enhance(ctx context.Context, activeSpec string) (*Outcome, error) {
	prompt := fmt.Sprintf("Spec:\n```markdown\n%s\n```", activeSpec)

	return o.send(ctx, enhanceSystemPrompt, prompt, "enhancements")
}

func (o *Ops) send(ctx context.Context, system, prompt, changesKey string) (*Outcome, error) {
	var reply string
	err := o.policy.Do(ctx, func(ctx context.Context) error {
		var sendErr error
		reply, sendErr = o.provider.SendMessage(ctx, Conversation{
			System:      system,
			Messages:    []Message{{Role: "user", Content: prompt}},
			Temperature: 0.2,
		})
		return sendErr
	})
	if err != nil {
		return nil, err
	}

	return o.parseReply(reply, changesKey)
}

// parseReply extracts the spec body and the JSON summary from the
// provider's fenced-block response contract.
func (o *Ops) parseReply(reply, changesKey string) (*Outcome, error) {
	specBody := extractFenced(reply, "markdown")
	if specBody == "" {
		specBody = extractFenced(reply, "")
	}
	if strings.TrimSpace(specBody) == "" {
		return nil, &ProviderError{Kind: KindMalformed, Message: "reply contains no spec block"}
	}

	outcome := &Outcome{Spec: specBody, Model: o.model}

	if summary := extractFenced(reply, "json"); summary != "" {
		for _, c := range gjson.Get(summary, changesKey).Array() {
			outcome.Changes = append(outcome.Changes, c.String())
		}
		outcome.Explanation = gjson.Get(summary, "explanation").String()
	}

	return outcome, nil
}

// extractFenced returns the body of the first ``` block with the given
// language tag (empty tag matches an untagged block).
func extractFenced(text, lang string) string {
	marker := "```" + lang + "\n"
	start := strings.Index(text, marker)
	if start < 0 {
		return ""
	}
	rest := text[start+len(marker):]
	end := strings.Index(rest, "```")
	if end < 0 {
		return ""
	}
	return rest[:end]
}
