package client

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/fivetwenty-io/threatresponse/pkg/ctr"
	"github.com/fivetwenty-io/threatresponse/pkg/routing"
)

var commandsRoutes = routing.NewRegistry[*ctr.Session]()

func init() {
	commandsRoutes.MustRegister("verdict", func(ctx context.Context, s *ctr.Session, args ...any) (any, error) {
		if text, ok := firstString(args); ok {
			return verdictText(ctx, s, text)
		}

		observables, err := convertArg[[]ctr.Observable](args, 0)
		if err != nil {
			return nil, err
		}

		return verdict(ctx, s, observables)
	})

	commandsRoutes.MustRegister("targets", func(ctx context.Context, s *ctr.Session, args ...any) (any, error) {
		if text, ok := firstString(args); ok {
			return targetsText(ctx, s, text)
		}

		observables, err := convertArg[[]ctr.Observable](args, 0)
		if err != nil {
			return nil, err
		}

		return targets(ctx, s, observables)
	})
}

func firstString(args []any) (string, bool) {
	if len(args) == 0 {
		return "", false
	}

	text, ok := args[0].(string)

	return text, ok
}

// CommandsClient implements ctr.CommandsClient.
type CommandsClient struct {
	session *ctr.Session
}

// NewCommandsClient creates a new commands client.
func NewCommandsClient(session *ctr.Session) *CommandsClient {
	return &CommandsClient{session: session}
}

// Verdict implements ctr.CommandsClient.Verdict.
func (c *CommandsClient) Verdict(ctx context.Context, observables []ctr.Observable) (*ctr.VerdictResult, error) {
	return verdict(ctx, c.session, observables)
}

// VerdictText implements ctr.CommandsClient.VerdictText.
func (c *CommandsClient) VerdictText(ctx context.Context, text string) (*ctr.VerdictResult, error) {
	return verdictText(ctx, c.session, text)
}

// Targets implements ctr.CommandsClient.Targets.
func (c *CommandsClient) Targets(ctx context.Context, observables []ctr.Observable) (*ctr.TargetsResult, error) {
	return targets(ctx, c.session, observables)
}

// TargetsText implements ctr.CommandsClient.TargetsText.
func (c *CommandsClient) TargetsText(ctx context.Context, text string) (*ctr.TargetsResult, error) {
	return targetsText(ctx, c.session, text)
}

func verdictText(ctx context.Context, s *ctr.Session, text string) (*ctr.VerdictResult, error) {
	observables, err := inspect(ctx, s, text)
	if err != nil {
		return nil, err
	}

	return verdict(ctx, s, observables)
}

func targetsText(ctx context.Context, s *ctr.Session, text string) (*ctr.TargetsResult, error) {
	observables, err := inspect(ctx, s, text)
	if err != nil {
		return nil, err
	}

	return targets(ctx, s, observables)
}

// verdictDoc is one verdict as returned by a deliberation module.
type verdictDoc struct {
	Disposition     int            `json:"disposition"`
	DispositionName string         `json:"disposition_name"`
	JudgementID     string         `json:"judgement_id"`
	Observable      ctr.Observable `json:"observable"`
	ValidTime       struct {
		EndTime *time.Time `json:"end_time"`
	} `json:"valid_time"`
}

// sightingDoc is one sighting as returned by an observation module.
type sightingDoc struct {
	Targets []ctr.Target `json:"targets"`
}

type docs[T any] struct {
	Docs []T `json:"docs"`
}

func verdict(ctx context.Context, s *ctr.Session, observables []ctr.Observable) (*ctr.VerdictResult, error) {
	result := &ctr.VerdictResult{Verdicts: []ctr.Verdict{}}
	if len(observables) == 0 {
		return result, nil
	}

	response, err := deliberate(ctx, s, observables)
	if err != nil {
		return nil, err
	}

	result.Errors = response.Errors

	for _, module := range response.Data {
		var verdicts docs[verdictDoc]

		err := moduleSection(module, "verdicts", &verdicts)
		if err != nil {
			s.Log().Warn("Skipping malformed verdicts", map[string]interface{}{
				"module": module.Module,
				"error":  err.Error(),
			})

			continue
		}

		for _, doc := range verdicts.Docs {
			name := doc.DispositionName
			if name == "" {
				name = ctr.DispositionName(doc.Disposition)
			}

			result.Verdicts = append(result.Verdicts, ctr.Verdict{
				Module:          module.Module,
				ObservableType:  doc.Observable.Type,
				ObservableValue: doc.Observable.Value,
				Disposition:     doc.Disposition,
				DispositionName: strings.ToLower(name),
				JudgementID:     doc.JudgementID,
				ValidUntil:      doc.ValidTime.EndTime,
			})
		}
	}

	return result, nil
}

func targets(ctx context.Context, s *ctr.Session, observables []ctr.Observable) (*ctr.TargetsResult, error) {
	result := &ctr.TargetsResult{Modules: []ctr.ModuleTargets{}}
	if len(observables) == 0 {
		return result, nil
	}

	response, err := observe(ctx, s, observables)
	if err != nil {
		return nil, err
	}

	result.Errors = response.Errors

	for _, module := range response.Data {
		var sightings docs[sightingDoc]

		err := moduleSection(module, "sightings", &sightings)
		if err != nil {
			s.Log().Warn("Skipping malformed sightings", map[string]interface{}{
				"module": module.Module,
				"error":  err.Error(),
			})

			continue
		}

		var moduleTargets []ctr.Target

		for _, sighting := range sightings.Docs {
			for _, target := range sighting.Targets {
				if !containsTarget(moduleTargets, target) {
					moduleTargets = append(moduleTargets, target)
				}
			}
		}

		if len(moduleTargets) > 0 {
			result.Modules = append(result.Modules, ctr.ModuleTargets{Module: module.Module, Targets: moduleTargets})
		}
	}

	return result, nil
}

// moduleSection decodes data[key] of a module result into out. A missing key
// leaves out untouched.
func moduleSection(module ctr.ModuleResult, key string, out any) error {
	section, ok := module.Data[key]
	if !ok {
		return nil
	}

	data, err := json.Marshal(section)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	err = json.Unmarshal(data, out)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}

	return nil
}

func containsTarget(targets []ctr.Target, target ctr.Target) bool {
	return slices.ContainsFunc(targets, func(existing ctr.Target) bool {
		return existing.Type == target.Type && existing.OS == target.OS && slices.Equal(existing.Observables, target.Observables)
	})
}
