package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/threatresponse/internal/constants"
	"github.com/fivetwenty-io/threatresponse/pkg/ctr"
	"github.com/fivetwenty-io/threatresponse/pkg/request"
	"github.com/fivetwenty-io/threatresponse/pkg/routing"
)

var enrichRoutes = routing.NewRegistry[*ctr.Session]()

func init() {
	enrichRoutes.MustRegister("observe.observables", observablesHandler(observe))
	enrichRoutes.MustRegister("deliberate.observables", observablesHandler(deliberate))
	enrichRoutes.MustRegister("refer.observables", observablesHandler(refer))
	enrichRoutes.MustRegister("health", func(ctx context.Context, s *ctr.Session, _ ...any) (any, error) {
		return health(ctx, s)
	})
}

// observablesHandler adapts an operation taking observables to a route handler.
func observablesHandler[R any](fn func(context.Context, *ctr.Session, []ctr.Observable) (R, error)) routing.Handler[*ctr.Session] {
	return func(ctx context.Context, s *ctr.Session, args ...any) (any, error) {
		observables, err := convertArg[[]ctr.Observable](args, 0)
		if err != nil {
			return nil, err
		}

		return fn(ctx, s, observables)
	}
}

// EnrichClient implements ctr.EnrichClient.
type EnrichClient struct {
	session *ctr.Session
}

// NewEnrichClient creates a new enrich client.
func NewEnrichClient(session *ctr.Session) *EnrichClient {
	return &EnrichClient{session: session}
}

// Observe implements ctr.EnrichClient.Observe.
func (c *EnrichClient) Observe(ctx context.Context, observables []ctr.Observable) (*ctr.EnrichResponse, error) {
	return observe(ctx, c.session, observables)
}

// Deliberate implements ctr.EnrichClient.Deliberate.
func (c *EnrichClient) Deliberate(ctx context.Context, observables []ctr.Observable) (*ctr.EnrichResponse, error) {
	return deliberate(ctx, c.session, observables)
}

// Refer implements ctr.EnrichClient.Refer.
func (c *EnrichClient) Refer(ctx context.Context, observables []ctr.Observable) (*ctr.ReferResponse, error) {
	return refer(ctx, c.session, observables)
}

// Health implements ctr.EnrichClient.Health.
func (c *EnrichClient) Health(ctx context.Context) (*ctr.EnrichResponse, error) {
	return health(ctx, c.session)
}

func observe(ctx context.Context, s *ctr.Session, observables []ctr.Observable) (*ctr.EnrichResponse, error) {
	return postEnrich(ctx, s, constants.EnrichObservePath, observables, "observe")
}

func deliberate(ctx context.Context, s *ctr.Session, observables []ctr.Observable) (*ctr.EnrichResponse, error) {
	return postEnrich(ctx, s, constants.EnrichDeliberatePath, observables, "deliberate")
}

func health(ctx context.Context, s *ctr.Session) (*ctr.EnrichResponse, error) {
	resp, err := s.HTTP.Post(ctx, constants.EnrichHealthPath)
	if err != nil {
		return nil, fmt.Errorf("checking module health: %w", err)
	}

	var result ctr.EnrichResponse

	err = resp.Decode(&result)
	if err != nil {
		return nil, fmt.Errorf("parsing health response: %w", err)
	}

	return &result, nil
}

func refer(ctx context.Context, s *ctr.Session, observables []ctr.Observable) (*ctr.ReferResponse, error) {
	resp, err := s.HTTP.Post(ctx, constants.EnrichReferPath, request.WithJSON(observables))
	if err != nil {
		return nil, fmt.Errorf("referring observables: %w", err)
	}

	var result ctr.ReferResponse

	err = resp.Decode(&result)
	if err != nil {
		return nil, fmt.Errorf("parsing refer response: %w", err)
	}

	return &result, nil
}

func postEnrich(ctx context.Context, s *ctr.Session, path string, observables []ctr.Observable, action string) (*ctr.EnrichResponse, error) {
	resp, err := s.HTTP.Post(ctx, path, request.WithJSON(observables), request.WithRequestTimeout(constants.ExtendedHTTPTimeout))
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", action, err)
	}

	var result ctr.EnrichResponse

	err = resp.Decode(&result)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", action, err)
	}

	return &result, nil
}
