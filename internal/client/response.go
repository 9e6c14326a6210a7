package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/threatresponse/internal/constants"
	"github.com/fivetwenty-io/threatresponse/pkg/ctr"
	"github.com/fivetwenty-io/threatresponse/pkg/request"
	"github.com/fivetwenty-io/threatresponse/pkg/routing"
)

var responseRoutes = routing.NewRegistry[*ctr.Session]()

func init() {
	responseRoutes.MustRegister("respond.observables", observablesHandler(actions))
	responseRoutes.MustRegister("respond.trigger", func(ctx context.Context, s *ctr.Session, args ...any) (any, error) {
		moduleID, err := stringArg(args, 0)
		if err != nil {
			return nil, err
		}

		actionID, err := stringArg(args, 1)
		if err != nil {
			return nil, err
		}

		observable, err := convertArg[ctr.Observable](args, 2)
		if err != nil {
			return nil, err
		}

		return trigger(ctx, s, moduleID, actionID, observable)
	})
}

// ResponseClient implements ctr.ResponseClient.
type ResponseClient struct {
	session *ctr.Session
}

// NewResponseClient creates a new response client.
func NewResponseClient(session *ctr.Session) *ResponseClient {
	return &ResponseClient{session: session}
}

// Actions implements ctr.ResponseClient.Actions.
func (c *ResponseClient) Actions(ctx context.Context, observables []ctr.Observable) (*ctr.ActionsResponse, error) {
	return actions(ctx, c.session, observables)
}

// Trigger implements ctr.ResponseClient.Trigger.
func (c *ResponseClient) Trigger(ctx context.Context, moduleID, actionID string, observable ctr.Observable) (*ctr.TriggerResult, error) {
	return trigger(ctx, c.session, moduleID, actionID, observable)
}

func actions(ctx context.Context, s *ctr.Session, observables []ctr.Observable) (*ctr.ActionsResponse, error) {
	resp, err := s.HTTP.Post(ctx, constants.RespondObservablesPath, request.WithJSON(observables))
	if err != nil {
		return nil, fmt.Errorf("listing response actions: %w", err)
	}

	var result ctr.ActionsResponse

	err = resp.Decode(&result)
	if err != nil {
		return nil, fmt.Errorf("parsing response actions: %w", err)
	}

	return &result, nil
}

func trigger(ctx context.Context, s *ctr.Session, moduleID, actionID string, observable ctr.Observable) (*ctr.TriggerResult, error) {
	path := fmt.Sprintf("%s/%s/%s", constants.RespondTriggerPath, url.PathEscape(moduleID), url.PathEscape(actionID))

	resp, err := s.HTTP.Post(ctx, path,
		request.WithQueryParam("observable_type", observable.Type),
		request.WithQueryParam("observable_value", observable.Value),
	)
	if err != nil {
		return nil, fmt.Errorf("triggering response action: %w", err)
	}

	var result ctr.TriggerResult

	err = resp.Decode(&result)
	if err != nil {
		return nil, fmt.Errorf("parsing trigger result: %w", err)
	}

	return &result, nil
}
