package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/threatresponse/internal/constants"
	"github.com/fivetwenty-io/threatresponse/pkg/ctr"
	"github.com/fivetwenty-io/threatresponse/pkg/request"
	"github.com/fivetwenty-io/threatresponse/pkg/routing"
)

var inspectRoutes = routing.NewRegistry[*ctr.Session]()

func init() {
	inspectRoutes.MustRegister("inspect", func(ctx context.Context, s *ctr.Session, args ...any) (any, error) {
		content, err := stringArg(args, 0)
		if err != nil {
			return nil, err
		}

		return inspect(ctx, s, content)
	})
}

// InspectClient implements ctr.InspectClient.
type InspectClient struct {
	session *ctr.Session
}

// NewInspectClient creates a new inspect client.
func NewInspectClient(session *ctr.Session) *InspectClient {
	return &InspectClient{session: session}
}

// Inspect implements ctr.InspectClient.Inspect.
func (c *InspectClient) Inspect(ctx context.Context, content string) ([]ctr.Observable, error) {
	return inspect(ctx, c.session, content)
}

func inspect(ctx context.Context, s *ctr.Session, content string) ([]ctr.Observable, error) {
	resp, err := s.HTTP.Post(ctx, constants.InspectPath, request.WithJSON(map[string]string{"content": content}))
	if err != nil {
		return nil, fmt.Errorf("inspecting content: %w", err)
	}

	var observables []ctr.Observable

	err = resp.Decode(&observables)
	if err != nil {
		return nil, fmt.Errorf("parsing observables: %w", err)
	}

	return observables, nil
}
