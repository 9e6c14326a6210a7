package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/threatresponse/internal/constants"
	"github.com/fivetwenty-io/threatresponse/pkg/ctr"
	"github.com/fivetwenty-io/threatresponse/pkg/routing"
)

var profileRoutes = routing.NewRegistry[*ctr.Session]()

func init() {
	profileRoutes.MustRegister("whoami", func(ctx context.Context, s *ctr.Session, _ ...any) (any, error) {
		return whoami(ctx, s)
	})
}

// ProfileClient implements ctr.ProfileClient.
type ProfileClient struct {
	session *ctr.Session
}

// NewProfileClient creates a new profile client.
func NewProfileClient(session *ctr.Session) *ProfileClient {
	return &ProfileClient{session: session}
}

// WhoAmI implements ctr.ProfileClient.WhoAmI.
func (c *ProfileClient) WhoAmI(ctx context.Context) (*ctr.Profile, error) {
	return whoami(ctx, c.session)
}

func whoami(ctx context.Context, s *ctr.Session) (*ctr.Profile, error) {
	resp, err := s.HTTP.Get(ctx, constants.WhoAmIPath)
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}

	var profile ctr.Profile

	err = resp.Decode(&profile)
	if err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}

	return &profile, nil
}
