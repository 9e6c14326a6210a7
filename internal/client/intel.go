package client

import (
	"context"
	"fmt"
	"net/url"
	"slices"

	"github.com/fivetwenty-io/threatresponse/internal/constants"
	"github.com/fivetwenty-io/threatresponse/pkg/ctr"
	"github.com/fivetwenty-io/threatresponse/pkg/request"
	"github.com/fivetwenty-io/threatresponse/pkg/routing"
)

var intelRoutes = routing.NewRegistry[*ctr.Session]()

func init() {
	for _, name := range constants.IntelEntities {
		registerEntityRoutes(name, false)
	}

	for _, name := range constants.ReadOnlyIntelEntities {
		registerEntityRoutes(name, true)
	}
}

func registerEntityRoutes(name string, readOnly bool) {
	intelRoutes.MustRegister(name+".get", func(ctx context.Context, s *ctr.Session, args ...any) (any, error) {
		id, err := stringArg(args, 0)
		if err != nil {
			return nil, err
		}

		return getEntity(ctx, s, name, id)
	})

	intelRoutes.MustRegister(name+".search", func(ctx context.Context, s *ctr.Session, args ...any) (any, error) {
		query, err := searchQueryArg(args, 0)
		if err != nil {
			return nil, err
		}

		return searchEntities(ctx, s, name, query)
	})

	if readOnly {
		return
	}

	intelRoutes.MustRegister(name+".create", func(ctx context.Context, s *ctr.Session, args ...any) (any, error) {
		entity, err := convertArg[ctr.Entity](args, 0)
		if err != nil {
			return nil, err
		}

		return createEntity(ctx, s, name, entity)
	})

	intelRoutes.MustRegister(name+".update", func(ctx context.Context, s *ctr.Session, args ...any) (any, error) {
		id, err := stringArg(args, 0)
		if err != nil {
			return nil, err
		}

		entity, err := convertArg[ctr.Entity](args, 1)
		if err != nil {
			return nil, err
		}

		return updateEntity(ctx, s, name, id, entity)
	})

	intelRoutes.MustRegister(name+".delete", func(ctx context.Context, s *ctr.Session, args ...any) (any, error) {
		id, err := stringArg(args, 0)
		if err != nil {
			return nil, err
		}

		return nil, deleteEntity(ctx, s, name, id)
	})
}

// searchQueryArg accepts a query string, url.Values or a generic map.
func searchQueryArg(args []any, i int) (url.Values, error) {
	if i >= len(args) || args[i] == nil {
		return url.Values{}, nil
	}

	switch query := args[i].(type) {
	case string:
		return url.Values{"query": {query}}, nil
	case url.Values:
		return query, nil
	}

	params, err := convertArg[map[string]string](args, i)
	if err != nil {
		return nil, err
	}

	values := make(url.Values, len(params))
	for key, value := range params {
		values.Set(key, value)
	}

	return values, nil
}

// IntelClient implements ctr.IntelClient.
type IntelClient struct {
	session *ctr.Session
}

// NewIntelClient creates a new intel client.
func NewIntelClient(session *ctr.Session) *IntelClient {
	return &IntelClient{session: session}
}

// Entities implements ctr.IntelClient.Entities.
func (c *IntelClient) Entities() []string {
	names := slices.Concat(constants.IntelEntities, constants.ReadOnlyIntelEntities)
	slices.Sort(names)

	return names
}

// Entity implements ctr.IntelClient.Entity.
func (c *IntelClient) Entity(name string) (ctr.EntityClient, error) {
	switch {
	case slices.Contains(constants.IntelEntities, name):
		return &EntityClient{session: c.session, name: name}, nil
	case slices.Contains(constants.ReadOnlyIntelEntities, name):
		return &EntityClient{session: c.session, name: name, readOnly: true}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ctr.ErrUnknownEntity, name)
	}
}

// EntityClient implements ctr.EntityClient.
type EntityClient struct {
	session  *ctr.Session
	name     string
	readOnly bool
}

// Name implements ctr.EntityClient.Name.
func (c *EntityClient) Name() string {
	return c.name
}

// Get implements ctr.EntityClient.Get.
func (c *EntityClient) Get(ctx context.Context, id string) (ctr.Entity, error) {
	return getEntity(ctx, c.session, c.name, id)
}

// Create implements ctr.EntityClient.Create.
func (c *EntityClient) Create(ctx context.Context, entity ctr.Entity) (ctr.Entity, error) {
	if c.readOnly {
		return nil, fmt.Errorf("%w: %s", ctr.ErrReadOnlyEntity, c.name)
	}

	return createEntity(ctx, c.session, c.name, entity)
}

// Update implements ctr.EntityClient.Update.
func (c *EntityClient) Update(ctx context.Context, id string, entity ctr.Entity) (ctr.Entity, error) {
	if c.readOnly {
		return nil, fmt.Errorf("%w: %s", ctr.ErrReadOnlyEntity, c.name)
	}

	return updateEntity(ctx, c.session, c.name, id, entity)
}

// Delete implements ctr.EntityClient.Delete.
func (c *EntityClient) Delete(ctx context.Context, id string) error {
	if c.readOnly {
		return fmt.Errorf("%w: %s", ctr.ErrReadOnlyEntity, c.name)
	}

	return deleteEntity(ctx, c.session, c.name, id)
}

// Search implements ctr.EntityClient.Search.
func (c *EntityClient) Search(ctx context.Context, query url.Values) ([]ctr.Entity, error) {
	return searchEntities(ctx, c.session, c.name, query)
}

func entityURL(s *ctr.Session, name string, parts ...string) string {
	path := constants.IntelPathPrefix + "/" + name
	for _, part := range parts {
		path += "/" + url.PathEscape(part)
	}

	return s.IntelURL(path)
}

func getEntity(ctx context.Context, s *ctr.Session, name, id string) (ctr.Entity, error) {
	if id == "" {
		return nil, ctr.ErrIDRequired
	}

	resp, err := s.HTTP.Get(ctx, entityURL(s, name, id))
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", name, err)
	}

	var entity ctr.Entity

	err = resp.Decode(&entity)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	return entity, nil
}

func createEntity(ctx context.Context, s *ctr.Session, name string, entity ctr.Entity) (ctr.Entity, error) {
	resp, err := s.HTTP.Post(ctx, entityURL(s, name), request.WithJSON(entity))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}

	var created ctr.Entity

	err = resp.Decode(&created)
	if err != nil {
		return nil, fmt.Errorf("parsing created %s: %w", name, err)
	}

	return created, nil
}

func updateEntity(ctx context.Context, s *ctr.Session, name, id string, entity ctr.Entity) (ctr.Entity, error) {
	if id == "" {
		return nil, ctr.ErrIDRequired
	}

	resp, err := s.HTTP.Put(ctx, entityURL(s, name, id), request.WithJSON(entity))
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", name, err)
	}

	var updated ctr.Entity

	err = resp.Decode(&updated)
	if err != nil {
		return nil, fmt.Errorf("parsing updated %s: %w", name, err)
	}

	return updated, nil
}

func deleteEntity(ctx context.Context, s *ctr.Session, name, id string) error {
	if id == "" {
		return ctr.ErrIDRequired
	}

	_, err := s.HTTP.Delete(ctx, entityURL(s, name, id))
	if err != nil {
		return fmt.Errorf("deleting %s: %w", name, err)
	}

	return nil
}

func searchEntities(ctx context.Context, s *ctr.Session, name string, query url.Values) ([]ctr.Entity, error) {
	resp, err := s.HTTP.Get(ctx, entityURL(s, name, "search"), request.WithQuery(query))
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", name, err)
	}

	var entities []ctr.Entity

	err = resp.Decode(&entities)
	if err != nil {
		return nil, fmt.Errorf("parsing %s search results: %w", name, err)
	}

	return entities, nil
}
