package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookswipe/bookswipe-server/internal/service"
)

func (s *Server) registerLookupRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "lookupBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/lookup/{identifier}",
		Summary:     "Resolve an ISBN",
		Description: "Resolves a bare ISBN to a catalog book. A miss is the entry point to the suggestion flow.",
		Tags:        []string{"Lookup"},
	}, s.handleLookup)
}

// LookupInput contains parameters for resolving an identifier.
type LookupInput struct {
	Identifier string `path:"identifier" doc:"10 to 13 digit ISBN"`
}

// LookupOutput wraps the resolved book for Huma.
type LookupOutput struct {
	Body service.ResolvedBook
}

func (s *Server) handleLookup(ctx context.Context, input *LookupInput) (*LookupOutput, error) {
	resolved, err := s.services.Lookup.Resolve(ctx, input.Identifier)
	if err != nil {
		return nil, err
	}
	return &LookupOutput{Body: *resolved}, nil
}
