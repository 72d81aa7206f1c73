// Package server exposes dictionary lookups as a Connect RPC service.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/at-ishikawa/lexicon/internal/dictionary"
)

const (
	LookupServiceName = "lexicon.v1.LookupService"
	LookupProcedure   = "/" + LookupServiceName + "/Lookup"

	errorDomain            = "lexicon"
	reasonMalformedPayload = "MALFORMED_RESPONSE"
)

// LookupHandler serves Lookup calls with a dictionary.Lookuper.
type LookupHandler struct {
	lookuper dictionary.Lookuper
}

func NewLookupHandler(lookuper dictionary.Lookuper) *LookupHandler {
	return &LookupHandler{lookuper: lookuper}
}

// NewLookupServiceHandler returns the path and handler to mount on a mux.
func NewLookupServiceHandler(h *LookupHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	return LookupProcedure, connect.NewUnaryHandler(LookupProcedure, h.Lookup, opts...)
}

// Lookup takes the term as a StringValue and returns the word as a Struct
// keyed by the word's JSON field names.
func (h *LookupHandler) Lookup(
	ctx context.Context,
	req *connect.Request[wrapperspb.StringValue],
) (*connect.Response[structpb.Struct], error) {
	term := strings.TrimSpace(req.Msg.GetValue())
	if term == "" {
		return nil, invalidArgument("value", "value must not be empty")
	}

	word, err := h.lookuper.Lookup(ctx, term)
	if err != nil {
		return nil, toConnectError(err)
	}

	msg, err := wordToStruct(word)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("wordToStruct > %w", err))
	}
	return connect.NewResponse(msg), nil
}

func invalidArgument(field, description string) error {
	connectErr := connect.NewError(connect.CodeInvalidArgument, errors.New(description))
	if detail, detailErr := connect.NewErrorDetail(&errdetails.BadRequest{
		FieldViolations: []*errdetails.BadRequest_FieldViolation{
			{Field: field, Description: description},
		},
	}); detailErr == nil {
		connectErr.AddDetail(detail)
	}
	return connectErr
}

func toConnectError(err error) error {
	kind, ok := dictionary.KindOf(err)
	if !ok {
		slog.Default().Error("lookup failed with an unclassified error", "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}

	switch kind {
	case dictionary.LookupNotFound:
		return connect.NewError(connect.CodeNotFound, err)
	case dictionary.LookupNetwork:
		return connect.NewError(connect.CodeUnavailable, err)
	case dictionary.LookupMapping:
		connectErr := connect.NewError(connect.CodeInternal, err)
		if detail, detailErr := connect.NewErrorDetail(&errdetails.ErrorInfo{
			Reason: reasonMalformedPayload,
			Domain: errorDomain,
		}); detailErr == nil {
			connectErr.AddDetail(detail)
		}
		return connectErr
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func wordToStruct(word dictionary.Word) (*structpb.Struct, error) {
	body, err := json.Marshal(word)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal > %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return structpb.NewStruct(fields)
}
