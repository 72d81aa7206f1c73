package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/at-ishikawa/lexicon/internal/dictionary"
)

// Client looks words up through a remote LookupService.
type Client struct {
	client *connect.Client[wrapperspb.StringValue, structpb.Struct]
}

var _ dictionary.Lookuper = (*Client)(nil)

func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	return &Client{
		client: connect.NewClient[wrapperspb.StringValue, structpb.Struct](
			httpClient,
			strings.TrimRight(baseURL, "/")+LookupProcedure,
			opts...,
		),
	}
}

// Lookup returns the same *dictionary.LookupError kinds as dictionary.Reader.
func (c *Client) Lookup(ctx context.Context, term string) (dictionary.Word, error) {
	res, err := c.client.CallUnary(ctx, connect.NewRequest(wrapperspb.String(term)))
	if err != nil {
		return dictionary.Word{}, fromConnectError(term, err)
	}

	word, err := structToWord(res.Msg)
	if err != nil {
		return dictionary.Word{}, &dictionary.LookupError{
			Kind: dictionary.LookupMapping,
			Term: term,
			Err:  &dictionary.MappingError{Kind: dictionary.MappingMalformed, Err: err},
		}
	}
	return word, nil
}

func fromConnectError(term string, err error) error {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return &dictionary.LookupError{Kind: dictionary.LookupNetwork, Term: term, Err: err}
	}

	switch connectErr.Code() {
	case connect.CodeNotFound:
		return &dictionary.LookupError{Kind: dictionary.LookupNotFound, Term: term, Err: err}
	case connect.CodeInternal:
		if hasReason(connectErr, reasonMalformedPayload) {
			return &dictionary.LookupError{
				Kind: dictionary.LookupMapping,
				Term: term,
				Err:  &dictionary.MappingError{Kind: dictionary.MappingMalformed, Err: err},
			}
		}
	}
	return &dictionary.LookupError{Kind: dictionary.LookupNetwork, Term: term, Err: err}
}

func hasReason(connectErr *connect.Error, reason string) bool {
	for _, detail := range connectErr.Details() {
		value, err := detail.Value()
		if err != nil {
			continue
		}
		if info, ok := value.(*errdetails.ErrorInfo); ok && info.GetReason() == reason {
			return true
		}
	}
	return false
}

func structToWord(msg *structpb.Struct) (dictionary.Word, error) {
	body, err := protojson.Marshal(msg)
	if err != nil {
		return dictionary.Word{}, fmt.Errorf("protojson.Marshal > %w", err)
	}
	var word dictionary.Word
	if err := json.Unmarshal(body, &word); err != nil {
		return dictionary.Word{}, fmt.Errorf("json.Unmarshal > %w", err)
	}
	if word.Value == "" {
		return dictionary.Word{}, errors.New("value is missing")
	}
	return word, nil
}
