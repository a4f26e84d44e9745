package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/bobmcallan/databricks-mcp/internal/common"
	"github.com/bobmcallan/databricks-mcp/internal/databricks"
	"github.com/bobmcallan/databricks-mcp/internal/interfaces"
)

// callFunc binds raw tool arguments and performs one client call.
type callFunc func(ctx context.Context, client interfaces.DatabricksClient, args map[string]any) (databricks.Response, error)

// validatable is a pointer to a request struct with a Validate method.
type validatable[T any] interface {
	*T
	Validate() error
}

// bind adapts a client method taking a typed request into a callFunc.
// Arguments are decoded into the request and validated before fn runs.
func bind[T any, P validatable[T]](fn func(interfaces.DatabricksClient, context.Context, T) (databricks.Response, error)) callFunc {
	return func(ctx context.Context, client interfaces.DatabricksClient, args map[string]any) (databricks.Response, error) {
		var req T
		if err := decodeArgs(args, &req); err != nil {
			return nil, err
		}
		if err := P(&req).Validate(); err != nil {
			return nil, err
		}
		return fn(client, ctx, req)
	}
}

// noArgs adapts a client method that takes no request.
func noArgs(fn func(interfaces.DatabricksClient, context.Context) (databricks.Response, error)) callFunc {
	return func(ctx context.Context, client interfaces.DatabricksClient, _ map[string]any) (databricks.Response, error) {
		return fn(client, ctx)
	}
}

// decodeArgs decodes a tool argument map into out. Weak typing lets "42"
// and 42.0 both land in an int64 field; 42.9 is rejected.
func decodeArgs(args map[string]any, out any) error {
	if err := checkIntegerArgs(args, reflect.TypeOf(out)); err != nil {
		return err
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       jsonObjectHook,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		var mErr *mapstructure.Error
		if errors.As(err, &mErr) {
			return fmt.Errorf("invalid arguments: %s", strings.Join(mErr.Errors, "; "))
		}
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// checkIntegerArgs rejects numbers with a fractional part, or outside the
// int64 range, for integer fields of the struct t points to. mapstructure
// would otherwise truncate them.
func checkIntegerArgs(args map[string]any, t reflect.Type) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" {
			continue
		}
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if !isIntegerKind(ft.Kind()) {
			continue
		}
		var v float64
		switch n := args[name].(type) {
		case float64:
			v = n
		case json.Number:
			f, err := n.Float64()
			if err != nil {
				continue
			}
			v = f
		default:
			continue
		}
		if v != math.Trunc(v) {
			return &databricks.ValidationError{Field: name, Reason: "must be an integer"}
		}
		if v < math.MinInt64 || v >= math.MaxInt64 {
			return &databricks.ValidationError{Field: name, Reason: "is out of range"}
		}
	}
	return nil
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// jsonObjectHook accepts object parameters sent as JSON-encoded strings.
var jsonObjectHook mapstructure.DecodeHookFuncType = func(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Map {
		return data, nil
	}
	s := strings.TrimSpace(data.(string))
	if s == "" {
		return map[string]any{}, nil
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, fmt.Errorf("must be a JSON object")
	}
	return obj, nil
}

// toolHandler returns the handler for one catalog tool. Failures are
// reported as error results; the returned Go error is always nil.
func toolHandler(client interfaces.DatabricksClient, ct CatalogTool, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp, err := ct.call(ctx, client, r.GetArguments())
		if err != nil {
			logFailure(loggerFromContext(ctx, logger), ct.Name, err)
			return errorResult(err.Error()), nil
		}
		return jsonResult(resp), nil
	}
}

func logFailure(logger *common.Logger, tool string, err error) {
	var vErr *databricks.ValidationError
	var apiErr *databricks.RemoteAPIError
	switch {
	case errors.As(err, &vErr):
		logger.Debug().Str("tool", tool).Str("field", vErr.Field).Msg("invalid tool arguments")
	case errors.As(err, &apiErr):
		logger.Warn().Str("tool", tool).Int("status", apiErr.StatusCode).Str("error", err.Error()).Msg("databricks call failed")
	default:
		logger.Warn().Str("tool", tool).Str("error", err.Error()).Msg("tool call failed")
	}
}

// jsonResult creates an MCP result holding v as JSON text.
func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.Marshal(v)
	if err != nil {
		return errorResult(fmt.Sprintf("failed to encode response: %v", err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(out))},
	}
}

// errorResult creates an MCP error result carrying {"error": message}.
func errorResult(message string) *mcp.CallToolResult {
	out, _ := json.Marshal(map[string]string{"error": message})
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(string(out)),
		},
		IsError: true,
	}
}
