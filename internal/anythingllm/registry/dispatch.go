package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/anythingllm"
)

// operation adapts positional arguments (ordered per the catalog entry's
// Params) to one client method call. An explicit table instead of runtime
// reflection keeps registry/client drift a compile-adjacent, startup-checked
// condition.
type operation func(ctx context.Context, c *anythingllm.Client, args []any) (any, error)

var operations = map[string]operation{
	"ValidateConnection": func(ctx context.Context, c *anythingllm.Client, args []any) (any, error) {
		return c.ValidateConnection(ctx), nil
	},
	"ListWorkspaces": func(ctx context.Context, c *anythingllm.Client, args []any) (any, error) {
		return c.ListWorkspaces(ctx)
	},
	"GetWorkspace": func(ctx context.Context, c *anythingllm.Client, args []any) (any, error) {
		return c.GetWorkspace(ctx, args[0].(string))
	},
	"CreateWorkspace": func(ctx context.Context, c *anythingllm.Client, args []any) (any, error) {
		return c.CreateWorkspace(ctx, args[0].(string))
	},
	"DeleteWorkspace": func(ctx context.Context, c *anythingllm.Client, args []any) (any, error) {
		return c.DeleteWorkspace(ctx, args[0].(string))
	},
	"UpdateEmbeddings": func(ctx context.Context, c *anythingllm.Client, args []any) (any, error) {
		return c.UpdateEmbeddings(ctx, args[0].(string))
	},
	"Chat": func(ctx context.Context, c *anythingllm.Client, args []any) (any, error) {
		return c.Chat(ctx, args[0].(string), args[1].(string), args[2].(string))
	},
	"ListUsers": func(ctx context.Context, c *anythingllm.Client, args []any) (any, error) {
		return c.ListUsers(ctx)
	},
}

// Validate checks catalog and dispatch table against each other. A catalog
// entry without a dispatch adapter (or an adapter without a catalog entry)
// is a ConfigurationError; callers run this at startup and treat failure as
// fatal.
func Validate() error {
	for _, m := range catalog {
		if _, ok := operations[m.Name]; !ok {
			return anythingllm.NewConfigurationError(
				fmt.Sprintf("catalog entry %q has no dispatch adapter", m.Name))
		}
	}
	for name := range operations {
		if _, ok := Find(name); !ok {
			return anythingllm.NewConfigurationError(
				fmt.Sprintf("dispatch adapter %q has no catalog entry", name))
		}
	}
	return nil
}

// Invoke looks up the operation by name, binds args by parameter name into
// the declared positional order and calls the adapter. An unknown name is a
// ConfigurationError, distinguishable from any remote API failure.
func Invoke(ctx context.Context, c *anythingllm.Client, name string, args map[string]any) (any, error) {
	m, ok := Find(name)
	if !ok {
		return nil, anythingllm.NewConfigurationError(
			fmt.Sprintf("operation %q is not in the method catalog", name))
	}
	op, ok := operations[name]
	if !ok {
		return nil, anythingllm.NewConfigurationError(
			fmt.Sprintf("operation %q has no dispatch adapter", name))
	}

	positional, err := bind(m, args)
	if err != nil {
		return nil, err
	}
	return op(ctx, c, positional)
}

// bind orders the named arguments per the catalog entry, applying declared
// defaults, enforcing required parameters and coercing each value to its
// parameter type.
func bind(m Method, args map[string]any) ([]any, error) {
	positional := make([]any, 0, len(m.Params))
	for _, p := range m.Params {
		raw, present := args[p.Name]
		if !present || raw == nil || raw == "" {
			if p.Default != "" {
				raw = p.Default
			} else if p.Required {
				return nil, fmt.Errorf("missing required parameter %q", p.Name)
			} else {
				raw = zeroValue(p.Type)
			}
		}

		v, err := coerce(p, raw)
		if err != nil {
			return nil, err
		}
		positional = append(positional, v)
	}
	return positional, nil
}

// coerce converts a collected value to the Go type the adapter expects for
// the parameter's type tag.
func coerce(p Param, raw any) (any, error) {
	switch p.Type {
	case TypeString, TypeSlug:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("parameter %q must be a string, got %T", p.Name, raw)
		}
		return s, nil

	case TypeNumber:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %q must be a number: %w", p.Name, err)
			}
			return f, nil
		default:
			return nil, fmt.Errorf("parameter %q must be a number, got %T", p.Name, raw)
		}

	case TypeBoolean:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("parameter %q must be a boolean: %w", p.Name, err)
			}
			return b, nil
		default:
			return nil, fmt.Errorf("parameter %q must be a boolean, got %T", p.Name, raw)
		}

	case TypeJSON:
		switch v := raw.(type) {
		case string:
			if !sonic.Valid([]byte(v)) {
				return nil, fmt.Errorf("parameter %q is not valid JSON", p.Name)
			}
			return json.RawMessage(v), nil
		case json.RawMessage:
			return v, nil
		default:
			// Already-decoded structures round-trip through sonic.
			b, err := sonic.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("parameter %q is not valid JSON: %w", p.Name, err)
			}
			return json.RawMessage(b), nil
		}

	default:
		return nil, fmt.Errorf("parameter %q has unknown type tag %q", p.Name, p.Type)
	}
}

// zeroValue is the value an optional, defaultless parameter binds to.
func zeroValue(t ParamType) any {
	switch t {
	case TypeNumber:
		return float64(0)
	case TypeBoolean:
		return false
	case TypeJSON:
		return json.RawMessage("null")
	default:
		return ""
	}
}
