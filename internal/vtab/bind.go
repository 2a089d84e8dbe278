package vtab

import "fmt"

// BindData is the bound scan parameter set. Immutable after Bind.
type BindData struct {
	Filename string
}

// Bind validates the positional parameters and declares the output schema.
// It performs no I/O: the host may bind only to plan a query.
func Bind(params []any) (Schema, BindData, error) {
	if len(params) == 0 {
		return nil, BindData{}, newArgumentError("missing filename parameter")
	}
	if len(params) > 1 {
		return nil, BindData{}, newArgumentError("expected 1 parameter, got %d", len(params))
	}

	var name string
	switch v := params[0].(type) {
	case string:
		name = v
	case []byte:
		name = string(v)
	case fmt.Stringer:
		name = v.String()
	case nil:
		return nil, BindData{}, newArgumentError("filename parameter is NULL")
	default:
		return nil, BindData{}, newArgumentError("filename must be VARCHAR, got %T", v)
	}
	if name == "" {
		return nil, BindData{}, newArgumentError("missing filename parameter")
	}
	return FastqSchema(), BindData{Filename: name}, nil
}
