package filterexpr

import (
	"errors"
	"fmt"
	"strings"
)

type orderParams struct {
	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

func parseOrderBy[T any](raw string, schema OrderSchema[T]) (orderParams, error) { //nolint:gocognit,gocyclo // parsing DSL entails validation branches for readability
	for _, key := range []string{schema.DefaultPrimary, schema.FallbackKey} {
		if key == "" {
			continue
		}
		if _, ok := schema.Fields[key]; !ok {
			return orderParams{}, fmt.Errorf("order key %q missing from schema fields", key)
		}
	}
	for key, field := range schema.Fields {
		if field.Compare == nil {
			return orderParams{}, fmt.Errorf("order key %q has no comparator", key)
		}
	}

	ord := orderParams{
		PrimaryKey:    schema.DefaultPrimary,
		PrimaryDesc:   schema.DefaultPrimaryDesc,
		SecondaryKey:  schema.FallbackKey,
		SecondaryDesc: schema.FallbackDesc,
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ord, nil
	}

	segments := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(segments))
	idx := 0
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}

		parts := strings.Fields(seg)
		if len(parts) == 0 {
			continue
		}
		key := parts[0]
		if _, ok := schema.Fields[key]; !ok {
			return orderParams{}, fmt.Errorf("field %q cannot be used for ordering", key)
		}

		var desc bool
		switch len(parts) {
		case 1:
			desc = false
		case 2:
			dir := strings.ToLower(parts[1])
			switch dir {
			case "asc":
				desc = false
			case "desc":
				desc = true
			default:
				return orderParams{}, fmt.Errorf("invalid direction %q for field %q", parts[1], key)
			}
		default:
			return orderParams{}, fmt.Errorf("invalid order segment %q", seg)
		}

		if _, dup := seen[key]; dup {
			return orderParams{}, fmt.Errorf("duplicate order key %q", key)
		}
		seen[key] = struct{}{}

		switch idx {
		case 0:
			ord.PrimaryKey = key
			ord.PrimaryDesc = desc
		case 1:
			ord.SecondaryKey = key
			ord.SecondaryDesc = desc
		default:
			return orderParams{}, errors.New("order_by supports at most two keys")
		}
		idx++
	}

	if idx == 1 {
		ord.SecondaryKey = schema.FallbackKey
		ord.SecondaryDesc = schema.FallbackDesc
	}

	// A fallback equal to the primary adds nothing; the stable sort keeps
	// ties in input order.
	if ord.SecondaryKey == ord.PrimaryKey {
		ord.SecondaryKey = ""
		ord.SecondaryDesc = false
	}

	return ord, nil
}
