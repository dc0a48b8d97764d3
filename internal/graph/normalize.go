package graph

import "github.com/neo4j/neo4j-go-driver/v5/neo4j"

// normalizeValue convierte valores del driver en estructuras planas con la
// forma {identity, labels/type, properties} que espera el visor. Escalares
// y colecciones pasan tal cual, recorriendo contenedores recursivamente.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case neo4j.Node:
		return map[string]any{
			"identity":   val.Id,
			"elementId":  val.ElementId,
			"labels":     val.Labels,
			"properties": val.Props,
		}
	case neo4j.Relationship:
		return map[string]any{
			"identity":   val.Id,
			"elementId":  val.ElementId,
			"start":      val.StartId,
			"end":        val.EndId,
			"type":       val.Type,
			"properties": val.Props,
		}
	case neo4j.Path:
		nodes := make([]any, 0, len(val.Nodes))
		for _, n := range val.Nodes {
			nodes = append(nodes, normalizeValue(n))
		}
		rels := make([]any, 0, len(val.Relationships))
		for _, r := range val.Relationships {
			rels = append(rels, normalizeValue(r))
		}
		return map[string]any{
			"nodes":         nodes,
			"relationships": rels,
		}
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}
