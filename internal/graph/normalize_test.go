package graph

import (
	"reflect"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

func TestNormalizeValue_Node(t *testing.T) {
	node := neo4j.Node{
		Id:        1,
		ElementId: "4:abc:1",
		Labels:    []string{"Person"},
		Props:     map[string]any{"name": "Tom Hanks", "born": int64(1956)},
	}

	got, ok := normalizeValue(node).(map[string]any)
	if !ok {
		t.Fatal("expected map result")
	}
	if got["identity"] != int64(1) {
		t.Fatalf("expected identity 1, got %v", got["identity"])
	}
	if !reflect.DeepEqual(got["labels"], []string{"Person"}) {
		t.Fatalf("unexpected labels %v", got["labels"])
	}
	props, _ := got["properties"].(map[string]any)
	if props["name"] != "Tom Hanks" {
		t.Fatalf("unexpected properties %v", got["properties"])
	}
}

func TestNormalizeValue_Relationship(t *testing.T) {
	rel := neo4j.Relationship{
		Id:        7,
		ElementId: "5:abc:7",
		StartId:   1,
		EndId:     2,
		Type:      "ACTED_IN",
		Props:     map[string]any{"roles": []any{"Forrest"}},
	}

	got, ok := normalizeValue(rel).(map[string]any)
	if !ok {
		t.Fatal("expected map result")
	}
	if got["start"] != int64(1) || got["end"] != int64(2) {
		t.Fatalf("unexpected endpoints %v -> %v", got["start"], got["end"])
	}
	if got["type"] != "ACTED_IN" {
		t.Fatalf("unexpected type %v", got["type"])
	}
}

func TestNormalizeValue_Path(t *testing.T) {
	path := neo4j.Path{
		Nodes: []neo4j.Node{
			{Id: 1, Labels: []string{"Person"}, Props: map[string]any{}},
			{Id: 2, Labels: []string{"Movie"}, Props: map[string]any{}},
		},
		Relationships: []neo4j.Relationship{
			{Id: 3, StartId: 1, EndId: 2, Type: "ACTED_IN", Props: map[string]any{}},
		},
	}

	got, ok := normalizeValue(path).(map[string]any)
	if !ok {
		t.Fatal("expected map result")
	}
	nodes, _ := got["nodes"].([]any)
	rels, _ := got["relationships"].([]any)
	if len(nodes) != 2 || len(rels) != 1 {
		t.Fatalf("expected 2 nodes and 1 relationship, got %d and %d", len(nodes), len(rels))
	}
}

func TestNormalizeValue_CollectionsRecurse(t *testing.T) {
	node := neo4j.Node{Id: 1, Labels: []string{"Person"}, Props: map[string]any{}}

	asList, ok := normalizeValue([]any{node, int64(42)}).([]any)
	if !ok || len(asList) != 2 {
		t.Fatalf("unexpected list result %v", asList)
	}
	if _, isMap := asList[0].(map[string]any); !isMap {
		t.Fatal("expected node inside list to be normalized")
	}
	if asList[1] != int64(42) {
		t.Fatalf("expected scalar to pass through, got %v", asList[1])
	}

	asMap, ok := normalizeValue(map[string]any{"n": node}).(map[string]any)
	if !ok {
		t.Fatal("expected map result")
	}
	if _, isMap := asMap["n"].(map[string]any); !isMap {
		t.Fatal("expected node inside map to be normalized")
	}
}

func TestNormalizeValue_ScalarPassthrough(t *testing.T) {
	for _, v := range []any{int64(5), "text", true, 1.5, nil} {
		if got := normalizeValue(v); got != v {
			t.Fatalf("expected %v to pass through, got %v", v, got)
		}
	}
}
