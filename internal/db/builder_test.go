package db

import (
	"strings"
	"testing"
)

func TestIndexBuilder_Build(t *testing.T) {
	def, err := NewIndex("europa:poi_idx").
		Prefix("europa:poi:").
		Tag("$.type", "type").
		Tag("$.category", "category").
		VectorFlat("$.geovec", "geovec", 3, DistanceL2).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.StorageType != StorageJSON {
		t.Errorf("storage: got %s", def.StorageType)
	}
	if len(def.Fields) != 3 {
		t.Fatalf("fields: got %d", len(def.Fields))
	}
	if def.Fields[2].VectorDim != 3 || def.Fields[2].VectorDistance != DistanceL2 {
		t.Errorf("vector field: got %+v", def.Fields[2])
	}
}

func TestIndexBuilder_VectorHNSW(t *testing.T) {
	def := NewIndex("idx").
		VectorHNSW("$.descvec", "descvec", 1024, DistanceCosine, 32, 400).
		MustBuild()
	f := def.Fields[0]
	if f.VectorAlgo != VectorHNSW || f.VectorM != 32 || f.VectorEFConstruct != 400 {
		t.Fatalf("got %+v", f)
	}
}

func TestIndexBuilder_RejectsEmpty(t *testing.T) {
	if _, err := NewIndex("idx").Build(); err == nil {
		t.Fatal("expected error for index without fields")
	}
}

func TestIndexBuilder_RejectsDuplicateAlias(t *testing.T) {
	_, err := NewIndex("idx").Tag("$.a", "x").Tag("$.b", "x").Build()
	if err == nil {
		t.Fatal("expected duplicate field error")
	}
}

func TestIndexBuilder_RejectsBadName(t *testing.T) {
	if _, err := NewIndex("bad name!").Tag("$.a", "a").Build(); err == nil {
		t.Fatal("expected invalid identifier error")
	}
}

func TestIndexDefinition_String(t *testing.T) {
	def := NewIndex("idx").Prefix("p:").Tag("$.type", "type").MustBuild()
	s := def.String()
	for _, want := range []string{"FT.CREATE", "ON JSON", "PREFIX p:", "TAG"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q: %s", want, s)
		}
	}
}
