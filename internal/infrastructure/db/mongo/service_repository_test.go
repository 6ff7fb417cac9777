package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/99minutos/service-catalog/internal/core/ports"
)

func TestBuildListQuery_ActiveOnlyDefaults(t *testing.T) {
	filter, sort := buildListQuery(ports.ListServicesFilter{ActiveOnly: true})

	if len(filter) != 1 || filter["isActive"] != true {
		t.Fatalf("unexpected filter: %v", filter)
	}
	want := bson.D{{Key: "name", Value: 1}}
	if len(sort) != 1 || sort[0] != want[0] {
		t.Fatalf("unexpected sort: %v", sort)
	}
}

func TestBuildListQuery_SearchIsEscapedAndCaseInsensitive(t *testing.T) {
	filter, _ := buildListQuery(ports.ListServicesFilter{ActiveOnly: true, Search: "a.b*"})

	or, ok := filter["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected $or with two clauses, got %v", filter["$or"])
	}
	for i, field := range []string{"name", "description"} {
		clause, ok := or[i].(bson.M)
		if !ok {
			t.Fatalf("clause %d has unexpected type %T", i, or[i])
		}
		re, ok := clause[field].(primitive.Regex)
		if !ok {
			t.Fatalf("clause %d missing regex on %s: %v", i, field, clause)
		}
		if re.Pattern != `a\.b\*` || re.Options != "i" {
			t.Fatalf("unexpected regex: %+v", re)
		}
	}
}

func TestBuildListQuery_CategoryAndSort(t *testing.T) {
	filter, sort := buildListQuery(ports.ListServicesFilter{
		ActiveOnly: true,
		Category:   "hair",
		SortBy:     "price",
		SortDesc:   true,
	})

	if filter["category"] != "hair" {
		t.Fatalf("expected category filter, got %v", filter)
	}
	if sort[0].Key != "price" || sort[0].Value != -1 {
		t.Fatalf("unexpected sort: %v", sort)
	}
}

func TestSortField(t *testing.T) {
	cases := map[string]string{
		"":          "name",
		"$where":    "name",
		"id":        "_id",
		"price":     "price",
		"createdAt": "createdAt",
	}
	for in, want := range cases {
		if got := sortField(in); got != want {
			t.Errorf("sortField(%q) = %q, want %q", in, got, want)
		}
	}
}
