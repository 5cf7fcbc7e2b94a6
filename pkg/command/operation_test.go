package command

import (
	"testing"

	"github.com/ocasazza/atui/pkg/model"
	"github.com/ocasazza/atui/pkg/navigation"
)

func completeContext(pt model.ProductType) navigation.Context {
	return navigation.Context{
		Domain:  &model.Domain{Name: "example.atlassian.net"},
		Product: &model.Product{Name: pt.String(), Type: pt},
		Project: &model.Project{Key: "ENG", Name: "ENG"},
	}
}

func TestAvailableRequiresCompleteContext(t *testing.T) {
	if ops := Available(navigation.Context{}); ops != nil {
		t.Errorf("empty context exposed %d operations", len(ops))
	}

	partial := navigation.Context{
		Domain:  &model.Domain{Name: "d"},
		Product: &model.Product{Type: model.ProductConfluence},
	}
	if ops := Available(partial); ops != nil {
		t.Errorf("partial context exposed %d operations", len(ops))
	}
}

func TestAvailableConfluenceExposesLabelOps(t *testing.T) {
	ops := Available(completeContext(model.ProductConfluence))
	if len(ops) != 4 {
		t.Fatalf("expected 4 operations, got %d", len(ops))
	}
	want := []string{"list", "add", "update", "remove"}
	for i, op := range ops {
		if op.Name() != want[i] {
			t.Errorf("operation %d = %q, want %q", i, op.Name(), want[i])
		}
		if op.Description() == "" || op.ArgsHint() == "" {
			t.Errorf("operation %q missing description or hint", op.Name())
		}
	}
}

func TestAvailableTrackerProductsExposeNothing(t *testing.T) {
	for _, pt := range []model.ProductType{model.ProductJira, model.ProductJSM} {
		if ops := Available(completeContext(pt)); ops != nil {
			t.Errorf("%s exposed %d operations", pt, len(ops))
		}
	}
}
