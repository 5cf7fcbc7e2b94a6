package model

import "testing"

func TestProductTypeString(t *testing.T) {
	cases := []struct {
		pt   ProductType
		want string
	}{
		{ProductConfluence, "Confluence"},
		{ProductJira, "Jira"},
		{ProductJSM, "Jira Service Management"},
		{ProductType(99), "Unknown"},
	}
	for _, c := range cases {
		if got := c.pt.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestCQLField(t *testing.T) {
	if got := ProductConfluence.CQLField(); got != "space" {
		t.Errorf("Confluence field = %q, want space", got)
	}
	if got := ProductJira.CQLField(); got != "project" {
		t.Errorf("Jira field = %q, want project", got)
	}
	if got := ProductJSM.CQLField(); got != "project" {
		t.Errorf("JSM field = %q, want project", got)
	}
}
