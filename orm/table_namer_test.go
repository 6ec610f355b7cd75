package orm_test

import (
	"testing"

	"github.com/mickamy/pressroom/orm"
)

type column struct{}

type backIssue struct{}

func (backIssue) TableName() string { return "back_issues" }

type pressRun struct{}

func (*pressRun) TableName() string { return "press_runs" }

type draft struct{}

func (draft) TableName() string { return "" }

func TestResolveTableName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		resolve  func() string
		expected string
	}{
		{
			name:     "inflected name when TableNamer is not implemented",
			resolve:  func() string { return orm.ResolveTableName[column]("columns") },
			expected: "columns",
		},
		{
			name:     "value receiver",
			resolve:  func() string { return orm.ResolveTableName[backIssue]("back_issue") },
			expected: "back_issues",
		},
		{
			name:     "pointer receiver",
			resolve:  func() string { return orm.ResolveTableName[pressRun]("press_run") },
			expected: "press_runs",
		},
		{
			name:     "empty TableName keeps inflected name",
			resolve:  func() string { return orm.ResolveTableName[draft]("drafts") },
			expected: "drafts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.resolve(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}
