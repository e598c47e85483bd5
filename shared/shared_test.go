package shared_test

import (
	"testing"
	"time"

	"yujin/shared"
	"yujin/shared/constant"
	"yujin/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{
			name:     "empty string returns nil",
			input:    "",
			expected: nil,
		},
		{
			name:     "valid true string",
			input:    "true",
			expected: boolPtr(true),
		},
		{
			name:     "valid false string",
			input:    "false",
			expected: boolPtr(false),
		},
		{
			name:     "valid 1 string",
			input:    "1",
			expected: boolPtr(true),
		},
		{
			name:     "valid 0 string",
			input:    "0",
			expected: boolPtr(false),
		},
		{
			name:     "invalid string returns nil",
			input:    "invalid",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}
			} else {
				if result == nil {
					t.Errorf("expected %v, got nil", *tt.expected)
				} else if *result != *tt.expected {
					t.Errorf("expected %v, got %v", *tt.expected, *result)
				}
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{
			name:     "zero total returns 1",
			total:    0,
			limit:    10,
			expected: 1,
		},
		{
			name:     "zero limit returns 1",
			total:    100,
			limit:    0,
			expected: 1,
		},
		{
			name:     "exact division",
			total:    100,
			limit:    10,
			expected: 10,
		},
		{
			name:     "rounds up",
			total:    101,
			limit:    10,
			expected: 11,
		},
		{
			name:     "single page",
			total:    5,
			limit:    10,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.CalculateTotalPage(tt.total, tt.limit)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		parts    []string
		expected string
	}{
		{
			name:     "prefix only",
			prefix:   "booking:get",
			parts:    nil,
			expected: "booking:get",
		},
		{
			name:     "single part",
			prefix:   "booking:get",
			parts:    []string{"abc"},
			expected: "booking:get:abc",
		},
		{
			name:     "multiple parts",
			prefix:   "availability",
			parts:    []string{"2026-09-15", "10:00"},
			expected: "availability:2026-09-15:10:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.BuildCacheKey(tt.prefix, tt.parts...)
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 2, Limit: 20, SortBy: "created_at", SortDir: "desc"}
	filter := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq, Table: "bookings"},
		},
	}

	first := shared.BuildCacheKeyWithQuery("booking:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("booking:gets", params, filter)

	if first != second {
		t.Errorf("expected deterministic keys, got %q and %q", first, second)
	}

	params.Page = 3
	third := shared.BuildCacheKeyWithQuery("booking:gets", params, filter)

	if first == third {
		t.Error("expected different pages to yield different keys")
	}
}

func TestTransformFields(t *testing.T) {
	type updateRequest struct {
		Status   string `db:"status"`
		TimeSlot string `db:"time_slot"`
		Note     string `db:"note"`
		Internal string
	}

	req := updateRequest{
		Status:   "confirmed",
		TimeSlot: "11:00",
		Internal: "not persisted",
	}

	fields := shared.TransformFields(req, "admin@example.com")

	if fields["status"] != "confirmed" {
		t.Errorf("expected status to be set, got %v", fields["status"])
	}
	if fields["time_slot"] != "11:00" {
		t.Errorf("expected time_slot to be set, got %v", fields["time_slot"])
	}
	if _, ok := fields["note"]; ok {
		t.Error("expected zero-valued note to be omitted")
	}
	if fields[constant.FieldModifiedBy] != "admin@example.com" {
		t.Errorf("expected modified_by to carry the username, got %v", fields[constant.FieldModifiedBy])
	}
	if _, ok := fields[constant.FieldModifiedAt].(time.Time); !ok {
		t.Error("expected modified_at to be a time.Time")
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("some-id", "id", "bookings")

	if len(group.Filters) != 1 {
		t.Fatalf("expected one filter, got %d", len(group.Filters))
	}

	filter, ok := group.Filters[0].(dto.Filter)
	if !ok {
		t.Fatalf("expected dto.Filter, got %T", group.Filters[0])
	}

	if filter.Field != "id" || filter.Value != "some-id" || filter.Table != "bookings" {
		t.Errorf("unexpected filter: %+v", filter)
	}
	if filter.Operator != dto.FilterOperatorEq {
		t.Errorf("expected equality operator, got %v", filter.Operator)
	}
}

func boolPtr(b bool) *bool {
	return &b
}
