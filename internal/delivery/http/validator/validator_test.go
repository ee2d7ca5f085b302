package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productRequest struct {
	Name  string   `json:"name" validate:"required,max=10"`
	Price string   `json:"price" validate:"required,money"`
	Tags  []string `json:"tags" validate:"omitempty,dive,min=2"`
	Sort  string   `query:"sort" validate:"omitempty,oneof=newest rating"`
}

func TestCustomValidator_Validate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&productRequest{Name: "Scarf", Price: "19.99"}))

	tests := []struct {
		name string
		req  productRequest
		want string
	}{
		{"missing name", productRequest{Price: "1"}, "name is required"},
		{"long name", productRequest{Name: "Matchday Scarf", Price: "1"}, "name must be at most 10 characters"},
		{"negative price", productRequest{Name: "Scarf", Price: "-1"}, "price must be a non-negative amount"},
		{"garbage price", productRequest{Name: "Scarf", Price: "ten"}, "price must be a non-negative amount"},
		{"short tag", productRequest{Name: "Scarf", Price: "1", Tags: []string{"a"}}, "tags[0] must be at least 2 characters"},
		{"bad sort", productRequest{Name: "Scarf", Price: "1", Sort: "cheap"}, "sort must be one of [newest rating]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCustomValidator_JoinsMessages(t *testing.T) {
	err := New().Validate(&productRequest{})
	require.Error(t, err)
	assert.Equal(t, "name is required; price is required", err.Error())
}
