package attendees

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_LengthRules(t *testing.T) {
	tests := []struct {
		desc string
		req  RegistrationRequest
		want ValidationErrors
	}{
		{
			desc: "valid without message",
			req:  RegistrationRequest{Name: "Ahmed Khan", Address: "123 Main St"},
		},
		{
			desc: "boundaries are inclusive",
			req:  RegistrationRequest{Name: "Al", Address: "1 Rd."},
		},
		{
			desc: "name too short",
			req:  RegistrationRequest{Name: "A", Address: "123 Main St"},
			want: ValidationErrors{"name": MsgNameTooShort},
		},
		{
			desc: "empty name",
			req:  RegistrationRequest{Name: "", Address: "123 Main St"},
			want: ValidationErrors{"name": MsgNameTooShort},
		},
		{
			desc: "address too short",
			req:  RegistrationRequest{Name: "Ahmed", Address: "1234"},
			want: ValidationErrors{"address": MsgAddressTooShort},
		},
		{
			desc: "both too short",
			req:  RegistrationRequest{Name: "A", Address: "x"},
			want: ValidationErrors{"name": MsgNameTooShort, "address": MsgAddressTooShort},
		},
		{
			desc: "multibyte characters count once",
			req:  RegistrationRequest{Name: "李明", Address: "北京市朝阳"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			err := Validate(tt.req)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			ve, ok := IsValidationError(err)
			require.True(t, ok, "expected ValidationErrors, got %v", err)
			assert.Equal(t, tt.want, ve)
		})
	}
}

func TestNormalize_TrimsOnly(t *testing.T) {
	got := Normalize(RegistrationRequest{
		Name:    "  Jo <Admin> ",
		Address: "\tFlat 2 <rear> Main St\n",
		Message: "&lt;3 Sam & co",
	})

	assert.Equal(t, "Jo <Admin>", got.Name)
	assert.Equal(t, "Flat 2 <rear> Main St", got.Address)
	assert.Equal(t, "&lt;3 Sam & co", got.Message)
}

func TestNormalize_AngleBracketsCountTowardsLength(t *testing.T) {
	assert.NoError(t, Validate(Normalize(RegistrationRequest{Name: "A<b>", Address: "1 <x> Rd"})))
}

func TestContainsMarkup(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Ahmed Khan", false},
		{"a < b", false},
		{"&lt;3 Sam", false},
		{"x<3", false},
		{"Jo <Admin>", true},
		{`<script>alert("x")</script>`, true},
		{"Ahmed <b>Khan</b>", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsMarkup(tt.in))
		})
	}
}

func TestMarkupFields(t *testing.T) {
	got := markupFields(RegistrationRequest{
		Name:    "Ahmed <b>Khan</b>",
		Address: "123 Main St",
		Message: "<i>hi</i>",
	})
	assert.Equal(t, []string{"message", "name"}, got)
}

func TestNormalize_WhitespaceOnlyFailsValidation(t *testing.T) {
	req := Normalize(RegistrationRequest{Name: "   ", Address: "     "})
	ve, ok := IsValidationError(Validate(req))
	require.True(t, ok)
	assert.Len(t, ve, 2)
}

func TestValidationErrors_ErrorIsStable(t *testing.T) {
	ve := ValidationErrors{"name": MsgNameTooShort, "address": MsgAddressTooShort}
	assert.Equal(t, MsgAddressTooShort+" "+MsgNameTooShort, ve.Error())
}
