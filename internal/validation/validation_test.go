package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/yungbote/contactbook-backend/internal/platform/apierr"
)

func strPtr(s string) *string { return &s }

func fieldsOf(t *testing.T, err error) []apierr.FieldError {
	t.Helper()
	var e *apierr.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *apierr.Error, got %T (%v)", err, err)
	}
	if e.Kind != apierr.KindValidation || e.Status != 400 {
		t.Fatalf("unexpected kind/status: %s/%d", e.Kind, e.Status)
	}
	if len(e.Fields) == 0 {
		t.Fatalf("validation error without fields")
	}
	return e.Fields
}

func TestStructValid(t *testing.T) {
	valid := []any{
		&RegisterUserRequest{Username: "test", Password: "test", Name: "test"},
		&LoginUserRequest{Username: "test", Password: "test"},
		&UpdateUserRequest{},
		&UpdateUserRequest{Name: strPtr("abc"), Password: strPtr("12345")},
		&CreateContactRequest{FirstName: "Eko"},
		&CreateContactRequest{FirstName: "Eko", LastName: strPtr("K"), Email: strPtr("eko@example.com"), Phone: strPtr("08123456")},
		&UpdateContactRequest{ID: 1},
		&SearchContactRequest{Page: 1, Size: 10},
		&CreateAddressRequest{ContactID: 1, Country: "Indonesia", PostalCode: "12345"},
		&UpdateAddressRequest{ContactID: 1, ID: 2, Country: "Indonesia", PostalCode: "1"},
		&GetAddressRequest{ContactID: 1, ID: 1},
		&ListAddressRequest{ContactID: 1},
	}
	for _, v := range valid {
		if err := Struct(v); err != nil {
			t.Fatalf("%T: unexpected error: %v", v, err)
		}
	}
}

func TestStructMessages(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []apierr.FieldError
	}{
		{
			name:  "register empty",
			input: &RegisterUserRequest{},
			want: []apierr.FieldError{
				{Field: "username", Message: "username must not be blank"},
				{Field: "password", Message: "password is required"},
				{Field: "name", Message: "name is required"},
			},
		},
		{
			name:  "register too long",
			input: &RegisterUserRequest{Username: strings.Repeat("a", 101), Password: "x", Name: "x"},
			want:  []apierr.FieldError{{Field: "username", Message: "username must be at most 100 characters"}},
		},
		{
			name:  "update user short fields",
			input: &UpdateUserRequest{Name: strPtr("ab"), Password: strPtr("1234")},
			want: []apierr.FieldError{
				{Field: "name", Message: "name must be at least 3 characters"},
				{Field: "password", Message: "password must be at least 5 characters"},
			},
		},
		{
			name:  "contact first name",
			input: &CreateContactRequest{Email: strPtr("not-an-email")},
			want: []apierr.FieldError{
				{Field: "first_name", Message: "first_name must not be empty"},
				{Field: "email", Message: "email must be a valid email"},
			},
		},
		{
			name:  "contact phone bounds",
			input: &CreateContactRequest{FirstName: "Eko", Phone: strPtr("123")},
			want:  []apierr.FieldError{{Field: "phone", Message: "phone must be at least 8 characters"}},
		},
		{
			name:  "contact update id",
			input: &UpdateContactRequest{FirstName: strPtr("")},
			want: []apierr.FieldError{
				{Field: "id", Message: "id must be a positive number"},
				{Field: "first_name", Message: "first_name must not be empty"},
			},
		},
		{
			name:  "search paging",
			input: &SearchContactRequest{Page: 0, Size: 101},
			want: []apierr.FieldError{
				{Field: "page", Message: "page must be at least 1"},
				{Field: "size", Message: "size must be at most 100"},
			},
		},
		{
			name:  "address postal code",
			input: &CreateAddressRequest{ContactID: 1, Country: "Indonesia"},
			want:  []apierr.FieldError{{Field: "postal_code", Message: "Postal Code is required"}},
		},
		{
			name:  "address bounds",
			input: &UpdateAddressRequest{Country: "Indonesia", PostalCode: "123456", Street: strPtr("")},
			want: []apierr.FieldError{
				{Field: "contactId", Message: "contactId must be a positive number"},
				{Field: "id", Message: "id must be a positive number"},
				{Field: "street", Message: "street must not be empty"},
				{Field: "postal_code", Message: "postal_code must be at most 5 characters"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := fieldsOf(t, Struct(tc.input))
			if len(got) != len(tc.want) {
				t.Fatalf("got %d fields (%+v), want %d", len(got), got, len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("field %d: got=%+v want=%+v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestStructRejectsNonStruct(t *testing.T) {
	err := Struct(42)
	if !apierr.IsKind(err, apierr.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}
