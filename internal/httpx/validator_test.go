package httpx

import (
	"testing"
)

type bookPayload struct {
	ISBN   string `json:"isbn" validate:"required,isbn"`
	Title  string `json:"title" validate:"required,min=1"`
	Author string `json:"author" validate:"required,min=1"`
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name string
		isbn string
	}{
		{"isbn-13", "9780143127741"},
		{"isbn-13 with dashes", "978-0-14-312774-1"},
		{"isbn-10", "0439420890"},
		{"isbn-10 with X check digit", "043942089X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := bookPayload{ISBN: tt.isbn, Title: "Title", Author: "Author"}
			if details := ValidateStruct(payload); details != nil {
				t.Errorf("expected valid payload, got %v", details)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload bookPayload
		field   string
	}{
		{"missing isbn", bookPayload{Title: "Title", Author: "Author"}, "iSBN"},
		{"bad isbn", bookPayload{ISBN: "12345", Title: "Title", Author: "Author"}, "iSBN"},
		{"isbn with letters", bookPayload{ISBN: "97801431277AB", Title: "Title", Author: "Author"}, "iSBN"},
		{"missing title", bookPayload{ISBN: "9780143127741", Author: "Author"}, "title"},
		{"missing author", bookPayload{ISBN: "9780143127741", Title: "Title"}, "author"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := ValidateStruct(tt.payload)
			if details == nil {
				t.Fatal("expected validation failure")
			}
			found := false
			for _, d := range details {
				if d.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected a detail for field %s, got %v", tt.field, details)
			}
		})
	}
}
