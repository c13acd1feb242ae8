package validation

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
)

type signupForm struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwd"`
	Matric   string `json:"matric" validate:"omitempty,matric"`
	Size     int    `form:"size" validate:"omitempty,max=50"`
}

type eventForm struct {
	Date   string `json:"date" validate:"omitempty,day"`
	Time   string `json:"time" validate:"omitempty,clock"`
	Course string `json:"course" validate:"omitempty,coursecode"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Register(v)
	return v
}

func TestToDetails(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name string
		in   any
		want map[string]string
	}{
		{
			name: "valid",
			in:   signupForm{Name: "Ada", Email: "ada@uni.test", Password: "secret1", Matric: "20CE1001"},
			want: nil,
		},
		{
			name: "missing and malformed",
			in:   signupForm{Email: "nope", Password: "abc", Matric: "CE20", Size: 99},
			want: map[string]string{
				"name":     "is required",
				"email":    "must be a valid email",
				"password": "must be at least 6 characters long",
				"matric":   "must look like 20CE1234",
				"size":     "must be at most 50",
			},
		},
		{
			name: "event formats",
			in:   eventForm{Date: "12/05/2030", Time: "7pm", Course: "calculus"},
			want: map[string]string{
				"date":   "must be YYYY-MM-DD",
				"time":   "must be HH:MM",
				"course": "must look like CSC101",
			},
		},
		{
			name: "event formats ok",
			in:   eventForm{Date: "2030-05-12", Time: "18:30", Course: "CSC 101"},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDetails(v.Struct(tt.in))
			if len(got) != len(tt.want) {
				t.Fatalf("ToDetails() = %v, expected %v", got, tt.want)
			}
			for k, msg := range tt.want {
				if got[k] != msg {
					t.Errorf("details[%q] = %q, expected %q", k, got[k], msg)
				}
			}
		})
	}
}

func TestToDetailsDecodeErrors(t *testing.T) {
	var dst struct {
		Price int `json:"price"`
	}
	if got := ToDetails(json.Unmarshal([]byte(`{"price":`), &dst)); got["payload"] != "invalid json" {
		t.Errorf("syntax error details = %v", got)
	}
	if got := ToDetails(json.Unmarshal([]byte(`{"price":"ten"}`), &dst)); got["price"] != "must be a int" {
		t.Errorf("type error details = %v", got)
	}
}
